package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/middleware"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/models"
)

const testKey = "test-signing-key-0123456789abcdef"

func newVerifier(now func() time.Time) (*middleware.JWTVerifier, *crypto.TokenManager) {
	tm := crypto.NewTokenManager(crypto.JWTConfig{SigningKey: testKey, TTL: 48 * time.Hour}, crypto.WithClock(now))
	return middleware.NewJWTVerifier(tm), tm
}

// обработчик за гейтом, запоминает userID из контекста
func protected(t *testing.T, called *bool, gotID *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		uid, ok := middleware.UserIDFromContext(r.Context())
		require.True(t, ok)
		*gotID = uid
		w.WriteHeader(http.StatusOK)
	})
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) models.MessageResponse {
	t.Helper()
	var resp models.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

// Успех
func TestAuthMiddleware_OK(t *testing.T) {
	v, tm := newVerifier(time.Now)
	token, err := tm.Issue("user-1")
	require.NoError(t, err)

	var called bool
	var gotID string
	handler := v.AuthMiddleware()(protected(t, &called, &gotID))

	req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, called)
	require.Equal(t, "user-1", gotID)
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	issuedAt := time.Now().Add(-49 * time.Hour)
	_, oldTM := newVerifier(func() time.Time { return issuedAt })
	expired, err := oldTM.Issue("user-1")
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("another-key"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		wantMsg string
	}{
		{"no header", "", serr.ErrTokenMissing.Error()},
		{"not bearer", "Basic abc", serr.ErrTokenMissing.Error()},
		{"empty bearer", "Bearer ", serr.ErrTokenMissing.Error()},
		{"garbage", "Bearer not.a.token", serr.ErrTokenInvalid.Error()},
		{"wrong key", "Bearer " + foreign, serr.ErrTokenInvalid.Error()},
		{"expired", "Bearer " + expired, serr.ErrTokenExpired.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newVerifier(time.Now)

			var called bool
			var gotID string
			handler := v.AuthMiddleware()(protected(t, &called, &gotID))

			req := httptest.NewRequest(http.MethodGet, "/api/user/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusUnauthorized, rr.Code)
			require.False(t, called)
			require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			resp := decodeMessage(t, rr)
			require.False(t, resp.Success)
			require.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	require.Equal(t, "abc", middleware.ExtractBearer("Bearer abc"))
	require.Equal(t, "abc", middleware.ExtractBearer("  bearer   abc "))
	require.Empty(t, middleware.ExtractBearer("abc"))
	require.Empty(t, middleware.ExtractBearer("Token abc"))
	require.Empty(t, middleware.ExtractBearer(""))
}

func TestUserIDFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.UserIDFromContext(req.Context())
	require.False(t, ok)

	uid, ok := middleware.UserIDFromContext(middleware.WithUserID(req.Context(), "u1"))
	require.True(t, ok)
	require.Equal(t, "u1", uid)
}
