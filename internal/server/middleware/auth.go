// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// TokenParser проверяет токен и возвращает userID (реализует crypto.TokenManager).
type TokenParser interface {
	Parse(token string) (string, error)
}

// JWTVerifier — auth gate защищённых маршрутов.
//
// Проверка подписи, алгоритма и срока жизни делегируется TokenParser,
// тем же ключом и алгоритмом, что и при выпуске токена.
type JWTVerifier struct {
	tokens TokenParser
}

// NewJWTVerifier создаёт новый JWTVerifier.
func NewJWTVerifier(tokens TokenParser) *JWTVerifier {
	return &JWTVerifier{tokens: tokens}
}

// WithUserID кладёт userID в контекст. Нужен middleware и тестам обработчиков.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(userIDKey)
	s, ok := v.(string)
	return s, ok && s != ""
}

// AuthMiddleware возвращает HTTP middleware для проверки токенов.
//
// Middleware:
//   - ожидает заголовок Authorization: Bearer <token>
//   - валидирует токен через TokenParser
//   - сохраняет userID в context.Context
//
// В случае ошибки отвечает 401 {"success":false,"message":...}, хранилище не трогает.
func (v *JWTVerifier) AuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := ExtractBearer(r.Header.Get("Authorization"))
			if tokenStr == "" {
				unauthorized(w, serr.ErrTokenMissing)
				return
			}

			userID, err := v.tokens.Parse(tokenStr)
			if err != nil {
				if errors.Is(err, serr.ErrTokenExpired) {
					unauthorized(w, serr.ErrTokenExpired)
					return
				}
				unauthorized(w, serr.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// ExtractBearer извлекает JWT из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.MessageResponse{Success: false, Message: err.Error()})
}
