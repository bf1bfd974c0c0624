package service_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

func TestUserService_Me(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().GetByID(ctx, "u1").Return(models.User{Name: "Ann", Email: "ann@mail.com"}, nil)

	u, err := svc.Me(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Ann", u.Name)
	require.Equal(t, "ann@mail.com", u.Email)
}

func TestUserService_Me_UserGone(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().GetByID(ctx, "u1").Return(models.User{}, serr.ErrNotFound)

	_, err := svc.Me(ctx, "u1")
	require.ErrorIs(t, err, serr.ErrUserNotExist)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	svc, _, _ := newUserService(t)

	for _, tc := range []struct{ name, email string }{
		{"", "ann@mail.com"},
		{"Ann", ""},
		{"Ann", "not-an-email"},
	} {
		_, err := svc.UpdateProfile(context.Background(), "u1", tc.name, tc.email)
		require.ErrorIs(t, err, serr.ErrInvalidProfile)
	}
}

func TestUserService_UpdateProfile_EmailOfOtherUser(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().EmailTakenByOther(ctx, "bob@mail.com", "u1").Return(true, nil)

	_, err := svc.UpdateProfile(ctx, "u1", "Ann", "bob@mail.com")
	require.ErrorIs(t, err, serr.ErrEmailInUse)
}

func TestUserService_UpdateProfile_OwnEmail(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	gomock.InOrder(
		users.EXPECT().EmailTakenByOther(ctx, "ann@mail.com", "u1").Return(false, nil),
		users.EXPECT().UpdateProfile(ctx, "u1", "Anna", "ann@mail.com").
			Return(models.User{Name: "Anna", Email: "ann@mail.com"}, nil),
	)

	u, err := svc.UpdateProfile(ctx, "u1", "Anna", "Ann@mail.com")
	require.NoError(t, err)
	require.Equal(t, "Anna", u.Name)
}

func TestUserService_UpdateProfile_UniqueViolation(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().EmailTakenByOther(ctx, "bob@mail.com", "u1").Return(false, nil)
	users.EXPECT().UpdateProfile(ctx, "u1", "Ann", "bob@mail.com").Return(models.User{}, serr.ErrAlreadyExists)

	_, err := svc.UpdateProfile(ctx, "u1", "Ann", "bob@mail.com")
	require.ErrorIs(t, err, serr.ErrEmailInUse)
}

func TestUserService_UpdateProfile_UserGone(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().EmailTakenByOther(ctx, "ann@mail.com", "u1").Return(false, nil)
	users.EXPECT().UpdateProfile(ctx, "u1", "Ann", "ann@mail.com").Return(models.User{}, serr.ErrNotFound)

	_, err := svc.UpdateProfile(ctx, "u1", "Ann", "ann@mail.com")
	require.ErrorIs(t, err, serr.ErrUserNotExist)
}

func TestUserService_UpdatePassword_Validation(t *testing.T) {
	svc, _, _ := newUserService(t)

	for _, tc := range []struct{ current, next string }{
		{"", "new-password"},
		{"password1", ""},
		{"password1", "short"},
		{"password1", strings.Repeat("a", 73)},
	} {
		err := svc.UpdatePassword(context.Background(), "u1", tc.current, tc.next)
		require.ErrorIs(t, err, serr.ErrInvalidPassword)
	}
}

func TestUserService_UpdatePassword_Mismatch(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	hash, err := testHasher.Hash("password1")
	require.NoError(t, err)
	users.EXPECT().GetPasswordHash(ctx, "u1").Return(hash, nil)

	err = svc.UpdatePassword(ctx, "u1", "wrong-password", "new-password")
	require.ErrorIs(t, err, serr.ErrPasswordMismatch)
}

func TestUserService_UpdatePassword_UserGone(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newUserService(t)

	users.EXPECT().GetPasswordHash(ctx, "u1").Return("", serr.ErrNotFound)

	err := svc.UpdatePassword(ctx, "u1", "password1", "new-password")
	require.ErrorIs(t, err, serr.ErrUserNotExist)
}

// после смены пароля старый не подходит, новый подходит, старый токен жив
func TestUserService_UpdatePassword_Flow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tokens := crypto.NewTokenManager(crypto.JWTConfig{SigningKey: "test-signing-key-0123456789abcdef", TTL: 48 * time.Hour})
	svc := service.NewUserService(store, testHasher, tokens)

	reg, err := svc.Register(ctx, "Ann", "ann@mail.com", "password1")
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePassword(ctx, reg.User.ID, "password1", "new-password"))

	_, err = svc.Login(ctx, "ann@mail.com", "password1")
	require.ErrorIs(t, err, serr.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "ann@mail.com", "new-password")
	require.NoError(t, err)

	userID, err := tokens.Parse(reg.Token)
	require.NoError(t, err)
	require.Equal(t, reg.User.ID, userID)
}

func TestUserService_UpdateProfile_Flow(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	tokens := crypto.NewTokenManager(crypto.JWTConfig{SigningKey: "test-signing-key-0123456789abcdef", TTL: 48 * time.Hour})
	svc := service.NewUserService(store, testHasher, tokens)

	ann, err := svc.Register(ctx, "Ann", "ann@mail.com", "password1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "Bob", "bob@mail.com", "password1")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, ann.User.ID, "Ann", "bob@mail.com")
	require.ErrorIs(t, err, serr.ErrEmailInUse)

	u, err := svc.UpdateProfile(ctx, ann.User.ID, "Anna", "ann@mail.com")
	require.NoError(t, err)
	require.Equal(t, "Anna", u.Name)

	me, err := svc.Me(ctx, ann.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Anna", me.Name)
	require.Equal(t, "ann@mail.com", me.Email)
}

// две одновременные регистрации с одним email: обе проходят предварительную
// проверку, но создаётся ровно один пользователь
func TestUserService_Register_ConcurrentSameEmail(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()

	var lookups sync.WaitGroup
	lookups.Add(2)
	store.onLookup = func() {
		lookups.Done()
		lookups.Wait()
	}

	tokens := crypto.NewTokenManager(crypto.JWTConfig{SigningKey: "test-signing-key-0123456789abcdef", TTL: time.Hour})
	svc := service.NewUserService(store, testHasher, tokens)

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Register(ctx, "Ann", "ann@mail.com", "password1")
		}(i)
	}
	wg.Wait()

	var ok, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, serr.ErrUserExists):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, conflicts)
}
