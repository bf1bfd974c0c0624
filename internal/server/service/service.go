// Package service содержит бизнес-логику приложения (task manager).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
)

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users *UserService
	// Tokens нужен ещё и auth-middleware для проверки токенов.
	Tokens *crypto.TokenManager
}

// NewServices собирает все сервисы приложения.
// cfg нужен для выбора хэшера паролей и параметров JWT.
func NewServices(users UsersRepo, cfg *config.Config) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.Password.Hasher, cfg.Password.Bcrypt.Cost, crypto.Argon2Params{
		Time:      cfg.Password.Argon2.Time,
		MemoryKiB: cfg.Password.Argon2.MemoryKiB,
		Threads:   cfg.Password.Argon2.Threads,
		KeyLen:    cfg.Password.Argon2.KeyLen,
		SaltLen:   cfg.Password.Argon2.SaltLen,
	})
	if err != nil {
		return nil, err
	}

	tokens := crypto.NewTokenManager(crypto.JWTConfig{
		Issuer:     cfg.Auth.Issuer,
		Audience:   cfg.Auth.Audience,
		SigningKey: cfg.Auth.JWT.SigningKey,
		TTL:        cfg.Auth.TokenTTL,
	})

	return &Services{
		Users:  NewUserService(users, hasher, tokens),
		Tokens: tokens,
	}, nil
}

// UsersRepo — хранилище пользователей (Postgres или MongoDB).
//
// Реализация обязана держать уникальность email сама (уникальный индекс)
// и возвращать ErrAlreadyExists при нарушении, ErrNotFound если записи нет.
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetPasswordHash(ctx context.Context, id string) (string, error)
	EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error)
	UpdateProfile(ctx context.Context, id, name, email string) (models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// TokenIssuer выпускает токен для пользователя.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
