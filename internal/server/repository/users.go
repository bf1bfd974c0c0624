// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors:
//   - запись не найдена -> ErrNotFound;
//   - нарушение уникального индекса по email -> ErrAlreadyExists;
//   - всё остальное -> ErrInternal (с текстом исходной ошибки для логов).
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// код ошибки postgres unique_violation
const uniqueViolation = "23505"

// UsersRepository хранит пользователей в PostgreSQL.
type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewUsersRepository создаёт репозиторий. queryTimeout <= 0 — без таймаута.
func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, queryTimeout: queryTimeout}
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Create добавляет пользователя. Занятый email -> ErrAlreadyExists.
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u := models.User{Name: name, Email: email}
	var id uuid.UUID

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at, updated_at`,
		name, email, passwordHash,
	).Scan(&id, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("insert user", err)
	}

	u.ID = id.String()
	return u, nil
}

// GetByEmail возвращает пользователя вместе с хэшем пароля (нужно для логина).
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var (
		u  models.User
		id uuid.UUID
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash FROM users WHERE email=$1`,
		email,
	).Scan(&id, &u.Name, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("select user by email", err)
	}

	u.ID = id.String()
	return u, nil
}

// GetByID возвращает только name и email, хэш пароля не выбирается.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u := models.User{ID: uid.String()}
	err = r.db.QueryRowContext(ctx,
		`SELECT name, email FROM users WHERE id=$1`,
		uid,
	).Scan(&u.Name, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal("select user by id", err)
	}
	return u, nil
}

// GetPasswordHash возвращает только хэш пароля пользователя.
func (r *UsersRepository) GetPasswordHash(ctx context.Context, id string) (string, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return "", serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var hash string
	err = r.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE id=$1`,
		uid,
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", serr.ErrNotFound
		}
		return "", internal("select password hash", err)
	}
	return hash, nil
}

// EmailTakenByOther проверяет, занят ли email кем-то кроме excludeID.
func (r *UsersRepository) EmailTakenByOther(ctx context.Context, email, excludeID string) (bool, error) {
	uid, err := uuid.Parse(excludeID)
	if err != nil {
		return false, serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var taken bool
	err = r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email=$1 AND id<>$2)`,
		email, uid,
	).Scan(&taken)
	if err != nil {
		return false, internal("check email", err)
	}
	return taken, nil
}

// UpdateProfile меняет name и email и возвращает обновлённую проекцию name/email.
//
// Ошибки: ErrNotFound если пользователя нет, ErrAlreadyExists если email занят.
func (r *UsersRepository) UpdateProfile(ctx context.Context, id, name, email string) (models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return models.User{}, serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	u := models.User{ID: uid.String()}
	err = r.db.QueryRowContext(ctx,
		`UPDATE users
		    SET name=$2, email=$3, updated_at=now()
		  WHERE id=$1
		RETURNING name, email, updated_at`,
		uid, name, email,
	).Scan(&u.Name, &u.Email, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal("update profile", err)
	}
	return u, nil
}

// UpdatePassword сохраняет новый хэш пароля.
func (r *UsersRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return serr.ErrNotFound
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE users
		    SET password_hash=$2, updated_at=now()
		  WHERE id=$1`,
		uid, passwordHash,
	)
	if err != nil {
		return internal("update password", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return internal("update password", err)
	}
	if n == 0 {
		return serr.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// internal заворачивает ошибку драйвера в ErrInternal, сохраняя текст для логов.
func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", serr.ErrInternal, op, err)
}
