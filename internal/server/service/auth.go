package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// MinPasswordLen — минимальная длина пароля в символах.
const MinPasswordLen = 8

// MaxPasswordBytes — потолок bcrypt: длиннее 72 байт GenerateFromPassword не хэширует.
const MaxPasswordBytes = 72

// UserService реализует бизнес-логику пользователей.
//
// Ответственность:
//   - регистрация и логин с выдачей токена
//   - чтение текущего пользователя
//   - изменение профиля и пароля
type UserService struct {
	users    UsersRepo
	hasher   crypto.PasswordHasher
	tokens   TokenIssuer
	validate *validator.Validate
}

// AuthResult — результат регистрации или логина.
type AuthResult struct {
	Token string
	User  models.User
}

// NewUserService создаёт UserService с зависимостями.
func NewUserService(users UsersRepo, hasher crypto.PasswordHasher, tokens TokenIssuer) *UserService {
	return &UserService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// Register регистрирует нового пользователя и выдаёт токен.
//
// Валидация (первая ошибка выигрывает):
//   - name, email, password обязательны, иначе ErrCredentialsRequired
//   - email проходит проверку синтаксиса, иначе ErrInvalidEmail
//   - пароль не короче MinPasswordLen символов, иначе ErrPasswordTooShort
//   - пароль не длиннее MaxPasswordBytes байт, иначе ErrPasswordTooLong
//
// Занятый email — ErrUserExists, в том числе когда гонку поймал уникальный индекс.
func (s *UserService) Register(ctx context.Context, name, email, password string) (AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)

	if name == "" || email == "" || password == "" {
		return AuthResult{}, serr.ErrCredentialsRequired
	}
	if !s.validEmail(email) {
		return AuthResult{}, serr.ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < MinPasswordLen {
		return AuthResult{}, serr.ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return AuthResult{}, serr.ErrPasswordTooLong
	}

	// быстрый путь, окончательное слово за уникальным индексом
	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return AuthResult{}, serr.ErrUserExists
	case !errors.Is(err, serr.ErrNotFound):
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	user, err := s.users.Create(ctx, name, email, hash)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return AuthResult{}, serr.ErrUserExists
		}
		return AuthResult{}, err
	}

	return s.issue(user)
}

// Login аутентифицирует пользователя и выдаёт токен.
//
// Не раскрывает факт существования email: неизвестный email и неверный пароль
// дают одну и ту же ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return AuthResult{}, serr.ErrLoginFieldsRequired
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, serr.ErrNotFound) {
			return AuthResult{}, serr.ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return AuthResult{}, serr.ErrInvalidCredentials
	}

	return s.issue(user)
}

// issue выпускает токен и убирает хэш пароля из результата.
func (s *UserService) issue(user models.User) (AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("%w: issue token: %v", serr.ErrInternal, err)
	}
	user.PasswordHash = ""
	return AuthResult{Token: token, User: user}, nil
}

func (s *UserService) validEmail(email string) bool {
	return s.validate.Var(email, "required,email") == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
