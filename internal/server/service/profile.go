package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// Me возвращает name и email пользователя из токена.
//
// Пользователь мог быть удалён после выдачи токена, тогда ErrUserNotExist.
func (s *UserService) Me(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.User{}, userErr(err)
	}
	return user, nil
}

// UpdateProfile меняет name и email пользователя.
//
// Ошибки:
//   - ErrInvalidProfile, если поле пустое или email невалиден
//   - ErrEmailInUse, если email принадлежит другому пользователю
//   - ErrUserNotExist, если пользователя уже нет
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || !s.validEmail(email) {
		return models.User{}, serr.ErrInvalidProfile
	}

	taken, err := s.users.EmailTakenByOther(ctx, email, userID)
	if err != nil {
		return models.User{}, userErr(err)
	}
	if taken {
		return models.User{}, serr.ErrEmailInUse
	}

	user, err := s.users.UpdateProfile(ctx, userID, name, email)
	if err != nil {
		if errors.Is(err, serr.ErrAlreadyExists) {
			return models.User{}, serr.ErrEmailInUse
		}
		return models.User{}, userErr(err)
	}
	return user, nil
}

// UpdatePassword проверяет текущий пароль и сохраняет хэш нового.
//
// Выданные ранее токены остаются валидными до истечения срока.
func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" ||
		utf8.RuneCountInString(newPassword) < MinPasswordLen || len(newPassword) > MaxPasswordBytes {
		return serr.ErrInvalidPassword
	}

	hash, err := s.users.GetPasswordHash(ctx, userID)
	if err != nil {
		return userErr(err)
	}

	ok, err := s.hasher.Verify(currentPassword, hash)
	if err != nil {
		return fmt.Errorf("%w: verify password: %v", serr.ErrInternal, err)
	}
	if !ok {
		return serr.ErrPasswordMismatch
	}

	newHash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("%w: hash password: %v", serr.ErrInternal, err)
	}

	return userErr(s.users.UpdatePassword(ctx, userID, newHash))
}

// userErr превращает ErrNotFound хранилища в ErrUserNotExist.
func userErr(err error) error {
	if errors.Is(err, serr.ErrNotFound) {
		return serr.ErrUserNotExist
	}
	return err
}
