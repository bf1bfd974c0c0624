package crypto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	crypt "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/crypto"
)

func argon2Params() crypt.Argon2Params {
	return crypt.Argon2Params{
		Time:      1,
		MemoryKiB: 32 * 1024,
		Threads:   1,
		KeyLen:    32,
		SaltLen:   16,
	}
}

func hashers() map[string]crypt.PasswordHasher {
	return map[string]crypt.PasswordHasher{
		"bcrypt":   crypt.BcryptHasher{Cost: 4},
		"argon2id": crypt.Argon2Hasher{Params: argon2Params()},
	}
}

// Солёный хэш: не равен паролю, два хэша различаются, оба проходят проверку
func TestPasswordHasher_SaltedHash(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			password := "super-secret-password"

			first, err := h.Hash(password)
			require.NoError(t, err)
			second, err := h.Hash(password)
			require.NoError(t, err)

			require.NotEqual(t, password, first)
			require.NotEqual(t, first, second)

			for _, encoded := range []string{first, second} {
				ok, err := h.Verify(password, encoded)
				require.NoError(t, err)
				require.True(t, ok)
			}
		})
	}
}

func TestPasswordHasher_WrongPassword(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			encoded, err := h.Hash("correct-password")
			require.NoError(t, err)

			ok, err := h.Verify("wrong-password", encoded)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestPasswordHasher_EmptyPassword(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			_, err := h.Hash("")
			require.ErrorIs(t, err, crypt.ErrEmptyPassword)
		})
	}
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	encoded, err := crypt.BcryptHasher{Cost: 10}.Hash("password123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$2a$10$"), encoded)
}

// Смена hasher в конфиге не ломает проверку старых хэшей
func TestVerifyPassword_CrossFormat(t *testing.T) {
	bcryptHash, err := crypt.BcryptHasher{Cost: 4}.Hash("password123")
	require.NoError(t, err)
	argonHash, err := crypt.HashPassword("password123", argon2Params())
	require.NoError(t, err)

	ok, err := crypt.Argon2Hasher{Params: argon2Params()}.Verify("password123", bcryptHash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = crypt.BcryptHasher{Cost: 4}.Verify("password123", argonHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := crypt.VerifyPassword("password", "plain-text")
	require.Error(t, err)

	_, err = crypt.VerifyPassword("password", "argon2id$v=19$bad$params$x")
	require.Error(t, err)
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := crypt.NewPasswordHasher("bcrypt", 10, crypt.Argon2Params{})
	require.NoError(t, err)
	require.Equal(t, crypt.BcryptHasher{Cost: 10}, h)

	h, err = crypt.NewPasswordHasher("argon2id", 0, argon2Params())
	require.NoError(t, err)
	require.IsType(t, crypt.Argon2Hasher{}, h)

	_, err = crypt.NewPasswordHasher("md5", 0, crypt.Argon2Params{})
	require.Error(t, err)
}

// Пароль из пробелов не пустой: сервис пароли не тримит
func TestPasswordHasher_WhitespacePassword(t *testing.T) {
	for name, h := range hashers() {
		t.Run(name, func(t *testing.T) {
			password := "        "

			encoded, err := h.Hash(password)
			require.NoError(t, err)

			ok, err := h.Verify(password, encoded)
			require.NoError(t, err)
			require.True(t, ok)
		})
	}
}
