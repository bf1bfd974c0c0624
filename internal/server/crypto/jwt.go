// Package crypto содержит криптографические примитивы сервера:
//   - хэширование и проверку паролей (bcrypt, argon2id);
//   - выпуск и проверку JWT токенов (HS256, фиксированный срок жизни).
package crypto

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
)

// JWTConfig описывает параметры генерации и проверки токена.
type JWTConfig struct {
	// Issuer — значение поля iss (опционально).
	Issuer string
	// Audience — значение поля aud (опционально).
	Audience string
	// SigningKey — секретный ключ подписи (HS256).
	SigningKey string
	// TTL — срок жизни токена.
	TTL time.Duration
}

// TokenManager выпускает и проверяет токены одним ключом и алгоритмом.
//
// Токен не хранится на сервере и не отзывается: он валиден до exp.
type TokenManager struct {
	cfg JWTConfig
	now func() time.Time
}

// TokenOption настраивает TokenManager.
type TokenOption func(*TokenManager)

// WithClock подменяет источник времени (для тестов границы срока жизни).
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

// NewTokenManager создаёт TokenManager с конфигом, переданным при старте.
func NewTokenManager(cfg JWTConfig, opts ...TokenOption) *TokenManager {
	m := &TokenManager{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL возвращает срок жизни выпускаемых токенов.
func (m *TokenManager) TTL() time.Duration {
	return m.cfg.TTL
}

// Issue создаёт и подписывает токен для пользователя.
//
// Claims: sub (userID), iat, exp = iat + TTL, iss/aud если заданы.
func (m *TokenManager) Issue(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", serr.ErrUserIDEmpty
	}
	now := m.now()

	claims := jwt.RegisteredClaims{
		Issuer:    m.cfg.Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.cfg.TTL)),
	}
	if m.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{m.cfg.Audience}
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(m.cfg.SigningKey))
}

// Parse проверяет подпись, алгоритм и срок жизни токена и возвращает userID.
//
// Ошибки:
//   - ErrTokenExpired, если exp в прошлом;
//   - ErrTokenInvalid во всех остальных случаях.
func (m *TokenManager) Parse(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	}
	if m.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.cfg.Issuer))
	}
	if m.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(m.cfg.Audience))
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.NewParser(opts...).ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return []byte(m.cfg.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", serr.ErrTokenExpired
		}
		return "", serr.ErrTokenInvalid
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return "", serr.ErrTokenInvalid
	}
	return userID, nil
}
