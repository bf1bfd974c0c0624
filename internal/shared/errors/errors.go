// Package errors содержит общие доменные ошибки приложения.
//
// Ошибки repository-слоя описывают состояние хранилища (не найдено, уже существует),
// ошибки service-слоя несут текст, который уходит клиенту в поле "message".
// В api слое они маппятся на HTTP-статусы через errors.Is.
package errors

import "errors"

// ошибки хранилища
var (
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Ресурс уже существует (нарушение уникального индекса по email)
	ErrAlreadyExists = errors.New("already exists")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
)

// ошибки регистрации
var (
	ErrCredentialsRequired = errors.New("All credentials are required")
	ErrInvalidEmail        = errors.New("Invalid Email")
	ErrPasswordTooShort    = errors.New("Password must be atleast 8 characters")
	ErrPasswordTooLong     = errors.New("Password must be at most 72 bytes")
	ErrUserExists          = errors.New("User already exists")
)

// ошибки логина
var (
	ErrLoginFieldsRequired = errors.New("Email and password required")
	// одинаковый текст для неизвестного email и неверного пароля
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// ошибки профиля и пароля
var (
	ErrUserNotExist       = errors.New("User does not exist")
	ErrInvalidProfile     = errors.New("Valid email and name required")
	ErrEmailInUse         = errors.New("Email in use by other account")
	ErrInvalidPassword    = errors.New("Password invalid")
	ErrPasswordMismatch   = errors.New("Password does not match")
	ErrUserIDEmpty        = errors.New("user id cannot be empty")
	ErrUnsupportedStorage = errors.New("unsupported storage driver")
)

// ошибки HTTP-слоя
var (
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("Invalid request body")
	// Тело запроса больше server.max_body_bytes
	ErrBodyTooLarge = errors.New("Request body too large")
	// Ответ клиенту на любую непредвиденную ошибку
	ErrServer = errors.New("Server error")
	// Нет токена в заголовке Authorization
	ErrTokenMissing = errors.New("Not authorized, token missing")
	// Токен не прошёл проверку подписи/claims
	ErrTokenInvalid = errors.New("Token invalid")
	// Срок жизни токена истёк
	ErrTokenExpired = errors.New("Token expired")
)

// для тестов
var (
	// ожидаемая ошибка
	ErrExpectedError = errors.New("expected error")
	// неожидаемая ошибка
	ErrUnexpectedError = errors.New("unexpected error")
)
