// Package models содержит модели HTTP API, общие для сервера и CLI-клиента.
//
// Все ответы сервера имеют вид {"success": bool, ...}:
// при ошибке заполняется Message, при успехе — полезная нагрузка эндпоинта.
package models

// RegisterRequest — тело запроса регистрации.
//
// Используется в:
//
//	POST /api/user/register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — тело запроса входа.
//
// Используется в:
//
//	POST /api/user/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest — тело запроса изменения профиля.
//
// Используется в:
//
//	PUT /api/user/profile
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdatePasswordRequest — тело запроса смены пароля.
//
// Используется в:
//
//	PUT /api/user/password
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserInfo — публичное представление пользователя после регистрации/логина.
type UserInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Profile — проекция пользователя только с name и email (/me, /profile).
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse — ответ регистрации и логина.
type AuthResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	User    UserInfo `json:"user"`
}

// ProfileResponse — ответ /me и /profile.
type ProfileResponse struct {
	Success bool    `json:"success"`
	User    Profile `json:"user"`
}

// MessageResponse — ответ с текстовым сообщением (ошибки и смена пароля).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
