// Методы клиента для эндпоинтов пользователя: регистрация, вход,
// текущий пользователь, профиль и пароль.
package api

import (
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/models"
)

// Пути эндпоинтов пользователя.
const (
	RegisterPath = "/api/user/register"
	LoginPath    = "/api/user/login"
	MePath       = "/api/user/me"
	ProfilePath  = "/api/user/profile"
	PasswordPath = "/api/user/password"
)

// Register регистрирует пользователя и возвращает токен и данные пользователя.
func (c *Client) Register(name, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON(RegisterPath, models.RegisterRequest{Name: name, Email: email, Password: password}, &resp, "")
	return resp, err
}

// Login выполняет вход и возвращает токен.
func (c *Client) Login(email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON(LoginPath, models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me запрашивает name и email владельца токена.
func (c *Client) Me(token string) (models.ProfileResponse, error) {
	var resp models.ProfileResponse
	err := c.GetJSON(MePath, &resp, token)
	return resp, err
}

// UpdateProfile меняет name и email.
func (c *Client) UpdateProfile(token, name, email string) (models.ProfileResponse, error) {
	var resp models.ProfileResponse
	err := c.PutJSON(ProfilePath, models.UpdateProfileRequest{Name: name, Email: email}, &resp, token)
	return resp, err
}

// UpdatePassword меняет пароль. Токен после смены остаётся рабочим.
func (c *Client) UpdatePassword(token, currentPassword, newPassword string) (models.MessageResponse, error) {
	var resp models.MessageResponse
	err := c.PutJSON(PasswordPath, models.UpdatePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, &resp, token)
	return resp, err
}
