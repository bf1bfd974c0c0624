// HTTP-хендлеры регистрации, логина и профиля пользователя
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/middleware"
	srvmodels "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/models"
)

// PasswordUpdatedMessage — ответ на успешную смену пароля.
const PasswordUpdatedMessage = "Password updated"

// Root отвечает, что сервер жив.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(ContentType, "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("API WORKING"))
}

// Register обрабатывает регистрацию пользователя.
//
// @Summary      Register user
// @Description  Creates a user and returns a token. Email must be unique.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      200 {object} models.AuthResponse
// @Failure      400 {object} models.MessageResponse "Missing fields, invalid email, password shorter than 8 characters or longer than 72 bytes"
// @Failure      409 {object} models.MessageResponse "User already exists (strict mode)"
// @Failure      500 {object} models.MessageResponse "User already exists (legacy mode) or server error"
// @Router       /api/user/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.Svc.Users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, "register", err)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse(res))
}

// Login обрабатывает вход пользователя.
//
// @Summary      Login
// @Description  Checks email and password and returns a token.
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.AuthResponse
// @Failure      400 {object} models.MessageResponse "Email and password required"
// @Failure      401 {object} models.MessageResponse "Invalid credentials"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/user/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.Svc.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, "login", err)
		return
	}

	WriteJSON(w, http.StatusOK, authResponse(res))
}

// Me возвращает name и email текущего пользователя.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.ProfileResponse
// @Failure      401 {object} models.MessageResponse "Token missing, invalid or expired, or user does not exist"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/user/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	user, err := h.Svc.Users.Me(r.Context(), userID)
	if err != nil {
		h.fail(w, "me", err)
		return
	}

	WriteJSON(w, http.StatusOK, profileResponse(user))
}

// UpdateProfile меняет name и email текущего пользователя.
//
// @Summary      Update profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdateProfileRequest true "Profile"
// @Success      200 {object} models.ProfileResponse
// @Failure      400 {object} models.MessageResponse "Valid email and name required (strict mode)"
// @Failure      401 {object} models.MessageResponse "Validation error or email in use (legacy mode), unauthorized"
// @Failure      409 {object} models.MessageResponse "Email in use by other account (strict mode)"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/user/profile [put]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.Svc.Users.UpdateProfile(r.Context(), userID, req.Name, req.Email)
	if err != nil {
		h.fail(w, "update profile", err)
		return
	}

	WriteJSON(w, http.StatusOK, profileResponse(user))
}

// UpdatePassword меняет пароль текущего пользователя.
//
// @Summary      Update password
// @Description  Verifies the current password and stores the new one. Issued tokens stay valid.
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body models.UpdatePasswordRequest true "Passwords"
// @Success      200 {object} models.MessageResponse
// @Failure      400 {object} models.MessageResponse "Password invalid (strict mode)"
// @Failure      401 {object} models.MessageResponse "Password invalid (legacy mode), password does not match, unauthorized"
// @Failure      500 {object} models.MessageResponse "Server error"
// @Router       /api/user/password [put]
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req models.UpdatePasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.Svc.Users.UpdatePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.fail(w, "update password", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.MessageResponse{Success: true, Message: PasswordUpdatedMessage})
}

// userID достаёт id, положенный auth gate. Без него маршрут не должен был вызваться.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrTokenMissing)
		return "", false
	}
	return userID, true
}

func authResponse(res service.AuthResult) models.AuthResponse {
	return models.AuthResponse{
		Success: true,
		Token:   res.Token,
		User: models.UserInfo{
			ID:    res.User.ID,
			Name:  res.User.Name,
			Email: res.User.Email,
		},
	}
}

func profileResponse(u srvmodels.User) models.ProfileResponse {
	return models.ProfileResponse{
		Success: true,
		User:    models.Profile{Name: u.Name, Email: u.Email},
	}
}
