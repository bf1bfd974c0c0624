// Package api реализует HTTP-слой сервера task manager.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - логирование непредвиденных ошибок (клиенту уходит только "Server error").
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Verifier: auth gate защищённых маршрутов.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc      *service.Services
	Log      *logger.HTTPLogger
	Verifier *middleware.JWTVerifier

	strictStatus bool
	maxBodyBytes int64
}

// Option настраивает Handler.
type Option func(*Handler)

// WithStrictStatusCodes включает 400 для ошибок валидации и 409 для конфликтов
// вместо исторических 401/500.
func WithStrictStatusCodes(strict bool) Option {
	return func(h *Handler) {
		h.strictStatus = strict
	}
}

// WithMaxBodyBytes ограничивает размер тела запроса. 0 — без ограничения.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		h.maxBodyBytes = n
	}
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
//
// svc — набор сервисов приложения,
// log — логгер,
// verifier — auth gate.
func NewHandler(svc *service.Services, log *logger.HTTPLogger, verifier *middleware.JWTVerifier, opts ...Option) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	h := &Handler{
		Svc:      svc,
		Log:      log,
		Verifier: verifier,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// decode читает JSON тела запроса в dst.
//
// Пустое тело не ошибка: пустые поля отловит валидация сервиса.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	err := json.NewDecoder(body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		WriteError(w, http.StatusRequestEntityTooLarge, serr.ErrBodyTooLarge)
		return false
	}
	WriteError(w, http.StatusBadRequest, serr.ErrBadJSON)
	return false
}

// fail отвечает ошибкой сервиса с нужным статусом.
// Непредвиденные ошибки логируются, клиент получает только "Server error".
func (h *Handler) fail(w http.ResponseWriter, op string, err error) {
	status, known := h.statusFor(err)
	if !known {
		h.Log.Error(op+" failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, serr.ErrServer)
		return
	}
	WriteError(w, status, err)
}

// statusFor маппит доменную ошибку на HTTP-статус.
func (h *Handler) statusFor(err error) (int, bool) {
	validation := http.StatusUnauthorized
	conflict := http.StatusInternalServerError
	emailConflict := http.StatusUnauthorized
	if h.strictStatus {
		validation = http.StatusBadRequest
		conflict = http.StatusConflict
		emailConflict = http.StatusConflict
	}

	switch {
	case errors.Is(err, serr.ErrCredentialsRequired),
		errors.Is(err, serr.ErrInvalidEmail),
		errors.Is(err, serr.ErrPasswordTooShort),
		errors.Is(err, serr.ErrPasswordTooLong),
		errors.Is(err, serr.ErrLoginFieldsRequired):
		return http.StatusBadRequest, true
	case errors.Is(err, serr.ErrInvalidProfile),
		errors.Is(err, serr.ErrInvalidPassword):
		return validation, true
	case errors.Is(err, serr.ErrUserExists):
		return conflict, true
	case errors.Is(err, serr.ErrEmailInUse):
		return emailConflict, true
	case errors.Is(err, serr.ErrInvalidCredentials),
		errors.Is(err, serr.ErrUserNotExist),
		errors.Is(err, serr.ErrPasswordMismatch):
		return http.StatusUnauthorized, true
	default:
		return 0, false
	}
}

// WriteJSON пишет ответ в JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, models.MessageResponse{
		Success: false,
		Message: err.Error(),
	})
}
