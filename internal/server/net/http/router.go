// Package http реализует маршрутизацию HTTP-слоя сервера task manager.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - CORS по списку разрешённых origin;
//   - логирование выполнения HTTP-запросов;
//   - проверку токенов на защищённых маршрутах.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/middleware"
)

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - middleware RequestID, Recoverer, CORS и логирования для всех запросов;
//   - GET / и swagger;
//   - публичные /api/user/register и /api/user/login;
//   - группу защищённых эндпоинтов /api/user/me, /profile, /password.
func NewRouter(h *api.Handler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(h.Log))

	r.Get("/", h.Root)
	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/user", func(r chi.Router) {
		// Публичные пути
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		// защищены пути
		r.Group(func(r chi.Router) {
			r.Use(h.Verifier.AuthMiddleware())
			r.Get("/me", h.Me)
			r.Put("/profile", h.UpdateProfile)
			r.Put("/password", h.UpdatePassword)
		})
	})

	return r
}
