// @title           Task Manager API
// @version         1.0
// @description     Task manager backend: user registration, login and profile.

// @contact.name   Ivan Chernomyrdin
// @contact.url    https://github.com/IvanChernomyrdin

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:7000
// @BasePath  /
// @schemes http

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
//
// Package main содержит точку входа серверного приложения task manager.
//
// Пакет отвечает за инициализацию и жизненный цикл HTTP(S)-сервера, а именно:
//   - загрузку переменных окружения из файла .env (если он присутствует);
//   - загрузку конфигурации сервера из файла ./configs/server.yaml;
//   - подключение к хранилищу пользователей (postgres с миграциями или mongo с индексами);
//   - создание репозиториев, сервисов, middleware и HTTP-обработчиков;
//   - запуск сервера с заданными таймаутами (HTTPS, если tls.enabled);
//   - обработку системных сигналов завершения (SIGINT, SIGTERM, SIGQUIT);
//   - корректное (graceful) завершение работы сервера с таймаутом.
//
// Пакет не содержит бизнес-логики и не предназначен для unit-тестирования.
// HTTP API сервера реализовано в пакете internal/server/api и документируется с помощью OpenAPI (Swagger).
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/api"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/middleware"
	h "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/net/http"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/repository"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-taskmanager/internal/shared/logger"

	_ "github.com/IvanChernomyrdin/go-yandex-taskmanager/swagger/docs"
)

func main() {
	bootLog := logger.NewHTTPLogger().Logger.Sugar()

	if err := godotenv.Load(); err != nil {
		bootLog.Warnf("no .env file loaded, error: %v", err)
	}

	cfg, err := config.Load("./configs/server.yaml")
	if err != nil {
		bootLog.Fatal(err)
	}

	httpLogger := logger.New(logger.Options{
		File:        cfg.Log.File,
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	defer func() { _ = httpLogger.Sync() }()
	sugar := httpLogger.Logger.Sugar()

	if cfg.Auth.JWT.Ephemeral {
		sugar.Warn("JWT_SIGNING_KEY is not set: using a random key, tokens will not survive a restart")
	}

	// создаём контекст и errgroup
	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// подключаем хранилище пользователей
	usersRepo, closeStore, err := openUsersRepo(ctx, cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	defer closeStore()

	// создаём сервис
	svc, err := service.NewServices(usersRepo, cfg)
	if err != nil {
		sugar.Fatal(err)
	}
	verifier := middleware.NewJWTVerifier(svc.Tokens)
	// создаём хандлер
	handler := api.NewHandler(svc, httpLogger, verifier,
		api.WithStrictStatusCodes(cfg.API.StrictStatusCodes),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)
	// создаём роутер
	router := h.NewRouter(handler, cfg.CORS.AllowedOrigins)

	//создаём сервер
	addr := cfg.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}
	if cfg.TLS.Enabled {
		server.TLSConfig = &tls.Config{MinVersion: tlsVersion(cfg.TLS.MinVersion)}
	}

	g, ctx := errgroup.WithContext(ctx)

	// запускаем сервер
	g.Go(func() error {
		sugar.Infow("server started", "addr", addr, "env", cfg.Env, "db", cfg.DB.Driver, "tls", cfg.TLS.Enabled)

		var err error
		if cfg.TLS.Enabled {
			err = server.ListenAndServeTLS(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// graceful shutdown с таймаутом из конфига
	g.Go(func() error {
		<-ctx.Done()

		sugar.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	// ожидание и единная обработка ошибок
	if err := g.Wait(); err != nil {
		sugar.Fatalf("server stopped with error: %v", err)
	}
	sugar.Info("server gracefully stopped")
}

// openUsersRepo подключает хранилище по db.driver и готовит схему.
// Возвращаемая функция закрывает пул соединений.
func openUsersRepo(ctx context.Context, cfg *config.Config) (service.UsersRepo, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := config.OpenPostgres(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Migrations.Enabled {
			if err := config.RunMigrations(db, cfg.Migrations.Path); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return repository.NewUsersRepository(db, cfg.DB.QueryTimeout), func() { _ = db.Close() }, nil

	case config.DriverMongo:
		client, err := config.OpenMongo(ctx, cfg.DB)
		if err != nil {
			return nil, nil, err
		}
		repo := repository.NewMongoUsersRepository(client.Database(cfg.DB.Database).Collection(repository.UsersCollection))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil

	default:
		return nil, nil, serr.ErrUnsupportedStorage
	}
}

func tlsVersion(v string) uint16 {
	if v == "1.3" {
		return tls.VersionTLS13
	}
	return tls.VersionTLS12
}
