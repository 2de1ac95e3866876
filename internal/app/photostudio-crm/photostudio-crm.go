// Package photostudiocrm собирает и запускает основное HTTP-приложение CRM.
package photostudiocrm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/photostudio-crm/internal/cache"
	"github.com/magabrotheeeer/photostudio-crm/internal/config"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/jwt"
	"github.com/magabrotheeeer/photostudio-crm/internal/migrations"
	authservice "github.com/magabrotheeeer/photostudio-crm/internal/services/auth"
	clientservice "github.com/magabrotheeeer/photostudio-crm/internal/services/client"
	eventservice "github.com/magabrotheeeer/photostudio-crm/internal/services/event"
	"github.com/magabrotheeeer/photostudio-crm/internal/storage/repository"
)

// App хранит собранные зависимости основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New подключает хранилище, применяет миграции, инициализирует кеш и
// собирает маршруты приложения.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	clientService := clientservice.NewClientService(db, cacheRedis, logger)
	eventService := eventservice.NewEventService(db, db, cacheRedis, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, authService, clientService, eventService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и завершает его корректно при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
