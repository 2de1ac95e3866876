// Package photostudiocrm предоставляет маршруты для основного приложения.
package photostudiocrm

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientcreate"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientlist"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientread"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientremove"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientstats"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/client/clientupdate"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventcreate"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventlist"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventread"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventremove"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventstats"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/handlers/event/eventupdate"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/photostudio-crm/internal/services/auth"
	clientservice "github.com/magabrotheeeer/photostudio-crm/internal/services/client"
	eventservice "github.com/magabrotheeeer/photostudio-crm/internal/services/event"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.AuthService, clientService *clientservice.ClientService, eventService *eventservice.EventService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/profile", profile.New(logger).ServeHTTP)

			r.Post("/clients", clientcreate.New(logger, clientService).ServeHTTP)
			r.Get("/clients", clientlist.New(logger, clientService).ServeHTTP)
			r.Get("/clients/stats", clientstats.New(logger, clientService).ServeHTTP)
			r.Get("/clients/{id}", clientread.New(logger, clientService).ServeHTTP)
			r.Put("/clients/{id}", clientupdate.New(logger, clientService).ServeHTTP)
			r.Delete("/clients/{id}", clientremove.New(logger, clientService).ServeHTTP)

			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
			r.Get("/events/stats", eventstats.New(logger, eventService).ServeHTTP)
			r.Get("/events/{id}", eventread.New(logger, eventService).ServeHTTP)
			r.Put("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, eventService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
