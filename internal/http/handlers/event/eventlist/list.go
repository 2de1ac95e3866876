// Package eventlist реализует HTTP-обработчик списка событий с фильтрами
// по датам, типу, статусу и клиенту, а также с постраничной выдачей.
package eventlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/response"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// Handler управляет HTTP-запросами списка событий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка событий.
type Service interface {
	List(ctx context.Context, userUID string, filter models.EventFilter) ([]*models.Event, models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	filter := models.EventFilter{
		EventType: r.URL.Query().Get("eventType"),
		Status:    r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("startDate must be in YYYY-MM-DD format"))
			return
		}
		filter.StartDate = &date
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("endDate must be in YYYY-MM-DD format"))
			return
		}
		filter.EndDate = &date
	}
	if raw := r.URL.Query().Get("clientId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("clientId must be a number"))
			return
		}
		filter.ClientID = &id
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			filter.Page = page
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil {
			filter.Limit = limit
		}
	}

	events, pagination, err := h.service.List(r.Context(), user.UID, filter)
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load events"))
		return
	}

	render.JSON(w, r, response.OK(map[string]any{
		"events":     events,
		"pagination": pagination,
	}))
}
