// Package eventcreate реализует HTTP-обработчик создания события в расписании.
//
// Перед сохранением проверяется корректность интервала и отсутствие
// пересечений с другими событиями владельца на ту же дату. При пересечении
// возвращается 409 с данными конфликтующего события.
package eventcreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/response"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// Handler управляет HTTP-запросами на создание событий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyEvent) (*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP обрабатывает POST-запрос на создание события.
//
// @Summary Создать событие
// @Security ApiKeyAuth
// @Tags events
// @Accept json
// @Produce json
// @Param input body models.DummyEvent true "Данные события"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	event, err := h.service.Create(r.Context(), user.UID, req)
	if err != nil {
		var conflict *models.ScheduleConflictError
		switch {
		case errors.As(err, &conflict):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Response{
				Success: false,
				Message: "time slot conflicts with another event",
				Data: map[string]any{
					"conflictingEvent": map[string]any{
						"id":        conflict.EventID,
						"title":     conflict.Title,
						"startTime": conflict.StartTime,
						"endTime":   conflict.EndTime,
					},
				},
			})
		case errors.Is(err, models.ErrInvalidTimeRange):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("start time must be before end time"))
		case errors.Is(err, models.ErrClientNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
		default:
			log.Error("failed to create event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create event"))
		}
		return
	}

	log.Info("event created", slog.Int("id", event.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKMessage("event created", map[string]any{
		"event": event,
	}))
}
