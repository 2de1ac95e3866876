// Package eventupdate реализует HTTP-обработчик частичного обновления события.
//
// Итоговый интервал собирается из старых и новых значений, после чего
// пересечения проверяются заново, исключая само обновляемое событие.
package eventupdate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/response"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// Handler управляет HTTP-запросами на обновление событий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления события.
type Service interface {
	Update(ctx context.Context, userUID string, id int, req models.DummyEventUpdate) (*models.Event, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyEventUpdate
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

	event, err := h.service.Update(r.Context(), user.UID, id, req)
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
		case errors.Is(err, models.ErrNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
		case errors.Is(err, models.ErrClientNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("client not found"))
		case errors.Is(err, models.ErrInvalidTimeRange):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("start time must be before end time"))
		default:
			log.Error("failed to update event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update event"))
		}
		return
	}

	log.Info("event updated", slog.Int("id", id))
	render.JSON(w, r, response.OKMessage("event updated", map[string]any{
		"event": event,
	}))
}
