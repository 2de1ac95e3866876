// Package clientcreate реализует HTTP-обработчик создания клиента.
//
// Handler принимает JSON-запрос с данными клиента, валидирует их, извлекает
// владельца из контекста, вызывает бизнес-логику создания клиента и
// возвращает созданную запись.
package clientcreate

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

// Handler управляет HTTP-запросами на создание клиентов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания клиента.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyClient) (*models.Client, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать клиента
// @Description Создает нового клиента текущего пользователя.
// @Tags Clients
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyClient true "Данные нового клиента"
// @Success 201 {object} response.Response "Клиент создан"
// @Failure 400 {object} response.Response "Ошибка валидации или занятая почта"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Router /clients [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyClient
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

	client, err := h.service.Create(r.Context(), user.UID, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNameTooShort):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("name must be at least 2 characters"))
		case errors.Is(err, models.ErrEmailTaken):
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("a client with this email already exists"))
		default:
			log.Error("failed to create client", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not create client"))
		}
		return
	}

	log.Info("client created", slog.Int("id", client.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.OKMessage("client created", map[string]any{
		"client": client,
	}))
}
