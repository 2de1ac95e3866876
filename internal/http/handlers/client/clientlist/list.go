// Package clientlist реализует HTTP-обработчик списка клиентов с поиском,
// фильтром по статусу и пагинацией.
package clientlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/photostudio-crm/internal/http/middlewarectx"
	"github.com/magabrotheeeer/photostudio-crm/internal/http/response"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// Handler управляет HTTP-запросами на выборку клиентов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки клиентов.
type Service interface {
	List(ctx context.Context, userUID string, filter models.ClientFilter) ([]*models.Client, models.Pagination, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список клиентов
// @Description Возвращает страницу клиентов текущего пользователя с поиском и фильтром по статусу.
// @Tags Clients
// @Produce  json
// @Security BearerAuth
// @Param search query string false "Подстрока для поиска по имени, почте и телефону"
// @Param status query string false "Фильтр по статусу"
// @Param page query int false "Номер страницы, с единицы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} response.Response "Страница клиентов"
// @Failure 401 {object} response.Response "Пользователь не авторизован"
// @Router /clients [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 10
	}
	filter := models.ClientFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	clients, pagination, err := h.service.List(r.Context(), user.UID, filter)
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list clients"))
		return
	}

	log.Info("clients listed", slog.Int("count", len(clients)))
	render.JSON(w, r, response.OK(map[string]any{
		"clients":    clients,
		"pagination": pagination,
	}))
}
