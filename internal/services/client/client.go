// Package services содержит бизнес-логику работы с клиентами фотостудии.
//
// Все операции выполняются в рамках одного владельца: uid авторизованного
// пользователя передается явным параметром в каждый вызов и ограничивает
// видимость записей.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// ClientRepository определяет методы для работы с клиентами в хранилище.
type ClientRepository interface {
	// CreateClient добавляет нового клиента и возвращает его ID.
	CreateClient(ctx context.Context, client models.Client) (int, error)
	// ReadClient возвращает клиента владельца по ID или models.ErrNotFound.
	ReadClient(ctx context.Context, userUID string, id int) (*models.Client, error)
	// FindClientByEmail ищет клиента владельца с данной почтой, исключая excludeID.
	FindClientByEmail(ctx context.Context, userUID, email string, excludeID int) (*models.Client, error)
	// UpdateClient обновляет клиента и возвращает количество изменённых записей.
	UpdateClient(ctx context.Context, client models.Client) (int, error)
	// RemoveClient удаляет клиента владельца и возвращает количество удалённых записей.
	RemoveClient(ctx context.Context, userUID string, id int) (int, error)
	// ListClients возвращает страницу клиентов владельца и общее число записей.
	ListClients(ctx context.Context, userUID string, filter models.ClientFilter) ([]*models.Client, int, error)
	// CountClientStats подсчитывает клиентов владельца по статусам.
	CountClientStats(ctx context.Context, userUID string) (*models.ClientStats, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ClientService реализует бизнес-логику работы с клиентами, включая кеширование чтений.
type ClientService struct {
	repo  ClientRepository
	cache Cache
	log   *slog.Logger
}

// NewClientService создает новый экземпляр ClientService.
func NewClientService(repo ClientRepository, cache Cache, log *slog.Logger) *ClientService {
	return &ClientService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func clientKey(userUID string, id int) string {
	return fmt.Sprintf("client:%s:%d", userUID, id)
}

func clientStatsKey(userUID string) string {
	return fmt.Sprintf("clientstats:%s", userUID)
}

// optional возвращает nil для пустой строки, иначе указатель на обрезанное значение.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Create создает нового клиента владельца и возвращает созданную запись.
// Непустая почта должна быть уникальна среди клиентов владельца.
func (s *ClientService) Create(ctx context.Context, userUID string, req models.DummyClient) (*models.Client, error) {
	const op = "services.client.Create"

	name := strings.TrimSpace(req.Name)
	if len(name) < 2 {
		return nil, fmt.Errorf("%s: %w", op, models.ErrNameTooShort)
	}

	var email *string
	if e := strings.ToLower(strings.TrimSpace(req.Email)); e != "" {
		if _, err := s.repo.FindClientByEmail(ctx, userUID, e, 0); err == nil {
			return nil, fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		} else if !errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		email = &e
	}

	status := req.Status
	if status == "" {
		status = models.ClientStatusActive
	}
	client := models.Client{
		UserUID: userUID,
		Name:    name,
		Email:   email,
		Phone:   optional(req.Phone),
		Address: optional(req.Address),
		Notes:   optional(req.Notes),
		Status:  status,
	}

	id, err := s.repo.CreateClient(ctx, client)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new client", slog.Int("id", id))

	if err := s.cache.Invalidate(clientStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return s.repo.ReadClient(ctx, userUID, id)
}

// Read возвращает клиента владельца по ID, используя кеш или репозиторий.
func (s *ClientService) Read(ctx context.Context, userUID string, id int) (*models.Client, error) {
	var result *models.Client
	cacheKey := clientKey(userUID, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadClient(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает страницу клиентов владельца и блок пагинации.
func (s *ClientService) List(ctx context.Context, userUID string, filter models.ClientFilter) ([]*models.Client, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	clients, total, err := s.repo.ListClients(ctx, userUID, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return clients, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// Update частично обновляет клиента владельца: незаданные поля сохраняют
// прежние значения, пустая строка очищает необязательное поле. Уникальность
// почты перепроверяется только при её изменении.
func (s *ClientService) Update(ctx context.Context, userUID string, id int, req models.DummyClientUpdate) (*models.Client, error) {
	const op = "services.client.Update"

	client, err := s.repo.ReadClient(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 2 {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNameTooShort)
		}
		client.Name = name
	}
	if req.Email != nil {
		if e := strings.ToLower(strings.TrimSpace(*req.Email)); e == "" {
			client.Email = nil
		} else if client.Email == nil || e != *client.Email {
			if _, err := s.repo.FindClientByEmail(ctx, userUID, e, id); err == nil {
				return nil, fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
			} else if !errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, err)
			}
			client.Email = &e
		}
	}
	if req.Phone != nil {
		client.Phone = optional(*req.Phone)
	}
	if req.Address != nil {
		client.Address = optional(*req.Address)
	}
	if req.Notes != nil {
		client.Notes = optional(*req.Notes)
	}
	if req.Status != nil {
		client.Status = *req.Status
	}

	if _, err := s.repo.UpdateClient(ctx, *client); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(clientKey(userUID, id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	if err := s.cache.Invalidate(clientStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return s.repo.ReadClient(ctx, userUID, id)
}

// Remove удаляет клиента владельца. Ссылки из событий обнуляются на уровне
// схемы, поэтому удаление используемого клиента не является ошибкой.
func (s *ClientService) Remove(ctx context.Context, userUID string, id int) error {
	const op = "services.client.Remove"

	count, err := s.repo.RemoveClient(ctx, userUID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	if err := s.cache.Invalidate(clientKey(userUID, id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	if err := s.cache.Invalidate(clientStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return nil
}

// Stats возвращает счетчики клиентов владельца по статусам, кешируя их ненадолго.
func (s *ClientService) Stats(ctx context.Context, userUID string) (*models.ClientStats, error) {
	var result *models.ClientStats
	cacheKey := clientStatsKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.CountClientStats(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}
