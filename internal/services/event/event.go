// Package services содержит бизнес-логику расписания событий: CRUD в рамках
// владельца и проверку конфликтов временных интервалов.
//
// Конфликтом считается пересечение полуоткрытых интервалов [start, end)
// двух неотмененных событий одного владельца в одну дату. Проверка
// выполняется при создании и при обновлении даты или времени; собственная
// запись исключается из множества конфликтов при обновлении.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/photostudio-crm/internal/lib/sl"
	"github.com/magabrotheeeer/photostudio-crm/internal/lib/timeslot"
	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// DateLayout — формат даты события в API.
const DateLayout = "2006-01-02"

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	// CreateEvent добавляет новое событие и возвращает его ID.
	CreateEvent(ctx context.Context, event models.Event) (int, error)
	// ReadEvent возвращает событие владельца по ID или models.ErrNotFound.
	ReadEvent(ctx context.Context, userUID string, id int) (*models.Event, error)
	// UpdateEvent обновляет событие и возвращает количество изменённых записей.
	UpdateEvent(ctx context.Context, event models.Event) (int, error)
	// RemoveEvent удаляет событие владельца и возвращает количество удалённых записей.
	RemoveEvent(ctx context.Context, userUID string, id int) (int, error)
	// ListEvents возвращает страницу событий владельца и общее число записей.
	ListEvents(ctx context.Context, userUID string, filter models.EventFilter) ([]*models.Event, int, error)
	// ListEventsByDate возвращает все неотмененные события владельца в дату,
	// исключая excludeID.
	ListEventsByDate(ctx context.Context, userUID string, date time.Time, excludeID int) ([]*models.Event, error)
	// CountEventStats подсчитывает события владельца по статусам.
	CountEventStats(ctx context.Context, userUID string) (*models.EventStats, error)
}

// ClientReader проверяет существование и принадлежность клиента владельцу.
type ClientReader interface {
	ReadClient(ctx context.Context, userUID string, id int) (*models.Client, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// EventService реализует бизнес-логику расписания.
type EventService struct {
	repo    EventRepository
	clients ClientReader
	cache   Cache
	log     *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, clients ClientReader, cache Cache, log *slog.Logger) *EventService {
	return &EventService{
		repo:    repo,
		clients: clients,
		cache:   cache,
		log:     log,
	}
}

func eventKey(userUID string, id int) string {
	return fmt.Sprintf("event:%s:%d", userUID, id)
}

func eventStatsKey(userUID string) string {
	return fmt.Sprintf("eventstats:%s", userUID)
}

// checkConflict ищет пересечение интервала [start, end) с каждым неотмененным
// событием владельца в дату date, кроме события excludeID. Проверка
// исчерпывающая; возвращается первое найденное конфликтующее событие.
func (s *EventService) checkConflict(ctx context.Context, userUID string, date time.Time, start, end string, excludeID int) error {
	const op = "services.event.checkConflict"

	existing, err := s.repo.ListEventsByDate(ctx, userUID, date, excludeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, e := range existing {
		overlaps, err := timeslot.OverlapsClock(start, end, e.StartTime, e.EndTime)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if overlaps {
			return &models.ScheduleConflictError{
				EventID:   e.ID,
				Title:     e.Title,
				StartTime: e.StartTime,
				EndTime:   e.EndTime,
			}
		}
	}
	return nil
}

// optional возвращает nil для пустой строки, иначе указатель на обрезанное значение.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// Create создает новое событие владельца. Порядок проверок: валидность
// интервала, конфликт расписания, существование и принадлежность клиента.
func (s *EventService) Create(ctx context.Context, userUID string, req models.DummyEvent) (*models.Event, error) {
	const op = "services.event.Create"

	date, err := time.Parse(DateLayout, req.EventDate)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid event date: %w", op, err)
	}
	valid, err := timeslot.ValidRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !valid {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidTimeRange)
	}

	if err := s.checkConflict(ctx, userUID, date, req.StartTime, req.EndTime, 0); err != nil {
		return nil, err
	}

	if req.ClientID != nil {
		if _, err := s.clients.ReadClient(ctx, userUID, *req.ClientID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = models.EventTypeSession
	}
	status := req.Status
	if status == "" {
		status = models.EventStatusScheduled
	}
	event := models.Event{
		UserUID:     userUID,
		Title:       strings.TrimSpace(req.Title),
		Description: optional(req.Description),
		EventDate:   date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		EventType:   eventType,
		Status:      status,
		Location:    optional(req.Location),
		Notes:       optional(req.Notes),
		ClientID:    req.ClientID,
	}

	id, err := s.repo.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("created new event", slog.Int("id", id))

	if err := s.cache.Invalidate(eventStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return s.repo.ReadEvent(ctx, userUID, id)
}

// Read возвращает событие владельца по ID, используя кеш или репозиторий.
func (s *EventService) Read(ctx context.Context, userUID string, id int) (*models.Event, error) {
	var result *models.Event
	cacheKey := eventKey(userUID, id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadEvent(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}

// List возвращает страницу событий владельца и блок пагинации.
func (s *EventService) List(ctx context.Context, userUID string, filter models.EventFilter) ([]*models.Event, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	events, total, err := s.repo.ListEvents(ctx, userUID, filter)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return events, models.NewPagination(total, filter.Page, filter.Limit), nil
}

// Update частично обновляет событие владельца: незаданные поля сохраняют
// прежние значения. Конфликт расписания перепроверяется для объединённой
// записи, исключая её саму; перевод события в cancelled проверку пропускает.
func (s *EventService) Update(ctx context.Context, userUID string, id int, req models.DummyEventUpdate) (*models.Event, error) {
	const op = "services.event.Update"

	event, err := s.repo.ReadEvent(ctx, userUID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = optional(*req.Description)
	}
	if req.EventDate != nil {
		date, err := time.Parse(DateLayout, *req.EventDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid event date: %w", op, err)
		}
		event.EventDate = date
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.EventType != nil {
		event.EventType = *req.EventType
	}
	if req.Status != nil {
		event.Status = *req.Status
	}
	if req.Location != nil {
		event.Location = optional(*req.Location)
	}
	if req.Notes != nil {
		event.Notes = optional(*req.Notes)
	}
	if req.ClearClient {
		event.ClientID = nil
	} else if req.ClientID != nil {
		if _, err := s.clients.ReadClient(ctx, userUID, *req.ClientID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return nil, fmt.Errorf("%s: %w", op, models.ErrClientNotFound)
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		event.ClientID = req.ClientID
	}

	valid, err := timeslot.ValidRange(event.StartTime, event.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !valid {
		return nil, fmt.Errorf("%s: %w", op, models.ErrInvalidTimeRange)
	}

	if event.Status != models.EventStatusCancelled {
		if err := s.checkConflict(ctx, userUID, event.EventDate, event.StartTime, event.EndTime, id); err != nil {
			return nil, err
		}
	}

	if _, err := s.repo.UpdateEvent(ctx, *event); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Invalidate(eventKey(userUID, id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	if err := s.cache.Invalidate(eventStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return s.repo.ReadEvent(ctx, userUID, id)
}

// Remove удаляет событие владельца.
func (s *EventService) Remove(ctx context.Context, userUID string, id int) error {
	const op = "services.event.Remove"

	count, err := s.repo.RemoveEvent(ctx, userUID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}

	if err := s.cache.Invalidate(eventKey(userUID, id)); err != nil {
		s.log.Warn("failed to invalidate cache", sl.Err(err))
	}
	if err := s.cache.Invalidate(eventStatsKey(userUID)); err != nil {
		s.log.Warn("failed to invalidate stats cache", sl.Err(err))
	}
	return nil
}

// Stats возвращает счетчики событий владельца по статусам, кешируя их ненадолго.
func (s *EventService) Stats(ctx context.Context, userUID string) (*models.EventStats, error) {
	var result *models.EventStats
	cacheKey := eventStatsKey(userUID)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	if found {
		return result, nil
	}
	result, err = s.repo.CountEventStats(ctx, userUID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, time.Minute); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return result, nil
}
