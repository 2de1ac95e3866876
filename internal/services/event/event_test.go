package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateEvent(ctx context.Context, event models.Event) (int, error) {
	args := m.Called(ctx, event)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ReadEvent(ctx context.Context, userUID string, id int) (*models.Event, error) {
	args := m.Called(ctx, userUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *RepoMock) UpdateEvent(ctx context.Context, event models.Event) (int, error) {
	args := m.Called(ctx, event)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) RemoveEvent(ctx context.Context, userUID string, id int) (int, error) {
	args := m.Called(ctx, userUID, id)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListEvents(ctx context.Context, userUID string, filter models.EventFilter) ([]*models.Event, int, error) {
	args := m.Called(ctx, userUID, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Event), args.Int(1), args.Error(2)
}

func (m *RepoMock) ListEventsByDate(ctx context.Context, userUID string, date time.Time, excludeID int) ([]*models.Event, error) {
	args := m.Called(ctx, userUID, date, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *RepoMock) CountEventStats(ctx context.Context, userUID string) (*models.EventStats, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EventStats), args.Error(1)
}

type ClientsMock struct{ mock.Mock }

func (m *ClientsMock) ReadClient(ctx context.Context, userUID string, id int) (*models.Client, error) {
	args := m.Called(ctx, userUID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const userUID = "11111111-2222-3333-4444-555555555555"

func existingEvent(id int, start, end string) *models.Event {
	return &models.Event{
		ID:        id,
		UserUID:   userUID,
		Title:     "Съемка",
		EventDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime: start,
		EndTime:   end,
		EventType: models.EventTypeSession,
		Status:    models.EventStatusScheduled,
	}
}

func TestEventService_Create_Conflicts(t *testing.T) {
	tests := []struct {
		name         string
		start, end   string
		existing     []*models.Event
		wantConflict bool
	}{
		{
			name:  "свободный день",
			start: "10:00", end: "11:00",
			existing:     []*models.Event{},
			wantConflict: false,
		},
		{
			name:  "частичное пересечение",
			start: "10:30", end: "11:30",
			existing:     []*models.Event{existingEvent(7, "10:00", "11:00")},
			wantConflict: true,
		},
		{
			name:  "интервал внутри существующего",
			start: "10:30", end: "10:45",
			existing:     []*models.Event{existingEvent(7, "10:00", "11:00")},
			wantConflict: true,
		},
		{
			name:  "идентичный интервал",
			start: "10:00", end: "11:00",
			existing:     []*models.Event{existingEvent(7, "10:00", "11:00")},
			wantConflict: true,
		},
		{
			name:  "встык после существующего",
			start: "11:00", end: "12:00",
			existing:     []*models.Event{existingEvent(7, "10:00", "11:00")},
			wantConflict: false,
		},
		{
			name:  "встык перед существующим",
			start: "09:00", end: "10:00",
			existing:     []*models.Event{existingEvent(7, "10:00", "11:00")},
			wantConflict: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			clients := new(ClientsMock)
			cache := new(CacheMock)

			repo.On("ListEventsByDate", mock.Anything, userUID, mock.Anything, 0).
				Return(tt.existing, nil).Once()
			if !tt.wantConflict {
				repo.On("CreateEvent", mock.Anything, mock.Anything).Return(42, nil).Once()
				repo.On("ReadEvent", mock.Anything, userUID, 42).
					Return(existingEvent(42, tt.start, tt.end), nil).Once()
				cache.On("Invalidate", "eventstats:"+userUID).Return(nil).Once()
			}

			service := NewEventService(repo, clients, cache, newNoopLogger())
			_, err := service.Create(context.Background(), userUID, models.DummyEvent{
				Title:     "Новая съемка",
				EventDate: "2026-09-15",
				StartTime: tt.start,
				EndTime:   tt.end,
			})

			if tt.wantConflict {
				var conflict *models.ScheduleConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, 7, conflict.EventID)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestEventService_Create_InvalidTimeRange(t *testing.T) {
	service := NewEventService(new(RepoMock), new(ClientsMock), new(CacheMock), newNoopLogger())

	_, err := service.Create(context.Background(), userUID, models.DummyEvent{
		Title:     "Съемка",
		EventDate: "2026-09-15",
		StartTime: "11:00",
		EndTime:   "10:00",
	})
	require.ErrorIs(t, err, models.ErrInvalidTimeRange)

	_, err = service.Create(context.Background(), userUID, models.DummyEvent{
		Title:     "Съемка",
		EventDate: "2026-09-15",
		StartTime: "10:00",
		EndTime:   "10:00",
	})
	require.ErrorIs(t, err, models.ErrInvalidTimeRange)
}

func TestEventService_Create_UnknownClient(t *testing.T) {
	repo := new(RepoMock)
	clients := new(ClientsMock)
	clientID := 99

	repo.On("ListEventsByDate", mock.Anything, userUID, mock.Anything, 0).
		Return([]*models.Event{}, nil).Once()
	clients.On("ReadClient", mock.Anything, userUID, clientID).
		Return(nil, models.ErrNotFound).Once()

	service := NewEventService(repo, clients, new(CacheMock), newNoopLogger())
	_, err := service.Create(context.Background(), userUID, models.DummyEvent{
		Title:     "Съемка",
		EventDate: "2026-09-15",
		StartTime: "10:00",
		EndTime:   "11:00",
		ClientID:  &clientID,
	})
	require.ErrorIs(t, err, models.ErrClientNotFound)
	clients.AssertExpectations(t)
}

func TestEventService_Update_ExcludesSelf(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	eventID := 7

	repo.On("ReadEvent", mock.Anything, userUID, eventID).
		Return(existingEvent(eventID, "10:00", "11:00"), nil).Twice()
	// собственная запись исключена выборкой, конфликтов нет
	repo.On("ListEventsByDate", mock.Anything, userUID, mock.Anything, eventID).
		Return([]*models.Event{}, nil).Once()
	repo.On("UpdateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.StartTime == "10:15"
	})).Return(1, nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil).Twice()

	service := NewEventService(repo, new(ClientsMock), cache, newNoopLogger())
	start := "10:15"
	_, err := service.Update(context.Background(), userUID, eventID, models.DummyEventUpdate{
		StartTime: &start,
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestEventService_Update_ConflictWithOther(t *testing.T) {
	repo := new(RepoMock)
	eventID := 7

	repo.On("ReadEvent", mock.Anything, userUID, eventID).
		Return(existingEvent(eventID, "10:00", "11:00"), nil).Once()
	repo.On("ListEventsByDate", mock.Anything, userUID, mock.Anything, eventID).
		Return([]*models.Event{existingEvent(8, "11:30", "12:30")}, nil).Once()

	service := NewEventService(repo, new(ClientsMock), new(CacheMock), newNoopLogger())
	end := "12:00"
	_, err := service.Update(context.Background(), userUID, eventID, models.DummyEventUpdate{
		EndTime: &end,
	})

	var conflict *models.ScheduleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 8, conflict.EventID)
}

func TestEventService_Update_CancelSkipsConflictCheck(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	eventID := 7

	repo.On("ReadEvent", mock.Anything, userUID, eventID).
		Return(existingEvent(eventID, "10:00", "11:00"), nil).Twice()
	repo.On("UpdateEvent", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
		return e.Status == models.EventStatusCancelled
	})).Return(1, nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil).Twice()

	service := NewEventService(repo, new(ClientsMock), cache, newNoopLogger())
	status := models.EventStatusCancelled
	_, err := service.Update(context.Background(), userUID, eventID, models.DummyEventUpdate{
		Status: &status,
	})
	require.NoError(t, err)
	// ListEventsByDate не вызывался
	repo.AssertExpectations(t)
}

func TestEventService_Remove(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("RemoveEvent", mock.Anything, userUID, 7).Return(1, nil).Once()
	cache.On("Invalidate", mock.Anything).Return(nil).Twice()

	service := NewEventService(repo, new(ClientsMock), cache, newNoopLogger())
	require.NoError(t, service.Remove(context.Background(), userUID, 7))

	repo.On("RemoveEvent", mock.Anything, userUID, 8).Return(0, nil).Once()
	err := service.Remove(context.Background(), userUID, 8)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestEventService_List_Defaults(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)

	repo.On("ListEvents", mock.Anything, userUID, mock.MatchedBy(func(f models.EventFilter) bool {
		return f.Page == 1 && f.Limit == 10
	})).Return([]*models.Event{existingEvent(1, "10:00", "11:00")}, 12, nil).Once()

	service := NewEventService(repo, new(ClientsMock), cache, newNoopLogger())
	events, pagination, err := service.List(context.Background(), userUID, models.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 12, pagination.Total)
	assert.Equal(t, 2, pagination.Pages)
	repo.AssertExpectations(t)
}
