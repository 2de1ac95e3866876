package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

func strPtr(s string) *string { return &s }

func TestUsers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	uid, err := storage.RegisterUser(ctx, models.User{
		Name:         "Anna",
		Email:        "anna@example.com",
		PasswordHash: "hashedpassword",
	})
	require.NoError(t, err)
	require.NotEmpty(t, uid)

	t.Run("дубликат почты без учета регистра", func(t *testing.T) {
		_, err := storage.RegisterUser(ctx, models.User{
			Name:         "Another",
			Email:        "ANNA@example.com",
			PasswordHash: "hashedpassword",
		})
		require.ErrorIs(t, err, models.ErrEmailTaken)
	})

	t.Run("поиск по почте без учета регистра", func(t *testing.T) {
		user, err := storage.GetUserByEmail(ctx, "Anna@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, uid, user.UID)
		assert.Equal(t, "anna@example.com", user.Email)
	})

	t.Run("несуществующая почта", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "ghost@example.com")
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("чтение по uid", func(t *testing.T) {
		user, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "Anna", user.Name)
	})
}

func TestClients(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	owner := factory.CreateUser(t, "Owner", "owner@example.com")
	stranger := factory.CreateUser(t, "Stranger", "stranger@example.com")

	id, err := storage.CreateClient(ctx, models.Client{
		UserUID: owner,
		Name:    "Анна Смирнова",
		Email:   strPtr("anna@example.com"),
		Status:  models.ClientStatusActive,
	})
	require.NoError(t, err)

	t.Run("чтение созданного клиента", func(t *testing.T) {
		client, err := storage.ReadClient(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Анна Смирнова", client.Name)
		require.NotNil(t, client.Email)
		assert.Equal(t, "anna@example.com", *client.Email)
	})

	t.Run("чужой владелец не видит клиента", func(t *testing.T) {
		_, err := storage.ReadClient(ctx, stranger, id)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("дубликат почты в рамках владельца", func(t *testing.T) {
		_, err := storage.CreateClient(ctx, models.Client{
			UserUID: owner,
			Name:    "Другая Анна",
			Email:   strPtr("ANNA@example.com"),
			Status:  models.ClientStatusActive,
		})
		require.ErrorIs(t, err, models.ErrEmailTaken)
	})

	t.Run("та же почта у другого владельца допустима", func(t *testing.T) {
		_, err := storage.CreateClient(ctx, models.Client{
			UserUID: stranger,
			Name:    "Анна Смирнова",
			Email:   strPtr("anna@example.com"),
			Status:  models.ClientStatusActive,
		})
		require.NoError(t, err)
	})

	t.Run("поиск по почте исключает запись", func(t *testing.T) {
		_, err := storage.FindClientByEmail(ctx, owner, "anna@example.com", 0)
		require.NoError(t, err)
		_, err = storage.FindClientByEmail(ctx, owner, "anna@example.com", id)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("обновление и удаление", func(t *testing.T) {
		client, err := storage.ReadClient(ctx, owner, id)
		require.NoError(t, err)
		client.Name = "Анна Иванова"
		client.Phone = strPtr("+79990001122")

		count, err := storage.UpdateClient(ctx, *client)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		updated, err := storage.ReadClient(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Анна Иванова", updated.Name)

		count, err = storage.RemoveClient(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = storage.RemoveClient(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestListClients(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	owner := factory.CreateUser(t, "Owner", "owner@example.com")

	names := []string{
		"Анна", "Борис", "Вера", "Григорий", "Дарья", "Егор",
		"Жанна", "Зоя", "Иван", "Ксения", "Лев", "Мария",
	}
	for i, name := range names {
		email := strPtr(name + "@example.com")
		clientID := factory.CreateClient(t, owner, name, email)
		if i >= 10 {
			_, err := storage.DB.Exec(`UPDATE clients SET status = 'inactive' WHERE id = $1`, clientID)
			require.NoError(t, err)
		}
	}

	t.Run("пагинация", func(t *testing.T) {
		clients, total, err := storage.ListClients(ctx, owner, models.ClientFilter{Page: 2, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, clients, 5)

		clients, total, err = storage.ListClients(ctx, owner, models.ClientFilter{Page: 3, Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, 12, total)
		assert.Len(t, clients, 2)
	})

	t.Run("фильтр по статусу", func(t *testing.T) {
		clients, total, err := storage.ListClients(ctx, owner, models.ClientFilter{
			Status: models.ClientStatusInactive, Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		assert.Len(t, clients, 2)
	})

	t.Run("поиск по подстроке без учета регистра", func(t *testing.T) {
		clients, total, err := storage.ListClients(ctx, owner, models.ClientFilter{
			Search: "анна", Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		// Анна и Жанна
		assert.Equal(t, 2, total)
		assert.Len(t, clients, 2)
	})

	t.Run("статистика", func(t *testing.T) {
		stats, err := storage.CountClientStats(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 12, stats.Total)
		assert.Equal(t, 10, stats.Active)
		assert.Equal(t, 2, stats.Inactive)
	})
}

func TestEvents(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	owner := factory.CreateUser(t, "Owner", "owner@example.com")
	stranger := factory.CreateUser(t, "Stranger", "stranger@example.com")
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	clientID := factory.CreateClient(t, owner, "Анна Смирнова", strPtr("anna@example.com"))

	id, err := storage.CreateEvent(ctx, models.Event{
		UserUID:   owner,
		Title:     "Свадебная съемка",
		EventDate: date,
		StartTime: "10:00",
		EndTime:   "12:00",
		EventType: models.EventTypeSession,
		Status:    models.EventStatusScheduled,
		ClientID:  &clientID,
	})
	require.NoError(t, err)

	t.Run("чтение созданного события", func(t *testing.T) {
		event, err := storage.ReadEvent(ctx, owner, id)
		require.NoError(t, err)
		assert.Equal(t, "Свадебная съемка", event.Title)
		assert.Equal(t, "10:00", event.StartTime)
		assert.Equal(t, "12:00", event.EndTime)
		require.NotNil(t, event.ClientID)
		assert.Equal(t, clientID, *event.ClientID)
	})

	t.Run("чужой владелец не видит событие", func(t *testing.T) {
		_, err := storage.ReadEvent(ctx, stranger, id)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("выборка по дате исключает отмененные и excludeID", func(t *testing.T) {
		cancelledID := factory.CreateEvent(t, owner, "Отмененная съемка", date,
			"13:00", "14:00", models.EventStatusCancelled, nil)
		otherID := factory.CreateEvent(t, owner, "Встреча", date,
			"15:00", "16:00", models.EventStatusConfirmed, nil)

		events, err := storage.ListEventsByDate(ctx, owner, date, 0)
		require.NoError(t, err)
		ids := make([]int, 0, len(events))
		for _, e := range events {
			ids = append(ids, e.ID)
		}
		assert.Contains(t, ids, id)
		assert.Contains(t, ids, otherID)
		assert.NotContains(t, ids, cancelledID)

		events, err = storage.ListEventsByDate(ctx, owner, date, id)
		require.NoError(t, err)
		for _, e := range events {
			assert.NotEqual(t, id, e.ID)
		}
	})

	t.Run("удаление клиента обнуляет ссылку из события", func(t *testing.T) {
		count, err := storage.RemoveClient(ctx, owner, clientID)
		require.NoError(t, err)
		require.Equal(t, 1, count)

		event, err := storage.ReadEvent(ctx, owner, id)
		require.NoError(t, err)
		assert.Nil(t, event.ClientID)
	})

	t.Run("статистика по статусам", func(t *testing.T) {
		stats, err := storage.CountEventStats(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 1, stats.Scheduled)
		assert.Equal(t, 1, stats.Confirmed)
		assert.Equal(t, 0, stats.Completed)
	})
}

func TestListEvents(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	owner := factory.CreateUser(t, "Owner", "owner@example.com")

	base := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	for i := range 6 {
		factory.CreateEvent(t, owner, "Съемка", base.AddDate(0, 0, i),
			"10:00", "11:00", models.EventStatusScheduled, nil)
	}

	t.Run("фильтр по диапазону дат", func(t *testing.T) {
		from := base.AddDate(0, 0, 1)
		to := base.AddDate(0, 0, 3)
		events, total, err := storage.ListEvents(ctx, owner, models.EventFilter{
			StartDate: &from, EndDate: &to, Page: 1, Limit: 10,
		})
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		assert.Len(t, events, 3)
	})

	t.Run("сортировка по дате и времени", func(t *testing.T) {
		events, _, err := storage.ListEvents(ctx, owner, models.EventFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		require.NotEmpty(t, events)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].EventDate.Before(events[i-1].EventDate))
		}
	})

	t.Run("пагинация", func(t *testing.T) {
		events, total, err := storage.ListEvents(ctx, owner, models.EventFilter{Page: 2, Limit: 4})
		require.NoError(t, err)
		assert.Equal(t, 6, total)
		assert.Len(t, events, 2)
	})
}
