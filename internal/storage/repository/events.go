package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// CreateEvent вставляет новую запись события и возвращает её ID.
func (s *Storage) CreateEvent(ctx context.Context, event models.Event) (int, error) {
	const op = "storage.CreateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (user_uid, title, description, event_date, start_time,
			      end_time, event_type, status, location, notes, client_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		event.UserUID, event.Title, event.Description, event.EventDate, event.StartTime,
		event.EndTime, event.EventType, event.Status, event.Location, event.Notes,
		event.ClientID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadEvent возвращает событие владельца по ID.
func (s *Storage) ReadEvent(ctx context.Context, userUID string, id int) (*models.Event, error) {
	const op = "storage.ReadEvent"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, event_date, start_time, end_time,
			      event_type, status, location, notes, client_id, created_at, updated_at
			  FROM events
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Event
	if err := row.Scan(&result.ID, &result.UserUID, &result.Title, &result.Description,
		&result.EventDate, &result.StartTime, &result.EndTime, &result.EventType,
		&result.Status, &result.Location, &result.Notes, &result.ClientID,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateEvent обновляет данные события владельца и возвращает количество
// изменённых строк.
func (s *Storage) UpdateEvent(ctx context.Context, event models.Event) (int, error) {
	const op = "storage.UpdateEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events
			  SET title = $1, description = $2, event_date = $3, start_time = $4,
			      end_time = $5, event_type = $6, status = $7, location = $8,
			      notes = $9, client_id = $10, updated_at = now()
			  WHERE id = $11 AND user_uid = $12`
	result, err := s.DB.ExecContext(ctx, query,
		event.Title, event.Description, event.EventDate, event.StartTime,
		event.EndTime, event.EventType, event.Status, event.Location,
		event.Notes, event.ClientID, event.ID, event.UserUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveEvent удаляет событие владельца по ID и возвращает количество
// удалённых строк.
func (s *Storage) RemoveEvent(ctx context.Context, userUID string, id int) (int, error) {
	const op = "storage.RemoveEvent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM events WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListEvents возвращает страницу событий владельца с учётом фильтров по датам,
// типу, статусу и клиенту, а также общее количество записей под теми же условиями.
func (s *Storage) ListEvents(ctx context.Context, userUID string, filter models.EventFilter) ([]*models.Event, int, error) {
	const op = "storage.ListEvents"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	const conditions = ` FROM events
			  WHERE user_uid = $1
			    AND ($2::date IS NULL OR event_date >= $2)
			    AND ($3::date IS NULL OR event_date <= $3)
			    AND ($4 = '' OR event_type = $4)
			    AND ($5 = '' OR status = $5)
			    AND ($6::int IS NULL OR client_id = $6)`

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*)`+conditions,
		userUID, filter.StartDate, filter.EndDate, filter.EventType,
		filter.Status, filter.ClientID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT id, user_uid, title, description, event_date, start_time, end_time,
			      event_type, status, location, notes, client_id, created_at, updated_at` +
		conditions + `
			  ORDER BY event_date ASC, start_time ASC
			  LIMIT $7 OFFSET $8`
	rows, err := s.DB.QueryContext(ctx, query,
		userUID, filter.StartDate, filter.EndDate, filter.EventType,
		filter.Status, filter.ClientID, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Title, &item.Description,
			&item.EventDate, &item.StartTime, &item.EndTime, &item.EventType,
			&item.Status, &item.Location, &item.Notes, &item.ClientID,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// ListEventsByDate возвращает все неотмененные события владельца в данную дату,
// исключая запись excludeID. Используется проверкой конфликтов расписания,
// поэтому выборка исчерпывающая, без пагинации.
func (s *Storage) ListEventsByDate(ctx context.Context, userUID string, date time.Time, excludeID int) ([]*models.Event, error) {
	const op = "storage.ListEventsByDate"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, title, description, event_date, start_time, end_time,
			      event_type, status, location, notes, client_id, created_at, updated_at
			  FROM events
			  WHERE user_uid = $1
			    AND event_date = $2
			    AND status <> 'cancelled'
			    AND id <> $3
			  ORDER BY start_time ASC`
	rows, err := s.DB.QueryContext(ctx, query, userUID, date, excludeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		var item models.Event
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Title, &item.Description,
			&item.EventDate, &item.StartTime, &item.EndTime, &item.EventType,
			&item.Status, &item.Location, &item.Notes, &item.ClientID,
			&item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountEventStats подсчитывает события владельца по статусам.
func (s *Storage) CountEventStats(ctx context.Context, userUID string) (*models.EventStats, error) {
	const op = "storage.CountEventStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*),
			      count(*) FILTER (WHERE status = 'scheduled'),
			      count(*) FILTER (WHERE status = 'confirmed'),
			      count(*) FILTER (WHERE status = 'completed')
			  FROM events
			  WHERE user_uid = $1`
	var stats models.EventStats
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&stats.Total, &stats.Scheduled, &stats.Confirmed, &stats.Completed); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}

// FindEventsForTomorrow находит завтрашние неотмененные события вместе с почтой
// владельца и именем клиента для отправки напоминаний.
func (s *Storage) FindEventsForTomorrow(ctx context.Context) ([]*models.EventReminder, error) {
	const op = "storage.FindEventsForTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT
			      u.email,
			      u.name,
			      e.title,
			      e.event_date,
			      e.start_time,
			      e.end_time,
			      c.name,
			      e.location
			  FROM events e
			  JOIN users u ON e.user_uid = u.uid
			  LEFT JOIN clients c ON e.client_id = c.id
			  WHERE e.event_date = CURRENT_DATE + INTERVAL '1 day'
			    AND e.status <> 'cancelled';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EventReminder
	for rows.Next() {
		var ri models.EventReminder
		if err = rows.Scan(&ri.Email, &ri.UserName, &ri.Title, &ri.EventDate,
			&ri.StartTime, &ri.EndTime, &ri.ClientName, &ri.Location); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &ri)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
