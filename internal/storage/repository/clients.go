package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/photostudio-crm/internal/models"
)

// CreateClient вставляет новую запись клиента и возвращает её ID.
// Дубликат непустой почты в рамках владельца отображается в models.ErrEmailTaken.
func (s *Storage) CreateClient(ctx context.Context, client models.Client) (int, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO clients (user_uid, name, email, phone, address, notes, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		client.UserUID, client.Name, client.Email, client.Phone, client.Address,
		client.Notes, client.Status).Scan(&newID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadClient возвращает клиента владельца по ID.
func (s *Storage) ReadClient(ctx context.Context, userUID string, id int) (*models.Client, error) {
	const op = "storage.ReadClient"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, email, phone, address, notes, status, created_at, updated_at
			  FROM clients
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, id, userUID)

	var result models.Client
	if err := row.Scan(&result.ID, &result.UserUID, &result.Name, &result.Email,
		&result.Phone, &result.Address, &result.Notes, &result.Status,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// FindClientByEmail ищет клиента владельца с данной почтой без учета регистра,
// исключая запись excludeID. Возвращает models.ErrNotFound, если такого нет.
func (s *Storage) FindClientByEmail(ctx context.Context, userUID, email string, excludeID int) (*models.Client, error) {
	const op = "storage.FindClientByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, name, email, phone, address, notes, status, created_at, updated_at
			  FROM clients
			  WHERE user_uid = $1 AND lower(email) = lower($2) AND id <> $3`
	row := s.DB.QueryRowContext(ctx, query, userUID, email, excludeID)

	var result models.Client
	if err := row.Scan(&result.ID, &result.UserUID, &result.Name, &result.Email,
		&result.Phone, &result.Address, &result.Notes, &result.Status,
		&result.CreatedAt, &result.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, models.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateClient обновляет данные клиента владельца и возвращает количество
// изменённых строк.
func (s *Storage) UpdateClient(ctx context.Context, client models.Client) (int, error) {
	const op = "storage.UpdateClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE clients
			  SET name = $1, email = $2, phone = $3, address = $4, notes = $5,
			      status = $6, updated_at = now()
			  WHERE id = $7 AND user_uid = $8`
	result, err := s.DB.ExecContext(ctx, query,
		client.Name, client.Email, client.Phone, client.Address, client.Notes,
		client.Status, client.ID, client.UserUID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveClient удаляет клиента владельца по ID и возвращает количество
// удалённых строк. Ссылки на клиента из событий обнуляются на уровне схемы.
func (s *Storage) RemoveClient(ctx context.Context, userUID string, id int) (int, error) {
	const op = "storage.RemoveClient"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM clients WHERE id = $1 AND user_uid = $2`
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

// ListClients возвращает страницу клиентов владельца с учётом поиска и фильтра
// по статусу, а также общее количество записей под теми же условиями.
func (s *Storage) ListClients(ctx context.Context, userUID string, filter models.ClientFilter) ([]*models.Client, int, error) {
	const op = "storage.ListClients"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	const conditions = ` FROM clients
			  WHERE user_uid = $1
			    AND ($2 = '' OR name ILIKE '%' || $2 || '%'
			         OR email ILIKE '%' || $2 || '%'
			         OR phone ILIKE '%' || $2 || '%')
			    AND ($3 = '' OR status = $3)`

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT count(*)`+conditions,
		userUID, filter.Search, filter.Status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := `SELECT id, user_uid, name, email, phone, address, notes, status, created_at, updated_at` +
		conditions + `
			  ORDER BY created_at DESC
			  LIMIT $4 OFFSET $5`
	rows, err := s.DB.QueryContext(ctx, query, userUID, filter.Search, filter.Status, filter.Limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Client
	for rows.Next() {
		var item models.Client
		if err := rows.Scan(&item.ID, &item.UserUID, &item.Name, &item.Email,
			&item.Phone, &item.Address, &item.Notes, &item.Status,
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

// CountClientStats подсчитывает клиентов владельца по статусам.
func (s *Storage) CountClientStats(ctx context.Context, userUID string) (*models.ClientStats, error) {
	const op = "storage.CountClientStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT count(*),
			      count(*) FILTER (WHERE status = 'active'),
			      count(*) FILTER (WHERE status = 'inactive')
			  FROM clients
			  WHERE user_uid = $1`
	var stats models.ClientStats
	if err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&stats.Total, &stats.Active, &stats.Inactive); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &stats, nil
}
