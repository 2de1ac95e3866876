package models

import (
	"errors"
	"fmt"
)

// Ошибки бизнес-уровня. Обработчики HTTP отображают их в статусы ответа:
// ErrEmailTaken и ErrNameTooShort — 400, ErrInvalidCredentials — 401,
// ErrNotFound и ErrClientNotFound — 404, ScheduleConflictError — 409.
var (
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrNameTooShort       = errors.New("name must be at least 2 characters")
	ErrInvalidTimeRange   = errors.New("start time must be before end time")
)

// ScheduleConflictError возвращается при пересечении интервала нового события
// с уже существующим неотмененным событием того же владельца в ту же дату.
// Содержит данные первого найденного конфликтующего события.
type ScheduleConflictError struct {
	EventID   int    `json:"id"`
	Title     string `json:"title"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("schedule conflict with event %d (%s, %s-%s)",
		e.EventID, e.Title, e.StartTime, e.EndTime)
}
