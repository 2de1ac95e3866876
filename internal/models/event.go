package models

import "time"

// Типы событий.
const (
	EventTypeSession  = "session"
	EventTypeMeeting  = "meeting"
	EventTypeDelivery = "delivery"
	EventTypeOther    = "other"
)

// Статусы событий. Отмененное событие освобождает занятый интервал времени.
const (
	EventStatusScheduled = "scheduled"
	EventStatusConfirmed = "confirmed"
	EventStatusCompleted = "completed"
	EventStatusCancelled = "cancelled"
)

// Event представляет событие в расписании пользователя: съемку, встречу,
// передачу материалов. Интервал [StartTime, EndTime) полуоткрытый,
// время хранится строкой в формате 15:04.
type Event struct {
	ID          int       `json:"id"`
	UserUID     string    `json:"userId"` // Владелец записи
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	EventDate   time.Time `json:"eventDate"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	EventType   string    `json:"eventType"`
	Status      string    `json:"status"`
	Location    *string   `json:"location"`
	Notes       *string   `json:"notes"`
	ClientID    *int      `json:"clientId"` // Ссылка на клиента того же владельца, может отсутствовать
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DummyEvent используется для приёма данных нового события из JSON-запроса.
// Дата и время приходят строками, чтобы их можно было валидировать и парсить вручную.
type DummyEvent struct {
	Title       string `json:"title" validate:"required,max=150"`
	Description string `json:"description,omitempty"`
	EventDate   string `json:"eventDate" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	EventType   string `json:"eventType,omitempty" validate:"omitempty,oneof=session meeting delivery other"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Location    string `json:"location,omitempty"`
	Notes       string `json:"notes,omitempty"`
	ClientID    *int   `json:"clientId,omitempty" validate:"omitempty,gt=0"`
}

// DummyEventUpdate используется для частичного обновления события.
// nil означает "поле не менять", пустая строка очищает необязательное поле.
// ClearClient снимает привязку к клиенту.
type DummyEventUpdate struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=150"`
	Description *string `json:"description,omitempty"`
	EventDate   *string `json:"eventDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"startTime,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     *string `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	EventType   *string `json:"eventType,omitempty" validate:"omitempty,oneof=session meeting delivery other"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=scheduled confirmed completed cancelled"`
	Location    *string `json:"location,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	ClientID    *int    `json:"clientId,omitempty" validate:"omitempty,gt=0"`
	ClearClient bool    `json:"clearClient,omitempty"`
}

// EventStats содержит счетчики событий пользователя по статусам.
type EventStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Confirmed int `json:"confirmed"`
	Completed int `json:"completed"`
}

// EventReminder содержит данные для письма-напоминания о завтрашнем событии.
type EventReminder struct {
	Email      string    `json:"email"` // Почта владельца события
	UserName   string    `json:"userName"`
	Title      string    `json:"title"`
	EventDate  time.Time `json:"eventDate"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	ClientName *string   `json:"clientName"`
	Location   *string   `json:"location"`
}
