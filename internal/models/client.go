package models

import "time"

// Статусы клиента.
const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client представляет клиента фотостудии, принадлежащего одному пользователю.
// Email может отсутствовать; непустой email уникален в рамках владельца
// без учета регистра.
type Client struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"userId"` // Владелец записи
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	Notes     *string   `json:"notes"`
	Status    string    `json:"status"` // active или inactive
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DummyClient используется для приёма данных нового клиента из JSON-запроса.
type DummyClient struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Address string `json:"address,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Status  string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// DummyClientUpdate используется для частичного обновления клиента.
// nil означает "поле не менять", пустая строка очищает необязательное поле.
type DummyClientUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Notes   *string `json:"notes,omitempty"`
	Status  *string `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}

// ClientStats содержит счетчики клиентов пользователя по статусам.
type ClientStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
}
