// Package models содержит доменные структуры CRM фотостудии:
// пользователей, клиентов и события, а также DTO для приёма данных из JSON-запросов.
package models

import "time"

// User представляет зарегистрированного пользователя системы (фотографа).
type User struct {
	UID          string    `json:"id"`    // Уникальный идентификатор пользователя
	Name         string    `json:"name"`  // Имя пользователя
	Email        string    `json:"email"` // Электронная почта (уникальная, без учета регистра)
	PasswordHash string    `json:"-"`     // Хэш пароля, наружу не сериализуется
	CreatedAt    time.Time `json:"createdAt"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// DummyLogin используется для приёма данных входа из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
