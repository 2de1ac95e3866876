// Package models: параметры фильтрации и пагинации списочных запросов.
// Страницы нумеруются с единицы, значения по умолчанию page=1, limit=10.
package models

import "time"

// ClientFilter передается в слой доступа к данным при выборке клиентов.
type ClientFilter struct {
	Search string // Подстрока для поиска по имени, почте и телефону (без учета регистра)
	Status string // Фильтр по статусу, пустая строка — без фильтра
	Page   int
	Limit  int
}

// EventFilter передается в слой доступа к данным при выборке событий.
type EventFilter struct {
	StartDate *time.Time // Нижняя граница даты события (включительно)
	EndDate   *time.Time // Верхняя граница даты события (включительно)
	EventType string
	Status    string
	ClientID  *int
	Page      int
	Limit     int
}

// Pagination описывает блок пагинации в ответе списочных запросов.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// NewPagination считает количество страниц по общему числу записей.
func NewPagination(total, page, limit int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}
}
