package models

import "time"

// Item — задача пользователя. Видна только владельцу.
type Item struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
}

// DummyItem используется для приёма данных из JSON-запроса на создание задачи.
type DummyItem struct {
	Title string `json:"title" validate:"required,max=255"` // Название задачи
}

// ItemFilter описывает выборку задач владельца: подстрока названия без учёта регистра и страница.
type ItemFilter struct {
	OwnerID string
	Search  string
	Limit   int
	Offset  int
}

// ItemPage — одна страница списка задач.
type ItemPage struct {
	Items       []*Item `json:"items"`
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
}
