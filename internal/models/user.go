// Package models содержит доменные структуры сервиса: пользователя с данными подписки,
// задачу (to-do) и ошибки, общие для хранилища, сервисов и HTTP-слоя.
package models

import "time"

// Role — роль пользователя, которую хранит внешний провайдер идентификации.
type Role string

const (
	// RoleUser — обычный пользователь.
	RoleUser Role = "user"
	// RoleAdmin — администратор.
	RoleAdmin Role = "admin"
)

// IsAdmin сообщает, является ли роль администраторской.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User представляет локальную запись пользователя.
// Роль здесь не хранится: источник истины — провайдер идентификации.
type User struct {
	ID               string     // Идентификатор, выданный провайдером
	Email            string     // Почта из вебхука регистрации (может быть пустой)
	IsSubscribed     bool       // Признак активной подписки
	SubscriptionEnds *time.Time // Дата окончания подписки, nil если подписки нет
	CreatedAt        time.Time
}

// Entitlement — состояние подписки, которое отдаётся клиенту.
type Entitlement struct {
	IsSubscribed     bool       `json:"isSubscribed"`
	SubscriptionEnds *time.Time `json:"subscriptionEnds"`
}

// Entitlement возвращает состояние подписки пользователя.
func (u *User) Entitlement() Entitlement {
	return Entitlement{
		IsSubscribed:     u.IsSubscribed,
		SubscriptionEnds: u.SubscriptionEnds,
	}
}
