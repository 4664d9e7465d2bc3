package models

import "time"

// Типы событий, которые сервис публикует в брокер.
const (
	EventUserRegistered        = "user.registered"
	EventSubscriptionActivated = "subscription.activated"
	EventSubscriptionExpired   = "subscription.expired"
)

// Event — событие об изменении пользователя или его подписки.
type Event struct {
	Type             string     `json:"type"`
	UserID           string     `json:"userId"`
	SubscriptionEnds *time.Time `json:"subscriptionEnds,omitempty"`
	OccurredAt       time.Time  `json:"occurredAt"`
}
