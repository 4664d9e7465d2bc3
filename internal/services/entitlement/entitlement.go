// Package entitlement вычисляет актуальное состояние подписки пользователя
// и снимает просроченные подписки при чтении.
package entitlement

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/lib/month"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/metrics"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Repository — операции хранилища над данными подписки.
type Repository interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ClearExpiredSubscription(ctx context.Context, userID string, now time.Time) (bool, error)
	ActivateSubscription(ctx context.Context, userID string, ends time.Time) error
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Service реализует проверку и активацию подписки.
type Service struct {
	log       *slog.Logger
	repo      Repository
	publisher Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
}

// New создаёт сервис. Часы можно подменить через WithClock.
func New(log *slog.Logger, repo Repository, publisher Publisher, m *metrics.Metrics) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		publisher: publisher,
		metrics:   m,
		now:       time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// CheckAndRefresh возвращает состояние подписки. Если дата окончания уже прошла,
// подписка снимается в хранилище и возвращается очищенное состояние. Если снять
// не удалось, возвращается состояние, перечитанное из хранилища.
func (s *Service) CheckAndRefresh(ctx context.Context, userID string) (models.Entitlement, error) {
	const op = "entitlement.CheckAndRefresh"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now()
	if user.SubscriptionEnds == nil || !user.SubscriptionEnds.Before(now) {
		return user.Entitlement(), nil
	}

	cleared, err := s.repo.ClearExpiredSubscription(ctx, userID, now)
	if err != nil {
		return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
	}
	if !cleared {
		// Конкурентный запрос успел снять или продлить подписку.
		current, err := s.repo.GetUser(ctx, userID)
		if err != nil {
			return models.Entitlement{}, fmt.Errorf("%s: %w", op, err)
		}
		if current.SubscriptionEnds != nil && current.SubscriptionEnds.Before(now) {
			return models.Entitlement{}, nil
		}
		return current.Entitlement(), nil
	}

	log.Info("subscription expired", slog.Time("ended_at", *user.SubscriptionEnds))
	s.metrics.ExpiredCleared.Inc()
	s.publish(ctx, log, models.Event{
		Type:       models.EventSubscriptionExpired,
		UserID:     userID,
		OccurredAt: now,
	})

	return models.Entitlement{}, nil
}

// Activate включает подписку на один календарный месяц от текущего момента,
// независимо от предыдущего состояния. Возвращает новую дату окончания.
func (s *Service) Activate(ctx context.Context, userID string) (time.Time, error) {
	const op = "entitlement.Activate"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	now := s.now()
	ends := month.AddClamped(now, 1)
	if err := s.repo.ActivateSubscription(ctx, userID, ends); err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("subscription activated", slog.Time("ends", ends))
	s.metrics.SubscriptionsActive.Inc()
	s.publish(ctx, log, models.Event{
		Type:             models.EventSubscriptionActivated,
		UserID:           userID,
		SubscriptionEnds: &ends,
		OccurredAt:       now,
	})

	return ends, nil
}

func (s *Service) publish(ctx context.Context, log *slog.Logger, event models.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event.Type, event); err != nil {
		log.Error("failed to publish event", slog.String("event", event.Type), sl.Err(err))
	}
}
