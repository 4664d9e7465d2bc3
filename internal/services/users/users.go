// Package users обслуживает локальные записи пользователей: создание по вебхуку
// провайдера идентификации и просмотр пользователя администратором.
package users

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/identity"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Repository — операции хранилища над пользователями.
type Repository interface {
	UpsertUser(ctx context.Context, user models.User) (bool, error)
}

// Entitlements возвращает актуальное состояние подписки.
type Entitlements interface {
	CheckAndRefresh(ctx context.Context, userID string) (models.Entitlement, error)
}

// Items отдаёт страницу задач пользователя.
type Items interface {
	List(ctx context.Context, userID string, page int, search string) (*models.ItemPage, error)
}

// Publisher публикует доменные события.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// RoleCache сбрасывает закешированную роль.
type RoleCache interface {
	Invalidate(ctx context.Context, key string) error
}

// Overview — то, что администратор видит о пользователе.
type Overview struct {
	ID          string             `json:"id"`
	Entitlement models.Entitlement `json:"entitlement"`
	Items       *models.ItemPage   `json:"items"`
}

// Service реализует операции над пользователями.
type Service struct {
	log          *slog.Logger
	repo         Repository
	entitlements Entitlements
	items        Items
	publisher    Publisher
	roleCache    RoleCache
	now          func() time.Time
}

// New создаёт сервис пользователей.
func New(log *slog.Logger, repo Repository, entitlements Entitlements, items Items, publisher Publisher) *Service {
	return &Service{
		log:          log,
		repo:         repo,
		entitlements: entitlements,
		items:        items,
		publisher:    publisher,
		now:          time.Now,
	}
}

// WithRoleCache подключает кеш ролей, который сбрасывается при изменении пользователя у провайдера.
func (s *Service) WithRoleCache(c RoleCache) *Service {
	s.roleCache = c
	return s
}

// Register создаёт локальную запись пользователя. Повторная доставка вебхука ничего не меняет.
func (s *Service) Register(ctx context.Context, userID, email string) error {
	const op = "users.Register"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	created, err := s.repo.UpsertUser(ctx, models.User{ID: userID, Email: email})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !created {
		log.Debug("user already registered")
		return nil
	}

	log.Info("user registered")
	if s.publisher != nil {
		event := models.Event{
			Type:       models.EventUserRegistered,
			UserID:     userID,
			OccurredAt: s.now(),
		}
		if err := s.publisher.Publish(ctx, event.Type, event); err != nil {
			log.Error("failed to publish event", slog.String("event", event.Type), sl.Err(err))
		}
	}
	return nil
}

// RefreshRole сбрасывает закешированную роль пользователя, чтобы следующий
// запрос прочитал её у провайдера. Без кеша ничего не делает.
func (s *Service) RefreshRole(ctx context.Context, userID string) error {
	const op = "users.RefreshRole"
	if s.roleCache == nil {
		return nil
	}
	if err := s.roleCache.Invalidate(ctx, identity.RoleCacheKey(userID)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Debug("cached role dropped", slog.String("op", op), sl.UserID(userID))
	return nil
}

// Lookup возвращает состояние подписки пользователя и первую страницу его задач.
func (s *Service) Lookup(ctx context.Context, userID string) (*Overview, error) {
	const op = "users.Lookup"

	entitlement, err := s.entitlements.CheckAndRefresh(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, err := s.items.List(ctx, userID, 1, "")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Overview{
		ID:          userID,
		Entitlement: entitlement,
		Items:       page,
	}, nil
}
