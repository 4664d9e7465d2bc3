// Package todo содержит бизнес-логику задач: постраничный список и создание
// с ограничением количества задач для пользователей без подписки.
package todo

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/metrics"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

const (
	// PageSize — количество задач на странице списка.
	PageSize = 10
	// FreeQuota — максимальное число задач у пользователя без подписки.
	FreeQuota = 3
	// MaxPage — номер страницы, дальше которого смещение переполнит int.
	MaxPage = math.MaxInt / PageSize
)

// Repository — операции хранилища над задачами.
type Repository interface {
	CreateItem(ctx context.Context, item models.Item) error
	CountItems(ctx context.Context, ownerID, search string) (int, error)
	ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error)
}

// Entitlements возвращает актуальное состояние подписки.
type Entitlements interface {
	CheckAndRefresh(ctx context.Context, userID string) (models.Entitlement, error)
}

// Service реализует операции над задачами пользователя.
type Service struct {
	log          *slog.Logger
	repo         Repository
	entitlements Entitlements
	metrics      *metrics.Metrics
	now          func() time.Time
	newID        func() string
}

// New создаёт сервис задач.
func New(log *slog.Logger, repo Repository, entitlements Entitlements, m *metrics.Metrics) *Service {
	return &Service{
		log:          log,
		repo:         repo,
		entitlements: entitlements,
		metrics:      m,
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
	}
}

// List возвращает страницу задач владельца. Страница меньше 1 считается первой,
// больше MaxPage — равной MaxPage. search фильтрует по подстроке в названии
// без учёта регистра.
func (s *Service) List(ctx context.Context, userID string, page int, search string) (*models.ItemPage, error) {
	const op = "todo.List"

	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	search = strings.TrimSpace(search)

	total, err := s.repo.CountItems(ctx, userID, search)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := s.repo.ListItems(ctx, models.ItemFilter{
		OwnerID: userID,
		Search:  search,
		Limit:   PageSize,
		Offset:  (page - 1) * PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.ItemPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  (total + PageSize - 1) / PageSize,
	}, nil
}

// Create создаёт задачу. Пользователь без подписки не может владеть
// больше чем FreeQuota задачами.
func (s *Service) Create(ctx context.Context, userID, title string) (*models.Item, error) {
	const op = "todo.Create"
	log := s.log.With(slog.String("op", op), sl.UserID(userID))

	entitlement, err := s.entitlements.CheckAndRefresh(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !entitlement.IsSubscribed {
		count, err := s.repo.CountItems(ctx, userID, "")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if count >= FreeQuota {
			log.Info("free quota exhausted", slog.Int("items", count))
			s.metrics.QuotaRejections.Inc()
			return nil, fmt.Errorf("%s: %w", op, models.ErrQuotaExceeded)
		}
	}

	item := models.Item{
		ID:        s.newID(),
		OwnerID:   userID,
		Title:     title,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("item created", slog.String("item_id", item.ID))
	return &item, nil
}
