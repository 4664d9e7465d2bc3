package todo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-service/internal/metrics"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateItem(ctx context.Context, item models.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *RepoMock) CountItems(ctx context.Context, ownerID, search string) (int, error) {
	args := m.Called(ctx, ownerID, search)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) ListItems(ctx context.Context, filter models.ItemFilter) ([]*models.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Item), args.Error(1)
}

type EntitlementsMock struct{ mock.Mock }

func (m *EntitlementsMock) CheckAndRefresh(ctx context.Context, userID string) (models.Entitlement, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.Entitlement), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func makeItems(n int) []*models.Item {
	items := make([]*models.Item, n)
	for i := range items {
		items[i] = &models.Item{ID: fmt.Sprintf("id-%d", i), OwnerID: "u1", Title: fmt.Sprintf("item %d", i)}
	}
	return items
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		search     string
		total      int
		wantFilter models.ItemFilter
		returned   int
		wantPage   int
		wantTotal  int
	}{
		{
			name:       "25 задач, третья страница",
			page:       3,
			total:      25,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: 20},
			returned:   5,
			wantPage:   3,
			wantTotal:  3,
		},
		{
			name:       "страница 0 считается первой",
			page:       0,
			total:      25,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: 0},
			returned:   10,
			wantPage:   1,
			wantTotal:  3,
		},
		{
			name:       "отрицательная страница считается первой",
			page:       -4,
			total:      10,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: 0},
			returned:   10,
			wantPage:   1,
			wantTotal:  1,
		},
		{
			name:       "пустой список",
			page:       1,
			total:      0,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: 0},
			returned:   0,
			wantPage:   1,
			wantTotal:  0,
		},
		{
			name:       "огромная страница не переполняет смещение",
			page:       math.MaxInt,
			total:      25,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: (MaxPage - 1) * PageSize},
			returned:   0,
			wantPage:   MaxPage,
			wantTotal:  3,
		},
		{
			name:       "страница сразу за пределом int64/10",
			page:       math.MaxInt64/10 + 2,
			total:      0,
			wantFilter: models.ItemFilter{OwnerID: "u1", Limit: 10, Offset: (MaxPage - 1) * PageSize},
			returned:   0,
			wantPage:   MaxPage,
			wantTotal:  0,
		},
		{
			name:       "поиск обрезается по краям",
			page:       1,
			search:     "  milk ",
			total:      11,
			wantFilter: models.ItemFilter{OwnerID: "u1", Search: "milk", Limit: 10, Offset: 0},
			returned:   10,
			wantPage:   1,
			wantTotal:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("CountItems", mock.Anything, "u1", tt.wantFilter.Search).Return(tt.total, nil).Once()
			repo.On("ListItems", mock.Anything, tt.wantFilter).Return(makeItems(tt.returned), nil).Once()

			svc := New(newNoopLogger(), repo, new(EntitlementsMock), metrics.Noop())
			got, err := svc.List(context.Background(), "u1", tt.page, tt.search)

			require.NoError(t, err)
			assert.GreaterOrEqual(t, got.CurrentPage, 1)
			assert.Len(t, got.Items, tt.returned)
			assert.Equal(t, tt.wantPage, got.CurrentPage)
			assert.Equal(t, tt.wantTotal, got.TotalPages)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_List_RepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CountItems", mock.Anything, "u1", "").Return(0, errors.New("db down")).Once()

	svc := New(newNoopLogger(), repo, new(EntitlementsMock), metrics.Noop())
	_, err := svc.List(context.Background(), "u1", 1, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo.List")
	repo.AssertNotCalled(t, "ListItems", mock.Anything, mock.Anything)
}

func TestService_Create(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 1, 0)

	tests := []struct {
		name          string
		setupMocks    func(r *RepoMock, e *EntitlementsMock)
		wantErr       error
		wantRejection float64
	}{
		{
			name: "бесплатный пользователь с 2 задачами",
			setupMocks: func(r *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").Return(models.Entitlement{}, nil).Once()
				r.On("CountItems", mock.Anything, "u1", "").Return(2, nil).Once()
				r.On("CreateItem", mock.Anything, models.Item{
					ID: "new-id", OwnerID: "u1", Title: "Buy milk", CreatedAt: now,
				}).Return(nil).Once()
			},
		},
		{
			name: "бесплатный пользователь с 3 задачами",
			setupMocks: func(r *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").Return(models.Entitlement{}, nil).Once()
				r.On("CountItems", mock.Anything, "u1", "").Return(3, nil).Once()
			},
			wantErr:       models.ErrQuotaExceeded,
			wantRejection: 1,
		},
		{
			name: "подписчик с 50 задачами",
			setupMocks: func(r *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").
					Return(models.Entitlement{IsSubscribed: true, SubscriptionEnds: &ends}, nil).Once()
				r.On("CreateItem", mock.Anything, mock.AnythingOfType("models.Item")).Return(nil).Once()
			},
		},
		{
			name: "истёкшая подписка не снимает лимит",
			setupMocks: func(r *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").Return(models.Entitlement{}, nil).Once()
				r.On("CountItems", mock.Anything, "u1", "").Return(3, nil).Once()
			},
			wantErr:       models.ErrQuotaExceeded,
			wantRejection: 1,
		},
		{
			name: "пользователь не найден",
			setupMocks: func(_ *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").
					Return(models.Entitlement{}, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrUserNotFound,
		},
		{
			name: "ошибка вставки",
			setupMocks: func(r *RepoMock, e *EntitlementsMock) {
				e.On("CheckAndRefresh", mock.Anything, "u1").Return(models.Entitlement{}, nil).Once()
				r.On("CountItems", mock.Anything, "u1", "").Return(0, nil).Once()
				r.On("CreateItem", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
			},
			wantErr: errors.New("insert failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			ent := new(EntitlementsMock)
			tt.setupMocks(repo, ent)
			m := metrics.Noop()

			svc := New(newNoopLogger(), repo, ent, m)
			svc.now = func() time.Time { return now }
			svc.newID = func() string { return "new-id" }

			item, err := svc.Create(context.Background(), "u1", "Buy milk")

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, item)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "new-id", item.ID)
				assert.Equal(t, "u1", item.OwnerID)
				assert.Equal(t, "Buy milk", item.Title)
			}
			assert.Equal(t, tt.wantRejection, testutil.ToFloat64(m.QuotaRejections))
			repo.AssertExpectations(t)
			ent.AssertExpectations(t)
		})
	}
}

func TestService_Create_QuotaIsErrQuotaExceeded(t *testing.T) {
	repo := new(RepoMock)
	ent := new(EntitlementsMock)
	ent.On("CheckAndRefresh", mock.Anything, "u1").Return(models.Entitlement{}, nil).Once()
	repo.On("CountItems", mock.Anything, "u1", "").Return(7, nil).Once()

	_, err := New(newNoopLogger(), repo, ent, metrics.Noop()).Create(context.Background(), "u1", "x")

	assert.ErrorIs(t, err, models.ErrQuotaExceeded)
	repo.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}
