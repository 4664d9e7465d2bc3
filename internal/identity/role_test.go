package identity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-service/internal/models"
)

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) GetUser(ctx context.Context, userID string) (*ProviderUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ProviderUser), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestRoleFromMetadata(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]any
		want     models.Role
		wantErr  bool
	}{
		{name: "nil metadata", metadata: nil, want: models.RoleUser},
		{name: "no role key", metadata: map[string]any{"plan": "pro"}, want: models.RoleUser},
		{name: "null role", metadata: map[string]any{"role": nil}, want: models.RoleUser},
		{name: "empty role", metadata: map[string]any{"role": ""}, want: models.RoleUser},
		{name: "user", metadata: map[string]any{"role": "user"}, want: models.RoleUser},
		{name: "admin", metadata: map[string]any{"role": "admin"}, want: models.RoleAdmin},
		{name: "unknown role", metadata: map[string]any{"role": "superuser"}, wantErr: true},
		{name: "case differs", metadata: map[string]any{"role": "Admin"}, wantErr: true},
		{name: "non string role", metadata: map[string]any{"role": true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RoleFromMetadata(tt.metadata)
			if tt.wantErr {
				assert.ErrorIs(t, err, models.ErrMalformedRole)
				assert.False(t, got.IsAdmin())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoles_RoleOf_WithoutCache(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetUser", mock.Anything, "user_1").
		Return(&ProviderUser{ID: "user_1", PublicMetadata: map[string]any{"role": "admin"}}, nil).Once()

	roles := NewRoles(newNoopLogger(), provider, nil, time.Minute)
	role, err := roles.RoleOf(context.Background(), "user_1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	provider.AssertExpectations(t)
}

func TestRoles_RoleOf_ProviderErrorPropagates(t *testing.T) {
	tests := []struct {
		name    string
		user    *ProviderUser
		err     error
		wantErr error
	}{
		{name: "provider down", err: models.ErrProviderUnavailable, wantErr: models.ErrProviderUnavailable},
		{name: "user unknown", err: models.ErrUserNotFound, wantErr: models.ErrUserNotFound},
		{
			name:    "malformed role",
			user:    &ProviderUser{ID: "user_1", PublicMetadata: map[string]any{"role": 42.0}},
			wantErr: models.ErrMalformedRole,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := new(ProviderMock)
			if tt.user != nil {
				provider.On("GetUser", mock.Anything, "user_1").Return(tt.user, nil).Once()
			} else {
				provider.On("GetUser", mock.Anything, "user_1").Return(nil, tt.err).Once()
			}
			cache := new(CacheMock)
			cache.On("Get", mock.Anything, "role:user_1", mock.Anything).Return(false, nil).Once()

			roles := NewRoles(newNoopLogger(), provider, cache, time.Minute)
			role, err := roles.RoleOf(context.Background(), "user_1")

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, role)
			cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestRoles_RoleOf_CacheHit(t *testing.T) {
	provider := new(ProviderMock)
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "role:user_1", mock.Anything).
		Run(func(args mock.Arguments) {
			*(args.Get(2).(*models.Role)) = models.RoleAdmin
		}).
		Return(true, nil).Once()

	roles := NewRoles(newNoopLogger(), provider, cache, time.Minute)
	role, err := roles.RoleOf(context.Background(), "user_1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	provider.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestRoles_RoleOf_CacheMissStoresRole(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetUser", mock.Anything, "user_1").
		Return(&ProviderUser{ID: "user_1"}, nil).Once()
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "role:user_1", mock.Anything).Return(false, nil).Once()
	cache.On("Set", mock.Anything, "role:user_1", models.RoleUser, 30*time.Second).Return(nil).Once()

	roles := NewRoles(newNoopLogger(), provider, cache, 30*time.Second)
	role, err := roles.RoleOf(context.Background(), "user_1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
	cache.AssertExpectations(t)
}

func TestRoles_RoleOf_CacheFailuresAreIgnored(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetUser", mock.Anything, "user_1").
		Return(&ProviderUser{ID: "user_1", PublicMetadata: map[string]any{"role": "user"}}, nil).Once()
	cache := new(CacheMock)
	cache.On("Get", mock.Anything, "role:user_1", mock.Anything).Return(false, errors.New("redis down")).Once()
	cache.On("Set", mock.Anything, "role:user_1", models.RoleUser, time.Minute).Return(errors.New("redis down")).Once()

	roles := NewRoles(newNoopLogger(), provider, cache, time.Minute)
	role, err := roles.RoleOf(context.Background(), "user_1")

	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)
}

func TestRoles_RoleOf_ZeroTTLDisablesCache(t *testing.T) {
	provider := new(ProviderMock)
	provider.On("GetUser", mock.Anything, "user_1").Return(&ProviderUser{ID: "user_1"}, nil).Twice()
	cache := new(CacheMock)

	roles := NewRoles(newNoopLogger(), provider, cache, 0)
	for range 2 {
		_, err := roles.RoleOf(context.Background(), "user_1")
		require.NoError(t, err)
	}

	provider.AssertExpectations(t)
	cache.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}
