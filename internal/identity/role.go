package identity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

const roleMetadataKey = "role"

// RoleCacheKey — ключ роли пользователя в кеше.
func RoleCacheKey(userID string) string {
	return "role:" + userID
}

// RoleFromMetadata извлекает роль из публичных метаданных провайдера.
// Отсутствующая или пустая роль — обычный пользователь. Неизвестное значение — ошибка.
func RoleFromMetadata(metadata map[string]any) (models.Role, error) {
	raw, ok := metadata[roleMetadataKey]
	if !ok || raw == nil {
		return models.RoleUser, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: role has type %T", models.ErrMalformedRole, raw)
	}
	switch models.Role(s) {
	case "", models.RoleUser:
		return models.RoleUser, nil
	case models.RoleAdmin:
		return models.RoleAdmin, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", models.ErrMalformedRole, s)
	}
}

// UserGetter получает пользователя у провайдера.
type UserGetter interface {
	GetUser(ctx context.Context, userID string) (*ProviderUser, error)
}

// RoleCache кеширует роли между запросами.
type RoleCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Roles определяет роль пользователя через провайдера, с необязательным кешем.
type Roles struct {
	log      *slog.Logger
	provider UserGetter
	cache    RoleCache     // nil отключает кеш
	ttl      time.Duration // 0 отключает кеш
}

// NewRoles создаёт Roles. cache может быть nil.
func NewRoles(log *slog.Logger, provider UserGetter, cache RoleCache, ttl time.Duration) *Roles {
	return &Roles{
		log:      log,
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

// RoleOf возвращает роль пользователя. Ошибки провайдера возвращаются как есть,
// роль по умолчанию при сбое не подставляется.
func (r *Roles) RoleOf(ctx context.Context, userID string) (models.Role, error) {
	const op = "identity.Roles.RoleOf"
	cacheKey := RoleCacheKey(userID)

	if r.cacheEnabled() {
		var cached models.Role
		found, err := r.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			r.log.Warn("failed to read role from cache", slog.String("key", cacheKey), sl.Err(err))
		}
		if found && err == nil {
			return cached, nil
		}
	}

	user, err := r.provider.GetUser(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	role, err := RoleFromMetadata(user.PublicMetadata)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if r.cacheEnabled() {
		if err := r.cache.Set(ctx, cacheKey, role, r.ttl); err != nil {
			r.log.Warn("failed to cache role", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return role, nil
}

func (r *Roles) cacheEnabled() bool {
	return r.cache != nil && r.ttl > 0
}
