package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для идентификатора пользователя в контексте
	User Key = "user_id"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// WithPrincipal кладёт идентификатор и роль пользователя в контекст.
func WithPrincipal(ctx context.Context, userID string, role models.Role) context.Context {
	ctx = context.WithValue(ctx, User, userID)
	return context.WithValue(ctx, Role, role)
}

// UserID достаёт идентификатор пользователя, сохранённый Gate.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(User).(string)
	return id, ok && id != ""
}

// RoleOf достаёт роль пользователя, сохранённую Gate.
func RoleOf(ctx context.Context) (models.Role, bool) {
	role, ok := ctx.Value(Role).(models.Role)
	return role, ok
}
