// Package user отдаёт администратору данные пользователя.
package user

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
	"github.com/magabrotheeeer/todo-service/internal/services/users"
)

// Service определяет просмотр пользователя.
type Service interface {
	Lookup(ctx context.Context, userID string) (*users.Overview, error)
}

// Handler обрабатывает GET /api/admin/users/{id}.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Пользователь для администратора
// @Description Состояние подписки пользователя и первая страница его задач. Только для роли admin.
// @Tags Admin
// @Produce  json
// @Param id path string true "Идентификатор пользователя"
// @Success 200 {object} users.Overview
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав администратора"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /admin/users/{id} [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.user"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	callerID, ok := middlewarectx.UserID(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Render(w, r, http.StatusUnauthorized, response.ReasonUnauthorized, "unauthorized")
		return
	}

	role, _ := middlewarectx.RoleOf(r.Context())
	if !role.IsAdmin() {
		log.Warn("admin endpoint called without admin role", sl.UserID(callerID))
		response.Render(w, r, http.StatusForbidden, response.ReasonForbidden, "forbidden")
		return
	}

	userID := chi.URLParam(r, "id")
	overview, err := h.service.Lookup(r.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Info("user not found", sl.UserID(userID))
		response.Render(w, r, http.StatusNotFound, response.ReasonUserNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("failed to lookup user", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	log.Info("user looked up", slog.String("admin_id", callerID), sl.UserID(userID))
	render.JSON(w, r, overview)
}
