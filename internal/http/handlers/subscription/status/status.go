// Package status отдаёт состояние подписки текущего пользователя.
package status

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Service определяет проверку подписки.
type Service interface {
	CheckAndRefresh(ctx context.Context, userID string) (models.Entitlement, error)
}

// Handler обрабатывает GET /api/subscription.
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
// @Summary Состояние подписки
// @Description Возвращает состояние подписки. Истёкшая подписка снимается при чтении.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} models.Entitlement
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /subscription [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := middlewarectx.UserID(r.Context())
	if !ok {
		log.Error("user id not found in context")
		response.Render(w, r, http.StatusUnauthorized, response.ReasonUnauthorized, "unauthorized")
		return
	}

	entitlement, err := h.service.CheckAndRefresh(r.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Error("user not found", sl.UserID(userID))
		response.Render(w, r, http.StatusNotFound, response.ReasonUserNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("failed to check subscription", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	render.JSON(w, r, entitlement)
}
