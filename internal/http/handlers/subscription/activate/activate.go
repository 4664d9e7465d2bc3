// Package activate включает подписку текущему пользователю.
package activate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// SuccessMessage — сообщение об успешной активации.
const SuccessMessage = "Subscription successful"

// Response — тело успешного ответа.
type Response struct {
	Message          string    `json:"message" example:"Subscription successful"`
	SubscriptionEnds time.Time `json:"subscriptionEnds"`
}

// Service определяет активацию подписки.
type Service interface {
	Activate(ctx context.Context, userID string) (time.Time, error)
}

// Handler обрабатывает POST /api/subscription.
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
// @Summary Оформить подписку
// @Description Включает подписку на один календарный месяц от текущего момента. Оплата не требуется.
// @Tags Subscription
// @Produce  json
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /subscription [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.activate"
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

	ends, err := h.service.Activate(r.Context(), userID)
	if errors.Is(err, models.ErrUserNotFound) {
		log.Error("user not found", sl.UserID(userID))
		response.Render(w, r, http.StatusNotFound, response.ReasonUserNotFound, "user not found")
		return
	}
	if err != nil {
		log.Error("failed to activate subscription", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	render.JSON(w, r, Response{
		Message:          SuccessMessage,
		SubscriptionEnds: ends,
	})
}
