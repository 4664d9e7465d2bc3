// Package create обрабатывает создание задачи.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// QuotaMessage — текст ошибки при исчерпанном бесплатном лимите.
const QuotaMessage = "Free users can only create up to 3 todos. Please subscribe for more."

// Service определяет бизнес-логику создания задачи.
type Service interface {
	Create(ctx context.Context, userID, title string) (*models.Item, error)
}

// Handler обрабатывает POST /api/items.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать задачу
// @Description Создаёт задачу текущего пользователя. Без подписки можно иметь не больше 3 задач.
// @Tags Items
// @Accept  json
// @Produce  json
// @Param request body models.DummyItem true "Название задачи"
// @Success 201 {object} models.Item
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Исчерпан бесплатный лимит"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /items [post]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.items.create"
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

	var req models.DummyItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.ReasonInvalidRequestBody, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	item, err := h.service.Create(r.Context(), userID, req.Title)
	switch {
	case errors.Is(err, models.ErrQuotaExceeded):
		log.Info("quota exceeded", sl.UserID(userID))
		response.Render(w, r, http.StatusForbidden, response.ReasonQuotaExceeded, QuotaMessage)
		return
	case errors.Is(err, models.ErrUserNotFound):
		log.Error("user not found", sl.UserID(userID))
		response.Render(w, r, http.StatusNotFound, response.ReasonUserNotFound, "user not found")
		return
	case err != nil:
		log.Error("failed to create item", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	log.Info("item created", slog.String("item_id", item.ID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, item)
}
