// Package list обрабатывает постраничный список задач.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Service определяет бизнес-логику списка задач.
type Service interface {
	List(ctx context.Context, userID string, page int, search string) (*models.ItemPage, error)
}

// Handler обрабатывает GET /api/items.
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
// @Summary Список задач
// @Description Возвращает страницу задач текущего пользователя, по 10 на странице, новые первыми
// @Tags Items
// @Produce  json
// @Param page query int false "Номер страницы, с 1"
// @Param search query string false "Подстрока названия"
// @Success 200 {object} models.ItemPage
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /items [get]
// @Security BearerAuth
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.items.list"
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

	// Нечисловая страница не ошибка, а первая страница.
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	search := r.URL.Query().Get("search")

	result, err := h.service.List(r.Context(), userID, page, search)
	if err != nil {
		log.Error("failed to list items", sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	log.Debug("items listed", slog.Int("count", len(result.Items)), slog.Int("page", result.CurrentPage))
	render.JSON(w, r, result)
}
