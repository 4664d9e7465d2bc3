// Package health отдаёт состояние сервиса для проб.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
)

// CheckerFunc проверяет зависимость сервиса.
type CheckerFunc func(ctx context.Context) error

// Handler обрабатывает GET /healthz.
type Handler struct {
	log     *slog.Logger
	check   CheckerFunc
	timeout time.Duration
}

// New создает новый экземпляр Handler. check может быть nil.
func New(log *slog.Logger, check CheckerFunc) *Handler {
	return &Handler{
		log:     log,
		check:   check,
		timeout: 2 * time.Second,
	}
}

// ServeHTTP godoc
// @Summary Проверка состояния
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 503 {object} response.ErrorResponse "База данных недоступна"
// @Router /healthz [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if h.check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		if err := h.check(ctx); err != nil {
			h.log.Error("health check failed", slog.String("op", op), sl.Err(err))
			response.Render(w, r, http.StatusServiceUnavailable, response.ReasonInternal, "storage unavailable")
			return
		}
	}

	render.JSON(w, r, map[string]string{"status": "ok"})
}
