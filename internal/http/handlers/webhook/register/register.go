// Package register принимает вебхуки провайдера идентификации о пользователях.
package register

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/identity"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
)

// SignatureHeader — заголовок с подписью тела запроса.
const SignatureHeader = "X-Webhook-Signature"

// События провайдера, которые обрабатывает вебхук. Остальные подтверждаются и игнорируются.
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Payload — тело вебхука.
type Payload struct {
	Type string                `json:"type"`
	Data identity.ProviderUser `json:"data"`
}

// Service регистрирует пользователя и сбрасывает его закешированную роль.
type Service interface {
	Register(ctx context.Context, userID, email string) error
	RefreshRole(ctx context.Context, userID string) error
}

// Handler обрабатывает POST /api/webhook/register.
type Handler struct {
	log           *slog.Logger
	service       Service
	webhookSecret string // Секрет для проверки подписи
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:           log,
		service:       service,
		webhookSecret: secret,
	}
}

// Sign возвращает подпись тела: base64(HMAC-SHA256(secret, body)).
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func (h *Handler) verifySignature(body []byte, signature string) bool {
	return hmac.Equal([]byte(Sign(h.webhookSecret, body)), []byte(signature))
}

// ServeHTTP godoc
// @Summary Вебхук регистрации
// @Description Создаёт локальную запись пользователя по событию user.created, сбрасывает кеш роли по user.updated и user.deleted. Тело подписано HMAC-SHA256.
// @Tags Webhooks
// @Accept  json
// @Produce  json
// @Param X-Webhook-Signature header string true "base64(HMAC-SHA256(body))"
// @Param request body Payload true "Событие провайдера"
// @Success 200 {object} map[string]string
// @Failure 400 {object} response.ErrorResponse "Некорректное тело"
// @Failure 401 {object} response.ErrorResponse "Неверная подпись"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка"
// @Router /webhook/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.webhook.register"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("failed to read webhook body", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.ReasonInvalidRequestBody, "invalid request body")
		return
	}
	defer r.Body.Close()

	signature := r.Header.Get(SignatureHeader)
	if signature == "" || !h.verifySignature(body, signature) {
		log.Error("invalid or missing webhook signature")
		response.Render(w, r, http.StatusUnauthorized, response.ReasonUnauthorized, "invalid signature")
		return
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Error("failed to unmarshal webhook payload", sl.Err(err))
		response.Render(w, r, http.StatusBadRequest, response.ReasonInvalidRequestBody, "invalid request body")
		return
	}

	switch payload.Type {
	case EventUserCreated, EventUserUpdated, EventUserDeleted:
	default:
		log.Info("ignored webhook event", slog.String("event", payload.Type))
		render.JSON(w, r, map[string]string{"status": response.StatusOK})
		return
	}

	if payload.Data.ID == "" {
		log.Error("webhook event without user id")
		response.Render(w, r, http.StatusBadRequest, response.ReasonInvalidRequestBody, "user id is required")
		return
	}

	if payload.Type == EventUserCreated {
		err = h.service.Register(r.Context(), payload.Data.ID, payload.Data.PrimaryEmail())
	} else {
		err = h.service.RefreshRole(r.Context(), payload.Data.ID)
	}
	if err != nil {
		log.Error("failed to process webhook event", slog.String("event", payload.Type), sl.Err(err))
		response.Render(w, r, http.StatusInternalServerError, response.ReasonInternal, "internal error")
		return
	}

	log.Info("webhook processed successfully", slog.String("event", payload.Type), sl.UserID(payload.Data.ID))
	render.JSON(w, r, map[string]string{"status": response.StatusOK})
}
