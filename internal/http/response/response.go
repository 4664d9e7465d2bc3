// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков.
package response

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// ErrorResponse описывает тело ответа с ошибкой.
// Reason — короткий машиночитаемый код, Error — сообщение для человека.
// Внутренние детали ошибки в тело никогда не попадают.
type ErrorResponse struct {
	Status string `json:"status" example:"Error"`
	Reason string `json:"reason" example:"quota_exceeded"`
	Error  string `json:"error" example:"Free users can only create up to 3 todos. Please subscribe for more."`
}

const (
	// StatusOK — значение статуса для успешного ответа.
	StatusOK = "OK"
	// StatusError — значение статуса для ответа с ошибкой.
	StatusError = "Error"
)

// Машиночитаемые причины ошибок.
const (
	ReasonUnauthorized        = "unauthorized"
	ReasonForbidden           = "forbidden"
	ReasonUserNotFound        = "user_not_found"
	ReasonNotFound            = "not_found"
	ReasonQuotaExceeded       = "quota_exceeded"
	ReasonInvalidRequestBody  = "invalid_request_body"
	ReasonValidationFailed    = "validation_failed"
	ReasonProviderUnavailable = "identity_provider_unavailable"
	ReasonTooManyRequests     = "too_many_requests"
	ReasonInternal            = "internal_error"
)

// Error возвращает ErrorResponse с причиной и сообщением.
func Error(reason, msg string) ErrorResponse {
	return ErrorResponse{
		Status: StatusError,
		Reason: reason,
		Error:  msg,
	}
}

// Render пишет статус и JSON-тело ошибки.
func Render(w http.ResponseWriter, r *http.Request, status int, reason, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Error(reason, msg))
}

// ValidationError формирует ErrorResponse на основе ошибок валидации.
// Каждое нарушение формируется в человеко‑читаемый текст, объединённый через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s characters long", err.Field(), err.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(ReasonValidationFailed, strings.Join(errsMsgs, ", "))
}
