// Package middlewarectx содержит HTTP middleware контроля доступа.
//
// Gate определяет пользователя по сессии, запрашивает его роль у провайдера
// идентификации и для каждого запроса принимает одно из решений: пропустить,
// перенаправить или отказать. При пропуске идентификатор и роль кладутся в
// контекст запроса для обработчиков.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/metrics"
	"github.com/magabrotheeeer/todo-service/internal/models"
)

// Страницы, на которые перенаправляет Gate.
const (
	PathRoot           = "/"
	PathSignIn         = "/sign-in"
	PathSignUp         = "/sign-up"
	PathDashboard      = "/dashboard"
	PathAdminDashboard = "/admin/dashboard"
	PathError          = "/error"
	PathWebhook        = "/api/webhook/register"
)

var publicPaths = map[string]struct{}{
	PathRoot:    {},
	PathSignIn:  {},
	PathSignUp:  {},
	PathWebhook: {},
}

var adminPrefixes = []string{"/admin", "/api/admin"}

// Kind — вид решения Gate.
type Kind int

const (
	// Allow — пропустить запрос дальше.
	Allow Kind = iota
	// Redirect — перенаправить на Location.
	Redirect
	// Reject — ответить ошибкой со статусом Status.
	Reject
)

func (k Kind) String() string {
	switch k {
	case Allow:
		return "allow"
	case Redirect:
		return "redirect"
	case Reject:
		return "reject"
	default:
		return "unknown"
	}
}

// Decision — результат проверки доступа.
type Decision struct {
	Kind     Kind
	Location string
	Status   int
	Reason   string
	Role     models.Role
	Err      error // ошибка получения роли, только для журнала
}

// PrincipalResolver определяет пользователя по запросу.
type PrincipalResolver interface {
	Resolve(r *http.Request) (string, bool)
}

// RoleResolver возвращает роль пользователя.
type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (models.Role, error)
}

// NormalizePath убирает один завершающий слэш у всех путей, кроме корня.
func NormalizePath(path string) string {
	if path == "" {
		return PathRoot
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// IsPublic сообщает, доступен ли путь анонимно.
func IsPublic(path string) bool {
	_, ok := publicPaths[NormalizePath(path)]
	return ok
}

// IsAPI сообщает, относится ли путь к API.
func IsAPI(path string) bool {
	return hasSegmentPrefix(NormalizePath(path), "/api")
}

// IsAdmin сообщает, относится ли путь к административной части.
func IsAdmin(path string) bool {
	path = NormalizePath(path)
	for _, prefix := range adminPrefixes {
		if hasSegmentPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// DashboardFor возвращает стартовую страницу для роли.
func DashboardFor(role models.Role) string {
	if role.IsAdmin() {
		return PathAdminDashboard
	}
	return PathDashboard
}

// Decide принимает решение о доступе к path. Пустой userID означает анонимный запрос.
// Роль запрашивается только для аутентифицированного пользователя.
func Decide(ctx context.Context, path, userID string, roles RoleResolver) Decision {
	path = NormalizePath(path)
	public := IsPublic(path)
	api := IsAPI(path)

	if userID == "" {
		switch {
		case public:
			return Decision{Kind: Allow}
		case api:
			return Decision{Kind: Reject, Status: http.StatusUnauthorized, Reason: response.ReasonUnauthorized}
		default:
			return Decision{Kind: Redirect, Location: PathSignIn, Reason: response.ReasonUnauthorized}
		}
	}

	role, err := roles.RoleOf(ctx, userID)
	if err != nil {
		if api {
			return Decision{Kind: Reject, Status: http.StatusInternalServerError, Reason: response.ReasonProviderUnavailable, Err: err}
		}
		return Decision{Kind: Redirect, Location: PathError, Reason: response.ReasonProviderUnavailable, Err: err}
	}

	switch {
	case role.IsAdmin() && path == PathDashboard:
		return Decision{Kind: Redirect, Location: PathAdminDashboard, Role: role}
	case !role.IsAdmin() && IsAdmin(path):
		return Decision{Kind: Redirect, Location: PathDashboard, Reason: response.ReasonForbidden, Role: role}
	case public:
		return Decision{Kind: Redirect, Location: DashboardFor(role), Role: role}
	}

	return Decision{Kind: Allow, Role: role}
}

var rejectMessages = map[string]string{
	response.ReasonUnauthorized:        "authentication required",
	response.ReasonProviderUnavailable: "identity provider unavailable",
}

// Gate возвращает middleware контроля доступа.
func Gate(log *slog.Logger, principals PrincipalResolver, roles RoleResolver, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Gate"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("path", r.URL.Path),
			)

			userID, ok := principals.Resolve(r)
			if !ok {
				userID = ""
			}

			decision := Decide(r.Context(), r.URL.Path, userID, roles)
			m.GateDecisions.WithLabelValues(decision.Kind.String(), decision.Reason).Inc()

			if decision.Err != nil {
				log.Error("failed to resolve role", sl.UserID(userID), sl.Err(decision.Err))
			}

			switch decision.Kind {
			case Redirect:
				log.Debug("redirect", slog.String("location", decision.Location))
				http.Redirect(w, r, decision.Location, http.StatusFound)
				return
			case Reject:
				log.Debug("request rejected", slog.String("reason", decision.Reason))
				response.Render(w, r, decision.Status, decision.Reason, rejectMessages[decision.Reason])
				return
			}

			ctx := r.Context()
			if userID != "" {
				ctx = WithPrincipal(ctx, userID, decision.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
