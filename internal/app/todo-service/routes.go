// Package todoservice собирает HTTP-приложение сервиса задач.
package todoservice

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация описания API для /docs.
	_ "github.com/magabrotheeeer/todo-service/docs"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/admin/user"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/items/create"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/items/list"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/pages"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/subscription/activate"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/subscription/status"
	"github.com/magabrotheeeer/todo-service/internal/http/handlers/webhook/register"
	"github.com/magabrotheeeer/todo-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-service/internal/http/response"
	"github.com/magabrotheeeer/todo-service/internal/metrics"
)

// Deps — всё, что нужно маршрутам.
type Deps struct {
	Logger        *slog.Logger
	Principals    middlewarectx.PrincipalResolver
	Roles         middlewarectx.RoleResolver
	Metrics       *metrics.Metrics
	Gatherer      prometheus.Gatherer
	Limiter       *rate.Limiter
	Items         ItemService
	Entitlements  EntitlementService
	Users         UserService
	HealthCheck   health.CheckerFunc
	WebhookSecret string
}

// ItemService — операции над задачами.
type ItemService interface {
	list.Service
	create.Service
}

// EntitlementService — операции над подпиской.
type EntitlementService interface {
	status.Service
	activate.Service
}

// UserService — операции над пользователями.
type UserService interface {
	register.Service
	user.Service
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.StripSlashes,
	)
	if d.Limiter != nil {
		r.Use(middlewarectx.RateLimitMiddleware(d.Logger, d.Limiter))
	}

	// Без контроля доступа: страница ошибки должна открываться и при недоступном провайдере.
	r.Get(middlewarectx.PathError, pages.New("error", "Something went wrong").ServeHTTP)
	r.Get("/healthz", health.New(d.Logger, d.HealthCheck).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/docs/*", httpSwagger.WrapHandler)

	gated := chi.NewRouter()
	gated.Use(middlewarectx.Gate(d.Logger, d.Principals, d.Roles, d.Metrics))
	gated.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Render(w, r, http.StatusNotFound, response.ReasonNotFound, "not found")
	})

	gated.Get(middlewarectx.PathRoot, pages.New("home", "Todo").ServeHTTP)
	gated.Get(middlewarectx.PathSignIn, pages.New("sign-in", "Sign in").ServeHTTP)
	gated.Get(middlewarectx.PathSignUp, pages.New("sign-up", "Sign up").ServeHTTP)
	gated.Get(middlewarectx.PathDashboard, pages.New("dashboard", "Dashboard").ServeHTTP)
	gated.Get(middlewarectx.PathAdminDashboard, pages.New("admin-dashboard", "Admin dashboard").ServeHTTP)

	gated.Route("/api", func(r chi.Router) {
		r.Get("/items", list.New(d.Logger, d.Items).ServeHTTP)
		r.Post("/items", create.New(d.Logger, d.Items).ServeHTTP)
		r.Get("/subscription", status.New(d.Logger, d.Entitlements).ServeHTTP)
		r.Post("/subscription", activate.New(d.Logger, d.Entitlements).ServeHTTP)
		r.Post("/webhook/register", register.New(d.Logger, d.Users, d.WebhookSecret).ServeHTTP)
		r.Get("/admin/users/{id}", user.New(d.Logger, d.Users).ServeHTTP)
	})

	r.Mount("/", gated)
}
