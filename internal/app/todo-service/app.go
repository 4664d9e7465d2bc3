package todoservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/todo-service/internal/cache"
	"github.com/magabrotheeeer/todo-service/internal/config"
	"github.com/magabrotheeeer/todo-service/internal/identity"
	"github.com/magabrotheeeer/todo-service/internal/lib/jwt"
	"github.com/magabrotheeeer/todo-service/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/todo-service/internal/lib/sl"
	"github.com/magabrotheeeer/todo-service/internal/metrics"
	"github.com/magabrotheeeer/todo-service/internal/migrations"
	"github.com/magabrotheeeer/todo-service/internal/services/entitlement"
	"github.com/magabrotheeeer/todo-service/internal/services/todo"
	"github.com/magabrotheeeer/todo-service/internal/services/users"
	"github.com/magabrotheeeer/todo-service/internal/storage/repository"
)

// Publisher публикует события и закрывается при остановке.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
	Close() error
}

// App — HTTP-сервер со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	cache     *cache.Cache
	publisher Publisher
}

// New подключает хранилище, накатывает миграции и собирает маршруты.
// Redis и RabbitMQ подключаются, только если включены в конфиге.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.Open(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = repository.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var (
		roleCache identity.RoleCache
		redisDB   *cache.Cache
	)
	if cfg.RedisConnection.Enabled {
		redisDB, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = repository.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		roleCache = redisDB
		logger.Info("role cache enabled", slog.Duration("ttl", cfg.RedisConnection.RoleTTL))
	}

	var publisher Publisher = rabbitmq.NopPublisher{}
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			closeCache(logger, redisDB)
			_ = repository.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		publisher = p
		logger.Info("event publishing enabled", slog.String("exchange", cfg.RabbitMQ.Exchange))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	tokens := jwt.NewJWTMaker(cfg.Identity.SessionSecret, 0).WithIssuer(cfg.Identity.Issuer)
	provider := identity.NewProviderClient(cfg.Identity.BaseURL, cfg.Identity.SecretKey, cfg.Identity.Timeout)

	entitlements := entitlement.New(logger, db, publisher, m)
	items := todo.New(logger, db, entitlements, m)
	userService := users.New(logger, db, entitlements, items, publisher)
	if redisDB != nil {
		userService.WithRoleCache(redisDB)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, Deps{
		Logger:       logger,
		Principals:   identity.NewResolver(logger, tokens),
		Roles:        identity.NewRoles(logger, provider, roleCache, cfg.RedisConnection.RoleTTL),
		Metrics:      m,
		Gatherer:     registry,
		Limiter:      rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
		Items:        items,
		Entitlements: entitlements,
		Users:        userService,
		HealthCheck: func(ctx context.Context) error {
			return repository.CheckDatabaseReady(ctx, db)
		},
		WebhookSecret: cfg.Identity.WebhookSecret,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:    srv,
		logger:    logger,
		cache:     redisDB,
		publisher: publisher,
	}, nil
}

// Run запускает сервер и останавливает его по отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.release()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.release()
		return err
	}
}

func (a *App) release() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Error("failed to close publisher", sl.Err(err))
	}
	closeCache(a.logger, a.cache)
	if err := repository.Close(); err != nil {
		a.logger.Error("failed to close storage", sl.Err(err))
	}
}

func closeCache(logger *slog.Logger, c *cache.Cache) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logger.Error("failed to close cache", sl.Err(err))
	}
}
