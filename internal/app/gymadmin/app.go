package gymadmin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/gymadmin/internal/cache"
	"github.com/magabrotheeeer/gymadmin/internal/config"
	"github.com/magabrotheeeer/gymadmin/internal/events"
	"github.com/magabrotheeeer/gymadmin/internal/lib/jwt"
	"github.com/magabrotheeeer/gymadmin/internal/lib/sl"
	"github.com/magabrotheeeer/gymadmin/internal/metrics"
	"github.com/magabrotheeeer/gymadmin/internal/migrations"
	accountservice "github.com/magabrotheeeer/gymadmin/internal/services/account"
	authservice "github.com/magabrotheeeer/gymadmin/internal/services/auth"
	statisticsservice "github.com/magabrotheeeer/gymadmin/internal/services/statistics"
	subscriptionservice "github.com/magabrotheeeer/gymadmin/internal/services/subscription"
	visitservice "github.com/magabrotheeeer/gymadmin/internal/services/visit"
	"github.com/magabrotheeeer/gymadmin/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// Cache кэш, общий для сервисов учётных записей и абонементов.
type Cache interface {
	accountservice.Cache
	Close() error
}

// Publisher публикатор доменных событий.
type Publisher interface {
	events.Publisher
	Close() error
}

// App HTTP-приложение со всеми зависимостями.
type App struct {
	server    *http.Server
	logger    *slog.Logger
	db        *storage.Storage
	cache     Cache
	publisher Publisher
}

// New подключает хранилище, применяет миграции, поднимает кэш и публикацию
// событий, если они настроены, и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.gymadmin.New"

	db, err := storage.New(cfg.StorageConnectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var c Cache = cache.Nop{}
	if cfg.AddressRedis != "" {
		redisCache, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		c = redisCache
	} else {
		logger.Info("redis address is empty, cache disabled")
	}

	var pub Publisher = events.Nop{}
	if cfg.RabbitMQ.URL != "" {
		rabbit, err := events.NewRabbitPublisher(cfg.RabbitMQ)
		if err != nil {
			_ = c.Close()
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		pub = rabbit
	} else {
		logger.Info("rabbitmq url is empty, events disabled")
	}

	svc := Services{
		Accounts:      accountservice.New(db, c, pub, cfg.CacheTTL, logger),
		Subscriptions: subscriptionservice.New(db, c, pub, cfg.CacheTTL, logger),
		Visits:        visitservice.New(db, pub, logger),
		Statistics:    statisticsservice.New(db),
		DB:            db,
	}
	if cfg.Auth.Enabled {
		svc.Auth = authservice.New(db, jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL))
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, svc, metrics.NewRegistry())

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
		db:        db,
		cache:     c,
		publisher: pub,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
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
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.publisher.Close(); err != nil {
		a.logger.Warn("failed to close event publisher", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Warn("failed to close cache", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close storage", sl.Err(err))
	}
}
