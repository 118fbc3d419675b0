// Package gymadmin собирает HTTP API бэк-офиса спортзала: хранилище, кэш,
// публикацию событий, сервисы и маршруты.
package gymadmin

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	// Регистрация swagger-документа для /docs.
	_ "github.com/magabrotheeeer/gymadmin/docs"

	"github.com/magabrotheeeer/gymadmin/internal/config"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/account"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/health"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/login"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/statistics"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/subscription"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/subscriptiontype"
	"github.com/magabrotheeeer/gymadmin/internal/http/handlers/visit"
	"github.com/magabrotheeeer/gymadmin/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gymadmin/internal/metrics"
	accountservice "github.com/magabrotheeeer/gymadmin/internal/services/account"
	authservice "github.com/magabrotheeeer/gymadmin/internal/services/auth"
	statisticsservice "github.com/magabrotheeeer/gymadmin/internal/services/statistics"
	subscriptionservice "github.com/magabrotheeeer/gymadmin/internal/services/subscription"
	visitservice "github.com/magabrotheeeer/gymadmin/internal/services/visit"
)

// Services сервисы, которые обслуживают маршруты.
type Services struct {
	Accounts      *accountservice.Service
	Subscriptions *subscriptionservice.Service
	Visits        *visitservice.Service
	Statistics    *statisticsservice.Service
	// Auth равен nil, если вход сотрудников отключён.
	Auth *authservice.Service
	DB   health.Pinger
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, svc Services, registry *prometheus.Registry) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middlewarectx.Logger(logger),
		middlewarectx.Metrics(metrics.NewHTTPMetrics(registry)),
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit))

		// Открытые конечные точки
		r.Post("/register", account.NewCreate(logger, svc.Accounts).ServeHTTP)
		if svc.Auth != nil {
			r.Post("/login", login.New(logger, svc.Auth).ServeHTTP)
		}

		r.Group(func(r chi.Router) {
			if svc.Auth != nil {
				r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
			}

			r.Route("/users", func(r chi.Router) {
				r.Get("/", account.NewList(logger, svc.Accounts).ServeHTTP)
				r.Post("/", account.NewCreate(logger, svc.Accounts).ServeHTTP)
				r.Get("/{id}", account.NewGet(logger, svc.Accounts).ServeHTTP)
				r.Put("/{id}", account.NewUpdate(logger, svc.Accounts).ServeHTTP)
				r.Patch("/{id}", account.NewUpdate(logger, svc.Accounts).ServeHTTP)
				r.Delete("/{id}", account.NewDelete(logger, svc.Accounts).ServeHTTP)
			})

			r.Route("/subscription-types", func(r chi.Router) {
				r.Get("/", subscriptiontype.NewList(logger, svc.Subscriptions).ServeHTTP)
				r.Post("/", subscriptiontype.NewCreate(logger, svc.Subscriptions).ServeHTTP)
				r.Get("/{id}", subscriptiontype.NewGet(logger, svc.Subscriptions).ServeHTTP)
				r.Delete("/{id}", subscriptiontype.NewDelete(logger, svc.Subscriptions).ServeHTTP)
			})

			r.Route("/subscriptions", func(r chi.Router) {
				r.Get("/", subscription.NewList(logger, svc.Subscriptions).ServeHTTP)
				r.Post("/", subscription.NewCreate(logger, svc.Subscriptions).ServeHTTP)
				r.Get("/{id}", subscription.NewGet(logger, svc.Subscriptions).ServeHTTP)
				r.Put("/{id}", subscription.NewUpdate(logger, svc.Subscriptions).ServeHTTP)
				r.Patch("/{id}", subscription.NewUpdate(logger, svc.Subscriptions).ServeHTTP)
				r.Delete("/{id}", subscription.NewDelete(logger, svc.Subscriptions).ServeHTTP)
				r.Get("/{id}/visits", visit.NewBySubscription(logger, svc.Visits).ServeHTTP)
			})

			r.Route("/visits", func(r chi.Router) {
				r.Get("/", visit.NewList(logger, svc.Visits).ServeHTTP)
				r.Post("/", visit.NewCreate(logger, svc.Visits).ServeHTTP)
				r.Get("/{id}", visit.NewGet(logger, svc.Visits).ServeHTTP)
				r.Put("/{id}", visit.NewUpdate(logger, svc.Visits).ServeHTTP)
				r.Patch("/{id}", visit.NewUpdate(logger, svc.Visits).ServeHTTP)
				r.Delete("/{id}", visit.NewDelete(logger, svc.Visits).ServeHTTP)
			})

			r.Get("/statistics", statistics.New(logger, svc.Statistics).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, svc.DB).ServeHTTP)
	r.Handle("/metrics", metrics.Handler(registry))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
