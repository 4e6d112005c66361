// Package budgetmanager собирает HTTP-приложение: маршруты, сервисы и сервер.
package budgetmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/budget-manager/docs"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/health"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/root"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/transaction/create"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/transaction/list"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/transaction/remove"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/transaction/stats"
	"github.com/magabrotheeeer/budget-manager/internal/http/handlers/transaction/update"
	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
)

// AuthService регистрация и вход.
type AuthService interface {
	register.Service
	login.Service
}

// TransactionService операции над транзакциями пользователя.
type TransactionService interface {
	create.Service
	list.Service
	update.Service
	remove.Service
}

// Services зависимости, которые нужны маршрутам.
type Services struct {
	Auth         AuthService
	Resolver     middlewarectx.Resolver
	Transactions TransactionService
	Stats        stats.Service
	Limiter      *rate.Limiter
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.MetricsMiddleware,
	)

	r.Get("/", root.ServeHTTP)
	r.Get("/health", health.New(logger).ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger, s.Limiter))

		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Resolver, logger))
			r.Post("/", create.New(logger, s.Transactions).ServeHTTP)
			r.Get("/", list.New(logger, s.Transactions).ServeHTTP)
			r.Get("/stats", stats.New(logger, s.Stats).ServeHTTP)
			r.Put("/{id}", update.New(logger, s.Transactions).ServeHTTP)
			r.Delete("/{id}", remove.New(logger, s.Transactions).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
