package budgetmanager

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/budget-manager/internal/cache"
	"github.com/magabrotheeeer/budget-manager/internal/config"
	"github.com/magabrotheeeer/budget-manager/internal/http/middlewarectx"
	"github.com/magabrotheeeer/budget-manager/internal/lib/jwt"
	"github.com/magabrotheeeer/budget-manager/internal/lib/sl"
	"github.com/magabrotheeeer/budget-manager/internal/migrations"
	"github.com/magabrotheeeer/budget-manager/internal/services/auth"
	"github.com/magabrotheeeer/budget-manager/internal/services/stats"
	"github.com/magabrotheeeer/budget-manager/internal/services/transaction"
	"github.com/magabrotheeeer/budget-manager/internal/storage/repository"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtMaker, err := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.JWTAlgorithm, cfg.TokenTTL())
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	authService := auth.NewAuthService(logger, db, jwtMaker)

	var redisCache *cache.Cache
	if cfg.AddressRedis != "" {
		redisCache, err = cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			logger.Warn("redis unavailable, login guard disabled", sl.Err(err))
		} else {
			authService.WithLoginGuard(redisCache, cfg.MaxAttempts, cfg.Window)
		}
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Services{
		Auth:         authService,
		Resolver:     auth.NewResolver(jwtMaker, db),
		Transactions: transaction.NewLedger(db, logger),
		Stats:        stats.NewAggregator(db),
		Limiter:      middlewarectx.NewLimiter(cfg.RPS, cfg.Burst),
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  redisCache,
	}, nil
}

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
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Error("failed to close redis", sl.Err(err))
		}
	}
}
