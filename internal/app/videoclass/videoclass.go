package videoclass

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/videoclass/internal/cache"
	"github.com/magabrotheeeer/videoclass/internal/config"
	"github.com/magabrotheeeer/videoclass/internal/http/middlewarectx"
	"github.com/magabrotheeeer/videoclass/internal/lib/jwt"
	"github.com/magabrotheeeer/videoclass/internal/lib/password"
	"github.com/magabrotheeeer/videoclass/internal/lib/sl"
	"github.com/magabrotheeeer/videoclass/internal/migrations"
	adminservice "github.com/magabrotheeeer/videoclass/internal/services/admin"
	authservice "github.com/magabrotheeeer/videoclass/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/videoclass/internal/services/catalog"
	"github.com/magabrotheeeer/videoclass/internal/storage"
)

const shutdownTimeout = 15 * time.Second

// App владеет HTTP-сервером, пулом PostgreSQL и клиентом Redis.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New открывает соединения, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	version, err := migrations.Run(db.DB.DB, cfg.MigrationsPath)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.Info("database schema ready", slog.Uint64("version", uint64(version)))

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	hasher := password.NewHasher(cfg.BcryptCost)
	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := Services{
		Auth:    authservice.NewAuthService(db, jwtMaker, hasher, cacheRedis),
		Catalog: catalogservice.NewCatalogService(db),
		Admin:   adminservice.NewAdminService(db, hasher),
		DB:      db,
		Cache:   cacheRedis,
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, services,
		middlewarectx.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		cfg.AllowedOrigins,
	)

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
		cache:  cacheRedis,
	}, nil
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливает сервер
// и закрывает пулы.
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

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}

	if cerr := a.cache.Close(); cerr != nil {
		a.logger.Error("failed to close redis client", sl.Err(cerr))
	}
	if cerr := a.db.Close(); cerr != nil {
		a.logger.Error("failed to close database pool", sl.Err(cerr))
	}
	return err
}
