package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/riadov001/Myjantesappv2/internal/api/http"
	"github.com/riadov001/Myjantesappv2/internal/api/http/handlers"
	"github.com/riadov001/Myjantesappv2/internal/auth"
	"github.com/riadov001/Myjantesappv2/internal/config"
	"github.com/riadov001/Myjantesappv2/internal/events"
	"github.com/riadov001/Myjantesappv2/internal/observability"
	"github.com/riadov001/Myjantesappv2/internal/persistence"
	"github.com/riadov001/Myjantesappv2/internal/provider"
	"github.com/riadov001/Myjantesappv2/internal/repository"
	"github.com/riadov001/Myjantesappv2/internal/service"
	"github.com/riadov001/Myjantesappv2/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)

	dispatcher := events.NewInMemoryDispatcher(logger)
	events.RegisterAuditLog(dispatcher, logger)

	accountService := service.NewAccountService(cfg.Auth.BcryptCost, service.AccountDependencies{
		AccountRepo: accountRepo,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	sessionService := service.NewSessionService(cfg.Auth.SessionTTL(), service.SessionDependencies{
		SessionRepo: sessionRepo,
		AccountRepo: accountRepo,
		Cache:       service.NewRedisSessionCache(redis.Client),
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	sessionMiddleware := auth.NewMiddleware(sessionService)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(handlers.AuthHandlerConfig{
		Accounts:      accountService,
		Sessions:      sessionService,
		Google:        provider.NewGoogleVerifier(cfg.Providers.GoogleTokenInfoURL, cfg.Providers.Timeout(), logger),
		Facebook:      provider.NewFacebookVerifier(cfg.Providers.FacebookGraphURL, cfg.Providers.Timeout(), logger),
		SessionTTL:    cfg.Auth.SessionTTL(),
		SecureCookies: cfg.App.IsProduction(),
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:            healthHandler,
		Auth:              authHandler,
		SessionMiddleware: sessionMiddleware,
	})

	reaper := worker.NewSessionReaper(sessionRepo, cfg.Auth.ReapInterval(), logger)
	go reaper.Run(ctx)

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
