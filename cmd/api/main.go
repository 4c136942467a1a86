package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/ferramentas/toolhub/internal/api/http"
	"github.com/ferramentas/toolhub/internal/api/http/handlers"
	"github.com/ferramentas/toolhub/internal/auth"
	"github.com/ferramentas/toolhub/internal/config"
	"github.com/ferramentas/toolhub/internal/events"
	"github.com/ferramentas/toolhub/internal/observability"
	"github.com/ferramentas/toolhub/internal/persistence"
	"github.com/ferramentas/toolhub/internal/repository"
	"github.com/ferramentas/toolhub/internal/seed"
	"github.com/ferramentas/toolhub/internal/service"
	"github.com/ferramentas/toolhub/internal/worker"
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
	userRepo := repository.NewUserRepository(pool)
	refreshRepo := repository.NewRefreshTokenRepository(pool)
	toolRepo := repository.NewToolRepository(pool)
	usageRepo := repository.NewUsageLogRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:    userRepo,
		RefreshRepo: refreshRepo,
		Dispatcher:  dispatcher,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	toolService := service.NewToolService(toolRepo, redis.Client, logger)
	usageService := service.NewUsageService(usageRepo, dispatcher, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)

	worker.StartUsageWorker(usageService, notificationService)

	if cfg.Seed.Enabled {
		if err := seed.Run(ctx, cfg.Auth, userRepo, toolRepo, logger); err != nil {
			logger.Fatal("failed to seed database", zap.Error(err))
		}
	}

	gate := auth.NewGate(authService.TokenManager(), cfg.Auth.AccessCookieName)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, cfg.Auth),
		Users:   handlers.NewUserHandler(userService),
		Tools:   handlers.NewToolHandler(toolService),
		Toolkit: handlers.NewToolkitHandler(
			service.NewToolkitService(),
			service.NewJSONService(),
			service.NewRegexService(),
			service.NewURLService(),
			service.NewDNSService(),
			service.NewWebCheckService(),
			service.NewFakerService(),
			dispatcher,
		),
		Logs: handlers.NewLogHandler(usageService),
		Gate: gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
