package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/timeclock-service/internal/api/http"
	"github.com/spec-kit/timeclock-service/internal/api/http/handlers"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/config"
	"github.com/spec-kit/timeclock-service/internal/events"
	"github.com/spec-kit/timeclock-service/internal/observability"
	"github.com/spec-kit/timeclock-service/internal/persistence"
	"github.com/spec-kit/timeclock-service/internal/repository"
	"github.com/spec-kit/timeclock-service/internal/service"
	"github.com/spec-kit/timeclock-service/internal/session"
	"github.com/spec-kit/timeclock-service/internal/worker"
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
	clockRepo := repository.NewClockEventRepository(pool)

	sessions := session.NewManager(
		session.NewRedisStore(redis.Client, cfg.Session.TTL()),
		session.NewCookieCodec(cfg.Session.Secret, cfg.Session.TTL()),
	)
	gate := auth.NewGate(sessions, userRepo, cfg.Session.CookieName, logger)

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(*cfg, userRepo)
	clockService := service.NewClockService(clockRepo, dispatcher)
	staffService := service.NewStaffService(*cfg, userRepo, dispatcher, logger)
	auditService := service.NewAuditService(dispatcher, logger)
	worker.StartAuditWorker(auditService)

	metrics := observability.NewMetrics()
	// Parsed form fields outlive the handler (repositories, session store),
	// so request buffers must not be reused underneath them.
	app := fiber.New(fiber.Config{Immutable: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:    handlers.NewAuthHandler(authService, gate),
		Clock:   handlers.NewClockHandler(clockService),
		Profile: handlers.NewProfileHandler(staffService),
		Admin:   handlers.NewAdminHandler(staffService),
		Gate:    gate,
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
