package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/CaioVictor3/Bus-Manager-App/internal/api/http"
	"github.com/CaioVictor3/Bus-Manager-App/internal/api/http/handlers"
	"github.com/CaioVictor3/Bus-Manager-App/internal/auth"
	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
	"github.com/CaioVictor3/Bus-Manager-App/internal/events"
	"github.com/CaioVictor3/Bus-Manager-App/internal/lookup"
	"github.com/CaioVictor3/Bus-Manager-App/internal/observability"
	"github.com/CaioVictor3/Bus-Manager-App/internal/persistence"
	"github.com/CaioVictor3/Bus-Manager-App/internal/repository"
	"github.com/CaioVictor3/Bus-Manager-App/internal/service"
	"github.com/CaioVictor3/Bus-Manager-App/internal/worker"
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

	var (
		kv     persistence.KeyValue
		pinger persistence.Pinger
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
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
		kv, pinger = pg, pg
	case config.BackendMemory:
		mem := persistence.NewMemory()
		logger.Warn("using in-memory storage; data will not survive restarts")
		kv, pinger = mem, mem
	default:
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		kv, pinger = redis, redis
	}

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger, metrics)

	sessionService := service.NewSessionService(*cfg, service.SessionDependencies{
		Repo:       repository.NewSessionRepository(kv),
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	rosterService := service.NewRosterService(*cfg, service.RosterDependencies{
		Repo:       repository.NewRosterRepository(kv),
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	sessionService.Initialize(ctx)
	rosterService.Initialize(ctx)

	authMiddleware := auth.NewAuthMiddleware(sessionService.TokenManager(), sessionService)
	lookupClient := lookup.NewClient(cfg.Lookup)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, cfg.Storage.Backend, pinger),
		Session:        handlers.NewSessionHandler(sessionService),
		Students:       handlers.NewStudentsHandler(rosterService),
		Route:          handlers.NewRouteHandler(rosterService),
		Lookup:         handlers.NewLookupHandler(lookupClient),
		AuthMiddleware: authMiddleware,
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
