package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/suportehub/chamados-service/internal/api/http"
	"github.com/suportehub/chamados-service/internal/api/http/handlers"
	"github.com/suportehub/chamados-service/internal/auth"
	"github.com/suportehub/chamados-service/internal/config"
	"github.com/suportehub/chamados-service/internal/events"
	"github.com/suportehub/chamados-service/internal/observability"
	"github.com/suportehub/chamados-service/internal/persistence"
	"github.com/suportehub/chamados-service/internal/repository"
	"github.com/suportehub/chamados-service/internal/service"
	"github.com/suportehub/chamados-service/internal/worker"
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
	costCenterRepo := repository.NewCostCenterRepository(pool)
	sectorRepo := repository.NewSectorRepository(pool)
	attendantRepo := repository.NewAttendantRepository(pool)
	linkRepo := repository.NewSectorAttendantRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	historyRepo := repository.NewTicketHistoryRepository(pool)

	tokenTTL := time.Duration(cfg.Auth.AccessTokenTTLMinutes) * time.Minute
	revocations := auth.NewRedisTokenRevocations(redis.Client, tokenTTL)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
	})
	directoryService := service.NewDirectoryService(costCenterRepo, sectorRepo)
	attendantService := service.NewAttendantService(attendantRepo, sectorRepo, linkRepo)

	dispatcher := events.NewInMemoryDispatcher()
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:          ticketRepo,
		HistoryRepo:         historyRepo,
		SectorRepo:          sectorRepo,
		UserRepo:            userRepo,
		AttendantRepo:       attendantRepo,
		SectorAttendantRepo: linkRepo,
		Dispatcher:          dispatcher,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), revocations, userRepo)

	app := fiber.New()
	metrics := observability.NewMetrics()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:           handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:             handlers.NewAuthHandler(authService),
		Tickets:          handlers.NewTicketsHandler(ticketService),
		CostCenters:      handlers.NewCostCentersHandler(directoryService),
		Sectors:          handlers.NewSectorsHandler(directoryService),
		Attendants:       handlers.NewAttendantsHandler(attendantService),
		SectorAttendants: handlers.NewSectorAttendantsHandler(attendantService),
		AuthMiddleware:   authMiddleware,
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
