package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/luca-defeo/progetto-zoo/internal/api/http"
	"github.com/luca-defeo/progetto-zoo/internal/api/http/handlers"
	"github.com/luca-defeo/progetto-zoo/internal/auth"
	"github.com/luca-defeo/progetto-zoo/internal/config"
	"github.com/luca-defeo/progetto-zoo/internal/events"
	"github.com/luca-defeo/progetto-zoo/internal/observability"
	"github.com/luca-defeo/progetto-zoo/internal/persistence"
	"github.com/luca-defeo/progetto-zoo/internal/repository"
	"github.com/luca-defeo/progetto-zoo/internal/service"
	"github.com/luca-defeo/progetto-zoo/internal/worker"
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
	ticketRepo := repository.NewTicketRepository(pool)
	animalRepo := repository.NewAnimalRepository(pool)
	enclosureRepo := repository.NewEnclosureRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	authService := service.NewAuthService(userRepo)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		UserRepo:   userRepo,
		Dispatcher: dispatcher,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:      userRepo,
		AnimalRepo:    animalRepo,
		EnclosureRepo: enclosureRepo,
	}, cfg.Auth.BcryptCost)
	animalService := service.NewAnimalService(service.AnimalDependencies{
		AnimalRepo:    animalRepo,
		UserRepo:      userRepo,
		EnclosureRepo: enclosureRepo,
	})
	enclosureService := service.NewEnclosureService(service.EnclosureDependencies{
		EnclosureRepo: enclosureRepo,
		UserRepo:      userRepo,
		AnimalRepo:    animalRepo,
	})

	gate := auth.NewGate(userRepo, auth.DefaultRules)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:       handlers.NewAuthHandler(authService),
		Tickets:    handlers.NewTicketsHandler(ticketService),
		Users:      handlers.NewUsersHandler(userService),
		Animals:    handlers.NewAnimalsHandler(animalService),
		Enclosures: handlers.NewEnclosuresHandler(enclosureService),
		Gate:       gate,
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
