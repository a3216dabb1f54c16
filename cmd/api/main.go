package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fronzypie/share-your-experience/internal/api/http"
	"github.com/fronzypie/share-your-experience/internal/api/http/handlers"
	"github.com/fronzypie/share-your-experience/internal/auth"
	"github.com/fronzypie/share-your-experience/internal/config"
	"github.com/fronzypie/share-your-experience/internal/observability"
	"github.com/fronzypie/share-your-experience/internal/persistence"
	"github.com/fronzypie/share-your-experience/internal/repository"
	"github.com/fronzypie/share-your-experience/internal/service"
	"github.com/fronzypie/share-your-experience/internal/session"
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

	var userRepo repository.UserRepository
	var experienceRepo repository.ExperienceRepository
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		experienceRepo = repository.NewExperienceRepository(pool)
	} else {
		memUsers := repository.NewMemoryUserRepository()
		userRepo = memUsers
		experienceRepo = repository.NewMemoryExperienceRepository(memUsers)
	}

	// One session store instance for the whole process.
	sessions := session.NewMemoryStore()

	authService := service.NewAuthService(*cfg, userRepo, sessions)
	experienceService := service.NewExperienceService(*cfg, experienceRepo)
	authMiddleware := auth.NewMiddleware(sessions)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, cfg.App, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, redis, sessions),
		Auth:           handlers.NewAuthHandler(authService),
		Experiences:    handlers.NewExperiencesHandler(experienceService),
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
