package app

import (
	"context"
	"errors"
	"fmt"

	"gamebalance/internal/app/auth"
	"gamebalance/internal/app/game"
	"gamebalance/internal/app/health"
	"gamebalance/internal/app/session"
	"gamebalance/internal/app/stats"
	"gamebalance/internal/app/user"
	"gamebalance/internal/config"
	"gamebalance/internal/db"
	"gamebalance/internal/db/seeder"
	"gamebalance/internal/providers/redis"
	"gamebalance/internal/router"
	"gamebalance/internal/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Application struct {
	Router *router.Router
	DB     *gorm.DB
	Redis  *redis.RedisProvider
}

// Bootstrap connects the stores and wires every feature into the router.
// ctx bounds the startup work such as seeding.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Application, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		db.Close(dbConn)
		return nil, err
	}

	redisProvider := redis.NewRedisProvider(cfg.RedisURL, logger, cfg.RedisTTL)
	store := redis.NewKVStore(redisProvider)
	eventBus := utils.NewEventBus(logger)
	clock := utils.SystemClock{}

	sessionRepo := session.NewRepository(store)
	userRepo := user.NewRepository(store)
	credentialRepo := auth.NewRepository(dbConn)
	gameRepo := game.NewRepository(dbConn)

	sessionService := session.NewService(sessionRepo, clock, eventBus, logger)
	userService := user.NewService(userRepo, clock, logger)
	statsService := stats.NewService(sessionService, redisProvider, clock, loc, logger)
	authService := auth.NewService(credentialRepo, userService, clock, auth.Options{
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
		BcryptCost: cfg.BcryptCost,
	}, logger)
	gameService := game.NewService(gameRepo)
	healthService := health.NewService(utils.NewHealthChecker(dbConn, redisProvider.Client, clock))

	eventBus.Subscribe(session.EventSessionEnded, statsService.HandleSessionEnded)

	seed := seeder.NewSeeder(dbConn, authService, cfg.SeedDemo, logger)
	if err := seed.Seed(ctx); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	r := router.NewRouter(logger, cfg.FrontendURL, authService)

	r.RegisterHealthRoutes(health.NewHandler(healthService, logger))
	r.RegisterAuthRoutes(auth.NewHandler(authService, logger))
	r.RegisterGameRoutes(game.NewHandler(gameService, logger))
	r.RegisterUserRoutes(user.NewHandler(userService, logger))
	r.RegisterSessionRoutes(session.NewHandler(sessionService, logger))
	r.RegisterStatsRoutes(stats.NewHandler(statsService, logger))
	r.RegisterSwaggerRoutes()

	return &Application{
		Router: r,
		DB:     dbConn,
		Redis:  redisProvider,
	}, nil
}

// Close releases Redis and PostgreSQL connections.
func (a *Application) Close() error {
	var errs []error
	if err := a.Redis.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close redis: %w", err))
	}
	if err := db.Close(a.DB); err != nil {
		errs = append(errs, fmt.Errorf("close postgres: %w", err))
	}
	return errors.Join(errs...)
}
