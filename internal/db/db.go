package db

import (
	"context"
	"fmt"
	"time"

	"gamebalance/internal/app/auth"
	"gamebalance/internal/app/game"
	"gamebalance/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const connectTimeout = 5 * time.Second

// Connect opens the PostgreSQL pool. Queries are logged through logger.
func Connect(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), &gorm.Config{
		TranslateError: true,
		Logger:         NewGormLogger(logger, cfg.DBSlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBMaxConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DBMaxConns)
		sqlDB.SetMaxIdleConns(cfg.DBMaxConns / 2)
	}
	sqlDB.SetConnMaxLifetime(cfg.DBConnTTL)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", cfg.DBHost),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.DBMaxConns),
	)

	return db, nil
}

// Migrate creates the account and game catalog tables. Play sessions,
// profiles and settings live in Redis and have no schema.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&auth.Credential{}, &game.Game{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Database migrations applied")
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
