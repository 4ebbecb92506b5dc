package seeder

import (
	"context"
	"errors"

	"gamebalance/internal/app/auth"
	"gamebalance/internal/app/game"
	"gamebalance/internal/defaults"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Seeder struct {
	db       *gorm.DB
	accounts auth.Service
	seedDemo bool
	logger   *zap.Logger
}

// NewSeeder builds a seeder. With seedDemo set, the demo account is created through accounts.
func NewSeeder(db *gorm.DB, accounts auth.Service, seedDemo bool, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:       db,
		accounts: accounts,
		seedDemo: seedDemo,
		logger:   logger,
	}
}

func (s *Seeder) Seed(ctx context.Context) error {
	s.logger.Info("Running database seeders...")

	if err := s.seedGames(); err != nil {
		return err
	}

	if s.seedDemo {
		if err := s.seedDemoAccount(ctx); err != nil {
			return err
		}
	}

	s.logger.Info("Database seeders completed successfully")
	return nil
}

func (s *Seeder) seedGames() error {
	var count int64
	s.db.Model(&game.Game{}).Count(&count)
	if count > 0 {
		s.logger.Info("Games already exist, skipping seed")
		return nil
	}

	catalog := defaults.Games()
	games := make([]game.Game, 0, len(catalog))
	for _, g := range catalog {
		games = append(games, game.Game{Slug: g.Slug, Name: g.Name, Icon: g.Icon, Color: g.Color})
	}

	if err := s.db.Create(&games).Error; err != nil {
		return err
	}

	s.logger.Info("Seeded games", zap.Int("count", len(games)))
	return nil
}

func (s *Seeder) seedDemoAccount(ctx context.Context) error {
	_, err := s.accounts.Signup(ctx, auth.SignupRequest{
		Email:    defaults.DemoEmail,
		Password: defaults.DemoPassword,
		Name:     defaults.DemoName,
		Username: defaults.DemoUsername,
	})
	if errors.Is(err, auth.ErrEmailTaken) {
		s.logger.Info("Demo account already exists, skipping seed")
		return nil
	}
	if err != nil {
		return err
	}

	s.logger.Info("Seeded demo account", zap.String("email", defaults.DemoEmail))
	return nil
}
