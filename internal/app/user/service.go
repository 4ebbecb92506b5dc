package user

import (
	"context"
	"errors"
	"fmt"

	"gamebalance/internal/defaults"
	"gamebalance/internal/identity"
	"gamebalance/internal/utils"

	"go.uber.org/zap"
)

var ErrUnauthenticated = errors.New("unauthenticated")

type Service interface {
	// GetProfile returns the stored profile, or one built from the token identity when none is stored.
	GetProfile(ctx context.Context, ident identity.Identity) (*Profile, error)
	// GetSettings returns the stored settings, or the defaults when none are stored.
	GetSettings(ctx context.Context, userID string) (*defaults.Settings, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error)
	// UpdateSettings replaces the stored settings with settings as given.
	UpdateSettings(ctx context.Context, userID string, settings defaults.Settings) error
	// Initialize writes the profile and default settings of a newly registered user.
	Initialize(ctx context.Context, ident identity.Identity) error
}

type service struct {
	repo   Repository
	clock  utils.Clock
	logger *zap.SugaredLogger
}

func NewService(repo Repository, clock utils.Clock, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		clock:  clock,
		logger: logger.Sugar(),
	}
}

func (s *service) GetProfile(ctx context.Context, ident identity.Identity) (*Profile, error) {
	if ident.UserID == "" {
		return nil, ErrUnauthenticated
	}

	profile, err := s.repo.GetProfile(ctx, ident.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	return &Profile{
		ID:       ident.UserID,
		Email:    ident.Email,
		Name:     ident.Name,
		Username: ident.Username,
	}, nil
}

func (s *service) GetSettings(ctx context.Context, userID string) (*defaults.Settings, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	settings, err := s.repo.GetSettings(ctx, userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	def := defaults.DefaultSettings()
	return &def, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*Profile, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// Read-merge-write; concurrent edits of the same profile are last-writer-wins.
	profile, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		profile = &Profile{}
	} else if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	applyUpdate(profile, update)
	profile.ID = userID
	now := s.clock.Now()
	profile.UpdatedAt = &now

	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Infow("Profile updated", "user_id", userID)
	return profile, nil
}

func (s *service) UpdateSettings(ctx context.Context, userID string, settings defaults.Settings) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if err := s.repo.SaveSettings(ctx, userID, settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	s.logger.Infow("Settings updated", "user_id", userID,
		"daily_limit", settings.DailyLimitMinutes,
		"weekly_limit", settings.WeeklyLimitMinutes,
	)
	return nil
}

func (s *service) Initialize(ctx context.Context, ident identity.Identity) error {
	if ident.UserID == "" {
		return ErrUnauthenticated
	}

	now := s.clock.Now()
	profile := &Profile{
		ID:        ident.UserID,
		Email:     ident.Email,
		Name:      ident.Name,
		Username:  ident.Username,
		CreatedAt: &now,
	}
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := s.repo.SaveSettings(ctx, ident.UserID, defaults.DefaultSettings()); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	s.logger.Infow("User initialized", "user_id", ident.UserID, "username", ident.Username)
	return nil
}

func applyUpdate(p *Profile, u ProfileUpdate) {
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Username != nil {
		p.Username = *u.Username
	}
	if u.ProfileImage != nil {
		p.ProfileImage = *u.ProfileImage
	}
	if u.Phone != nil {
		p.Phone = *u.Phone
	}
	if u.Birthdate != nil {
		p.Birthdate = *u.Birthdate
	}
}
