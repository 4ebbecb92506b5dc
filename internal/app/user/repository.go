package user

import (
	"context"
	"errors"

	"gamebalance/internal/defaults"
	"gamebalance/internal/kv"
)

var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrSettingsNotFound = errors.New("settings not found")
)

type Repository interface {
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, profile *Profile) error
	GetSettings(ctx context.Context, userID string) (*defaults.Settings, error)
	SaveSettings(ctx context.Context, userID string, settings defaults.Settings) error
}

type repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func (r *repository) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var profile Profile
	if err := r.store.Get(ctx, profileKey(userID), &profile); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *repository) SaveProfile(ctx context.Context, profile *Profile) error {
	if profile.ID == "" {
		return errors.New("profile ID cannot be empty")
	}
	return r.store.Set(ctx, profileKey(profile.ID), profile)
}

func (r *repository) GetSettings(ctx context.Context, userID string) (*defaults.Settings, error) {
	var settings defaults.Settings
	if err := r.store.Get(ctx, settingsKey(userID), &settings); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *repository) SaveSettings(ctx context.Context, userID string, settings defaults.Settings) error {
	return r.store.Set(ctx, settingsKey(userID), settings)
}
