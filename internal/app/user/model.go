package user

import (
	"time"

	"gamebalance/internal/defaults"
)

const (
	profileKeyPrefix  = "user:"
	settingsKeyPrefix = "settings:"
)

type Profile struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Username     string     `json:"username"`
	ProfileImage string     `json:"profileImage,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Birthdate    string     `json:"birthdate,omitempty"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// ProfileUpdate carries the fields a user may edit. Nil fields are left untouched.
type ProfileUpdate struct {
	Email        *string `json:"email" binding:"omitempty,email"`
	Name         *string `json:"name" binding:"omitempty,min=1,max=64"`
	Username     *string `json:"username" binding:"omitempty,min=1,max=32"`
	ProfileImage *string `json:"profileImage" binding:"omitempty,max=2048"`
	Phone        *string `json:"phone" binding:"omitempty,max=32"`
	Birthdate    *string `json:"birthdate" binding:"omitempty,max=32"`
}

// SettingsRequest is a complete settings object; every field must be present.
type SettingsRequest struct {
	DailyLimit    *int  `json:"dailyLimit" binding:"required,min=0"`
	WeeklyLimit   *int  `json:"weeklyLimit" binding:"required,min=0"`
	BreakReminder *bool `json:"breakReminder" binding:"required"`
	LimitWarning  *bool `json:"limitWarning" binding:"required"`
	Sound         *bool `json:"sound" binding:"required"`
	NightMode     *bool `json:"nightMode" binding:"required"`
	Vibration     *bool `json:"vibration" binding:"required"`
}

func (r SettingsRequest) Settings() defaults.Settings {
	return defaults.Settings{
		DailyLimitMinutes:  *r.DailyLimit,
		WeeklyLimitMinutes: *r.WeeklyLimit,
		BreakReminder:      *r.BreakReminder,
		LimitWarning:       *r.LimitWarning,
		Sound:              *r.Sound,
		NightMode:          *r.NightMode,
		Vibration:          *r.Vibration,
	}
}

type ProfileResponse struct {
	Profile  *Profile           `json:"profile"`
	Settings *defaults.Settings `json:"settings"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func profileKey(userID string) string {
	return profileKeyPrefix + userID
}

func settingsKey(userID string) string {
	return settingsKeyPrefix + userID
}
