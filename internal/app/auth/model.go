package auth

import (
	"time"

	"gamebalance/internal/identity"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the sign-in record of a user. Profile data lives in the user store.
type Credential struct {
	ID           string    `gorm:"primaryKey;size:64"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Name         string    `gorm:"not null"`
	Username     string    `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (c *Credential) Identity() *identity.Identity {
	return &identity.Identity{
		UserID:   c.ID,
		Email:    c.Email,
		Name:     c.Name,
		Username: c.Username,
	}
}

// Claims are the access token claims. The subject is the user id.
type Claims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required,max=64"`
	Username string `json:"username" binding:"required,max=32"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupResponse struct {
	Success bool               `json:"success"`
	User    *identity.Identity `json:"user"`
	Message string             `json:"message"`
}

type SigninResponse struct {
	Success     bool               `json:"success"`
	AccessToken string             `json:"accessToken"`
	User        *identity.Identity `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
