package game

import "time"

type Game struct {
	ID        uint64    `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"unique;not null"`
	Name      string    `json:"name" gorm:"not null"`
	Icon      string    `json:"icon" gorm:"not null;default:''"`
	Color     string    `json:"color" gorm:"not null;default:''"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type GameListResponse struct {
	Games []*Game `json:"games"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
