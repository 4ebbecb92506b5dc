package game

import "gorm.io/gorm"

type Repository interface {
	GetAllGames() ([]*Game, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetAllGames() ([]*Game, error) {
	var games []*Game
	err := r.db.
		Order("id ASC").
		Find(&games).Error
	return games, err
}
