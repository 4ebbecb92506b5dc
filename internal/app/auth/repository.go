package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrCredentialNotFound = errors.New("credential not found")

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go gamebalance/internal/app/auth CredentialRepository
type CredentialRepository interface {
	// GetByEmail returns ErrCredentialNotFound when no account uses email.
	GetByEmail(ctx context.Context, email string) (*Credential, error)
	// Create returns ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, credential *Credential) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CredentialRepository {
	return &repository{db: db}
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Credential, error) {
	var credential Credential
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&credential).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &credential, nil
}

func (r *repository) Create(ctx context.Context, credential *Credential) error {
	err := r.db.WithContext(ctx).Create(credential).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}
