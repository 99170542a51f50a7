package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"warehouse/internal/hash"
	"warehouse/internal/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserRepo struct {
	DB *gorm.DB
}

// Create inserts a new user after an advisory username pre-check. The users
// table also carries a unique index, so a concurrent duplicate insert fails
// at the backend instead of slipping through.
func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	var existing models.User
	err := r.DB.WithContext(ctx).Where("username = ?", user.Username).First(&existing).Error
	if err == nil {
		return ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.DB.WithContext(ctx).Create(user).Error
}

// Authenticate returns the user when the username exists and the password
// matches its hash. Both failure modes collapse into ErrInvalidCredentials.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
