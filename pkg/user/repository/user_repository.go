package repository

import (
	"context"

	"musafir/entities"
)

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	FindByID(ctx context.Context, id uint) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdatePreferences(ctx context.Context, id uint, prefs []byte) error
}
