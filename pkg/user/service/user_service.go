package service

import (
	"context"
	"encoding/json"

	"musafir/entities"
)

type UserService interface {
	Register(ctx context.Context, in Registration) (*entities.User, error)
	Get(ctx context.Context, id uint) (*entities.User, error)
	// Authenticate returns the user when password matches.
	Authenticate(ctx context.Context, email, password string) (*entities.User, error)
	UpdatePreferences(ctx context.Context, id uint, prefs json.RawMessage) (*entities.User, error)
}

type Registration struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	Preferences json.RawMessage `json:"preferences"`
}
