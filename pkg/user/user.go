package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrInvalidEmail    = errors.New("a valid email is required")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
	ErrBadCredentials  = errors.New("invalid email or password")

	ErrInvalidPreferences = errors.New("preferences must be a JSON object")
)
