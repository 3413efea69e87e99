package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"musafir/entities"
	"musafir/pkg/user"
	"musafir/pkg/user/repository"
	svc "musafir/pkg/user/service"
)

type service struct{ repo repository.UserRepository }

func New(r repository.UserRepository) svc.UserService { return &service{repo: r} }

func (s *service) Register(ctx context.Context, in svc.Registration) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, user.ErrInvalidEmail
	}
	if len(in.Password) < 8 {
		return nil, user.ErrPasswordTooWeak
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	prefs, err := normalizePrefs(in.Preferences)
	if err != nil {
		return nil, err
	}
	u := &entities.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Preferences:  prefs,
		JoinedDate:   time.Now().UTC().Format(time.DateOnly),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Get(ctx context.Context, id uint) (*entities.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, user.ErrBadCredentials
	}
	return u, nil
}

func (s *service) UpdatePreferences(ctx context.Context, id uint, prefs json.RawMessage) (*entities.User, error) {
	norm, err := normalizePrefs(prefs)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePreferences(ctx, id, norm); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// preferences are free-form but must be a JSON object
func normalizePrefs(raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return datatypes.JSON("{}"), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", user.ErrInvalidPreferences, err)
	}
	b, _ := json.Marshal(obj)
	return datatypes.JSON(b), nil
}
