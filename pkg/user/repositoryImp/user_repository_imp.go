package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"musafir/database"
	"musafir/entities"
	"musafir/pkg/user"
	"musafir/pkg/user/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(ctx context.Context, u *entities.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if database.IsUniqueViolation(err) {
		return user.ErrEmailTaken
	}
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id uint) (*entities.User, error) {
	return r.first(ctx, "user_id = ?", id)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.first(ctx, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (r *userRepo) first(ctx context.Context, query string, arg any) (*entities.User, error) {
	var u entities.User
	err := r.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdatePreferences(ctx context.Context, id uint, prefs []byte) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).
		Where("user_id = ?", id).
		Update("preferences", datatypes.JSON(prefs))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
