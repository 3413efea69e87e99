package entities

import (
	"time"

	"gorm.io/datatypes"
)

type User struct {
	UserID       uint           `gorm:"column:user_id;primaryKey" json:"user_id"`
	Name         string         `gorm:"column:name" json:"name"`
	Email        string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	PasswordHash string         `gorm:"column:password_hash" json:"-"`
	Preferences  datatypes.JSON `gorm:"column:preferences" json:"preferences,omitempty"`
	JoinedDate   string         `gorm:"column:joined_date" json:"joined_date"`
	CreatedAt    time.Time      `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
