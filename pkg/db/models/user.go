package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/shopcartlabs/shopcart-backend/pkg/objectid"
)

// User is the identity a basket belongs to. Authentication lives in a
// separate service; this table only anchors ownership.
type User struct {
	ID        string    `gorm:"column:id;type:char(24);primaryKey"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex:idx_users_email"`
	Role      string    `gorm:"column:role;type:text;not null;default:'user'"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = objectid.New()
	}
	return nil
}
