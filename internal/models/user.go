package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// User is a console account. Password holds the bcrypt hash and is never
// serialized.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username  string         `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Password  string         `gorm:"not null" json:"-"`
	Nickname  string         `gorm:"size:100" json:"nickname"`
	Email     string         `gorm:"size:255" json:"email"`
	Status    string         `gorm:"size:20;default:'active'" json:"status"`
	Roles     []Role         `gorm:"many2many:user_roles" json:"roles,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
