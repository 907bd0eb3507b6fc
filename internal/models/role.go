package models

import (
	"time"

	"github.com/google/uuid"
)

// AdminRoleName is the privileged role seeded at first start.
const AdminRoleName = "admin"

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	Menus       []Menu    `gorm:"many2many:role_menus" json:"menus,omitempty"`
	Users       []User    `gorm:"many2many:user_roles" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
