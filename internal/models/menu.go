package models

import (
	"time"

	"github.com/google/uuid"
)

// Menu is one node of the console navigation tree. ParentID is nil for
// top-level entries.
type Menu struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Path      string     `gorm:"size:255" json:"path"`
	Component string     `gorm:"size:255" json:"component"`
	Icon      string     `gorm:"size:100" json:"icon"`
	Sort      int        `gorm:"default:0" json:"sort"`
	Hidden    bool       `gorm:"default:false" json:"hidden"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
