package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OperationLog records one authenticated mutating request for the console
// audit view.
type OperationLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	Username  string         `gorm:"size:100;index" json:"username"`
	Method    string         `gorm:"size:10" json:"method"`
	Path      string         `gorm:"size:255;index" json:"path"`
	Status    int            `json:"status"`
	LatencyMs int            `json:"latency_ms"`
	ClientIP  string         `gorm:"size:45" json:"client_ip"`
	UserAgent string         `gorm:"size:255" json:"user_agent"`
	Params    datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"params"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
}
