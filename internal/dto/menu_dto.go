package dto

import (
	"github.com/google/uuid"

	"github.com/chenglu1/admin-console/internal/models"
)

type CreateMenuRequest struct {
	ParentID  *uuid.UUID `json:"parent_id"`
	Name      string     `json:"name"`
	Path      string     `json:"path"`
	Component string     `json:"component"`
	Icon      string     `json:"icon"`
	Sort      int        `json:"sort"`
	Hidden    bool       `json:"hidden"`
}

type UpdateMenuRequest = CreateMenuRequest

// MenuNode is one tree node of the navigation structure.
type MenuNode struct {
	models.Menu
	Children []*MenuNode `json:"children,omitempty"`
}
