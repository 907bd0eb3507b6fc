package dto

import "github.com/google/uuid"

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateRoleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type AssignMenusRequest struct {
	MenuIDs []uuid.UUID `json:"menu_ids"`
}
