package dto

import "github.com/google/uuid"

type CreateUserRequest struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Nickname string      `json:"nickname"`
	Email    string      `json:"email"`
	RoleIDs  []uuid.UUID `json:"role_ids"`
}

type UpdateUserRequest struct {
	Nickname string      `json:"nickname"`
	Email    string      `json:"email"`
	RoleIDs  []uuid.UUID `json:"role_ids"`
}

type ChangePasswordRequest struct {
	Password string `json:"password"`
}

type ChangeStatusRequest struct {
	Status string `json:"status"`
}

type ListUsersQuery struct {
	Username string `query:"username"`
	Status   string `query:"status"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}
