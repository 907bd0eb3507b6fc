package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/services"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) List(c *fiber.Ctx) error {
	roles, err := h.roleService.List()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(roles)
}

func (h *RoleHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid role id")
	}

	role, err := h.roleService.Get(id)
	if err != nil {
		return notFound(c, "role not found")
	}
	return c.JSON(role)
}

func (h *RoleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	role, err := h.roleService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrRoleNameTaken) {
			return conflict(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(role)
}

func (h *RoleHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid role id")
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	role, err := h.roleService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			return notFound(c, "role not found")
		case errors.Is(err, services.ErrRoleNameTaken):
			return conflict(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.JSON(role)
}

func (h *RoleHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid role id")
	}

	if err := h.roleService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrRoleNotFound):
			return notFound(c, "role not found")
		case errors.Is(err, services.ErrRoleInUse):
			return conflict(c, err.Error())
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.MessageResponse{Message: "role deleted"})
}

func (h *RoleHandler) AssignMenus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid role id")
	}

	var req dto.AssignMenusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	role, err := h.roleService.AssignMenus(id, req.MenuIDs)
	if err != nil {
		if errors.Is(err, services.ErrRoleNotFound) {
			return notFound(c, "role not found")
		}
		return internalError(c)
	}
	return c.JSON(role)
}
