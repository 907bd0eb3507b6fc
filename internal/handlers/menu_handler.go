package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/middleware"
	"github.com/chenglu1/admin-console/internal/services"
)

type MenuHandler struct {
	menuService *services.MenuService
}

func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

func (h *MenuHandler) Tree(c *fiber.Ctx) error {
	tree, err := h.menuService.Tree()
	if err != nil {
		return internalError(c)
	}
	return c.JSON(tree)
}

// Mine returns the caller's visible navigation tree, derived from their
// roles.
func (h *MenuHandler) Mine(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Code: fiber.StatusUnauthorized, Message: "unauthorized",
		})
	}

	tree, err := h.menuService.TreeForUser(userID)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(tree)
}

func (h *MenuHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	menu, err := h.menuService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			return badRequest(c, "parent menu not found")
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(menu)
}

func (h *MenuHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	var req dto.UpdateMenuRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	menu, err := h.menuService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrMenuNotFound) {
			return notFound(c, "menu not found")
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(menu)
}

func (h *MenuHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid menu id")
	}

	if err := h.menuService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrMenuNotFound):
			return notFound(c, "menu not found")
		case errors.Is(err, services.ErrMenuHasChildren):
			return conflict(c, err.Error())
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.MessageResponse{Message: "menu deleted"})
}
