package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/services"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.ListUsersQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	resp, err := h.userService.List(&q)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	user, err := h.userService.Get(id)
	if err != nil {
		return notFound(c, "user not found")
	}
	return c.JSON(user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.userService.Create(&req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return conflict(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	user, err := h.userService.Update(id, &req)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.userService.Delete(id); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "user not found")
		case errors.Is(err, services.ErrProtectedUser):
			return forbidden(c, err.Error())
		default:
			return internalError(c)
		}
	}
	return c.JSON(dto.MessageResponse{Message: "user deleted"})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.userService.ChangePassword(id, req.Password); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return notFound(c, "user not found")
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(dto.MessageResponse{Message: "password updated"})
}

func (h *UserHandler) ChangeStatus(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.userService.ChangeStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return notFound(c, "user not found")
		case errors.Is(err, services.ErrProtectedUser):
			return forbidden(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}
	return c.JSON(dto.MessageResponse{Message: "status updated"})
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}
