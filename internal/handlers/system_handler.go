package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chenglu1/admin-console/internal/services"
)

type SystemHandler struct {
	systemService *services.SystemService
}

func NewSystemHandler(systemService *services.SystemService) *SystemHandler {
	return &SystemHandler{systemService: systemService}
}

func (h *SystemHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.systemService.Metrics())
}
