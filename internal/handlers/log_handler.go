package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/chenglu1/admin-console/internal/dto"
	"github.com/chenglu1/admin-console/internal/services"
)

type LogHandler struct {
	oplog *services.OplogService
}

func NewLogHandler(oplog *services.OplogService) *LogHandler {
	return &LogHandler{oplog: oplog}
}

func (h *LogHandler) ListOperations(c *fiber.Ctx) error {
	var q dto.ListOperationLogsQuery
	if err := c.QueryParser(&q); err != nil {
		return badRequest(c, "invalid query parameters")
	}

	resp, err := h.oplog.List(&q)
	if err != nil {
		return internalError(c)
	}
	return c.JSON(resp)
}
