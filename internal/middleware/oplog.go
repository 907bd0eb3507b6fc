package middleware

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/chenglu1/admin-console/internal/models"
)

// OperationRecorder accepts audit entries. *services.OplogService is the
// production implementation.
type OperationRecorder interface {
	Record(entry models.OperationLog)
}

// OperationLog records authenticated mutating requests for the audit view.
// Reads and unauthenticated traffic are skipped.
func OperationLog(rec OperationRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet || c.Method() == fiber.MethodHead || c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		userID, idErr := GetUserID(c)
		if idErr != nil {
			return err
		}

		entry := models.OperationLog{
			ID:        uuid.New(),
			UserID:    &userID,
			Username:  GetUsername(c),
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			LatencyMs: int(time.Since(start).Milliseconds()),
			ClientIP:  c.IP(),
			UserAgent: c.Get(fiber.HeaderUserAgent),
			Params:    sanitizedBody(c.Body()),
		}
		rec.Record(entry)

		return err
	}
}

// sanitizedBody keeps the JSON request body for the audit trail with
// credential fields blanked. Non-JSON bodies are dropped.
func sanitizedBody(body []byte) datatypes.JSON {
	if len(body) == 0 {
		return datatypes.JSON("{}")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return datatypes.JSON("{}")
	}

	for _, key := range []string{"password", "refreshToken"} {
		if _, ok := parsed[key]; ok {
			parsed[key] = "[redacted]"
		}
	}

	out, err := json.Marshal(parsed)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(out)
}
