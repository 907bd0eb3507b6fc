package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chenglu1/admin-console/internal/models"
)

type captureRecorder struct {
	entries []models.OperationLog
}

func (r *captureRecorder) Record(entry models.OperationLog) {
	r.entries = append(r.entries, entry)
}

// identityStub plants verified-looking claims the way the JWT middleware
// does, so the audit layer can be exercised without signing tokens.
func identityStub(userID uuid.UUID, username string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":      userID.String(),
			"username": username,
		}))
		return c.Next()
	}
}

func newAuditApp(rec *captureRecorder, pre ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range pre {
		app.Use(h)
	}
	app.Use(OperationLog(rec))
	app.Post("/api/users", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusCreated)
	})
	app.Get("/api/users", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestOperationLog_CapturesMutatingRequest(t *testing.T) {
	rec := &captureRecorder{}
	userID := uuid.New()
	app := newAuditApp(rec, identityStub(userID, "admin"))

	req := httptest.NewRequest(fiber.MethodPost, "/api/users",
		strings.NewReader(`{"username":"bob","password":"hunter22"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderUserAgent, "audit-test")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	require.NotNil(t, entry.UserID)
	assert.Equal(t, userID, *entry.UserID)
	assert.Equal(t, "admin", entry.Username)
	assert.Equal(t, fiber.MethodPost, entry.Method)
	assert.Equal(t, "/api/users", entry.Path)
	assert.Equal(t, fiber.StatusCreated, entry.Status)
	assert.Equal(t, "audit-test", entry.UserAgent)
	assert.JSONEq(t, `{"username":"bob","password":"[redacted]"}`, string(entry.Params))
}

func TestOperationLog_SkipsReads(t *testing.T) {
	rec := &captureRecorder{}
	app := newAuditApp(rec, identityStub(uuid.New(), "admin"))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, rec.entries)
}

func TestOperationLog_SkipsAnonymousRequests(t *testing.T) {
	rec := &captureRecorder{}
	app := newAuditApp(rec)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/users", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Empty(t, rec.entries)
}

func TestSanitizedBody(t *testing.T) {
	assert.JSONEq(t, `{}`, string(sanitizedBody(nil)))
	assert.JSONEq(t, `{}`, string(sanitizedBody([]byte("not json"))))
	assert.JSONEq(t,
		`{"refreshToken":"[redacted]","device":"laptop"}`,
		string(sanitizedBody([]byte(`{"refreshToken":"abc123","device":"laptop"}`))))
}
