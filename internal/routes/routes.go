package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"github.com/chenglu1/admin-console/internal/config"
	"github.com/chenglu1/admin-console/internal/handlers"
	"github.com/chenglu1/admin-console/internal/middleware"
	"github.com/chenglu1/admin-console/internal/services"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	oplog *services.OplogService,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	roleHandler *handlers.RoleHandler,
	menuHandler *handlers.MenuHandler,
	logHandler *handlers.LogHandler,
	systemHandler *handlers.SystemHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public. Login gets a stricter limit against brute force.
	auth := api.Group("/auth")
	auth.Post("/login", limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}), authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	// Logout stays outside JWTProtected: the bearer token is optional there.
	auth.Post("/logout", authHandler.Logout)

	// Protected console routes
	protected := api.Group("/", middleware.JWTProtected(cfg), middleware.OperationLog(oplog))

	protected.Get("/menus/mine", menuHandler.Mine)

	// Admin-only management surface
	admin := protected.Group("/", middleware.AdminRequired(db))

	admin.Get("/users", userHandler.List)
	admin.Post("/users", userHandler.Create)
	admin.Get("/users/:id", userHandler.Get)
	admin.Put("/users/:id", userHandler.Update)
	admin.Delete("/users/:id", userHandler.Delete)
	admin.Put("/users/:id/password", userHandler.ChangePassword)
	admin.Put("/users/:id/status", userHandler.ChangeStatus)

	admin.Get("/roles", roleHandler.List)
	admin.Post("/roles", roleHandler.Create)
	admin.Get("/roles/:id", roleHandler.Get)
	admin.Put("/roles/:id", roleHandler.Update)
	admin.Delete("/roles/:id", roleHandler.Delete)
	admin.Put("/roles/:id/menus", roleHandler.AssignMenus)

	admin.Get("/menus", menuHandler.Tree)
	admin.Post("/menus", menuHandler.Create)
	admin.Put("/menus/:id", menuHandler.Update)
	admin.Delete("/menus/:id", menuHandler.Delete)

	admin.Get("/logs/operations", logHandler.ListOperations)
	admin.Get("/metrics/system", systemHandler.Metrics)
}
