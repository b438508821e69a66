package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tndevelopers2024/scribe-api/internal/config"
	"github.com/tndevelopers2024/scribe-api/internal/handler"
	"github.com/tndevelopers2024/scribe-api/internal/middleware"
	"github.com/tndevelopers2024/scribe-api/internal/models"
	"github.com/tndevelopers2024/scribe-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	PortfolioHandler    *handler.PortfolioHandler
	FacultyHandler      *handler.FacultyHandler
	ReviewHandler       *handler.ReviewHandler
	NotificationHandler *handler.NotificationHandler
	UploadHandler       *handler.UploadHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		auth := api.Group("/auth", middleware.RateLimit("login", 10, time.Minute))
		deps.AuthHandler.RegisterPublic(auth)

		protected := api.Group("", jwtMiddleware)
		deps.AuthHandler.RegisterProtected(protected)
	}

	if deps.PortfolioHandler != nil {
		student := api.Group("", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.PortfolioHandler.RegisterProfile(student)

		portfolio := api.Group("/portfolio", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.PortfolioHandler.Register(portfolio)
	}

	if deps.FacultyHandler != nil {
		faculty := api.Group("/faculty", jwtMiddleware, middleware.RequireRole(models.RoleFaculty, models.RoleLeadFaculty))
		deps.FacultyHandler.Register(faculty)

		if deps.ReviewHandler != nil {
			deps.ReviewHandler.Register(faculty)
		}
	}

	if deps.NotificationHandler != nil {
		notifications := api.Group("/notifications", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.NotificationHandler.Register(notifications)
	}

	if deps.UploadHandler != nil {
		uploads := api.Group("/uploads", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
		deps.UploadHandler.Register(uploads)
	}
}
