package academic

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

// SetupAcademicRoutes wires academic year and term management.
func SetupAcademicRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/academic")
	api.Use(auth.AuthMiddleware)

	api.Get("/years", func(c *fiber.Ctx) error { return GetAcademicYears(c, db) })
	api.Post("/years", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateAcademicYear(c, db) })
	api.Put("/years/:id/current", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return SetCurrentYear(c, db) })

	api.Get("/terms", func(c *fiber.Ctx) error { return GetTerms(c, db) })
	api.Post("/terms", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateTerm(c, db) })
	api.Put("/terms/:id/current", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return SetCurrentTerm(c, db) })
	api.Get("/terms/current", func(c *fiber.Ctx) error { return GetCurrentTermAPI(c, db) })
}
