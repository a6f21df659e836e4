package admissions

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupAdmissionsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/admissions")
	api.Use(auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin))
	api.Get("/", func(c *fiber.Ctx) error { return GetApplications(c, db) })
	api.Post("/", func(c *fiber.Ctx) error { return CreateApplication(c, db) })
	api.Put("/:id/status", func(c *fiber.Ctx) error { return UpdateApplicationStatus(c, db) })
	api.Post("/:id/enroll", func(c *fiber.Ctx) error { return EnrollApplication(c, db) })

	app.Get("/admissions", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("admissions/index", fiber.Map{
			"Title":       "Admissions",
			"CurrentPage": "admissions",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})
}
