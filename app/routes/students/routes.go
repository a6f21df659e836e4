package students

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetStudentsAPI(c, db) })
	api.Get("/:id", func(c *fiber.Ctx) error { return GetStudentAPI(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateStudentAPI(c, db) })
	api.Delete("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return DeactivateStudentAPI(c, db) })
	api.Get("/:id/guardians", func(c *fiber.Ctx) error { return GetGuardiansAPI(c, db) })
	api.Post("/:id/guardians", func(c *fiber.Ctx) error { return AddGuardianAPI(c, db) })

	app.Get("/students", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("students/index", fiber.Map{
			"Title":       "Students",
			"CurrentPage": "students",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})
}
