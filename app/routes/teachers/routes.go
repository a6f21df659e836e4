package teachers

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupTeachersRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/teachers")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetTeachers(c, db) })
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateTeacher(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateTeacher(c, db) })
	api.Put("/:id/subjects", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return AssignSubjects(c, db) })

	app.Get("/teachers", auth.AuthMiddleware, auth.RequireRole(models.RoleAdmin, models.RoleHeadTeacher), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("teachers/index", fiber.Map{
			"Title":       "Teachers",
			"CurrentPage": "teachers",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})
}
