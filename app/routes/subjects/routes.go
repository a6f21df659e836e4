package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupSubjectsRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/subjects")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetSubjects(c, db) })
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateSubject(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateSubject(c, db) })
	api.Post("/:id/enrollments", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return EnrollStudent(c, db) })
	api.Get("/:id/enrollments", func(c *fiber.Ctx) error { return GetEnrollments(c, db) })
}
