package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupClassesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/classes")
	api.Use(auth.AuthMiddleware)
	api.Get("/", func(c *fiber.Ctx) error { return GetClasses(c, db) })
	api.Post("/", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return CreateClass(c, db) })
	api.Put("/:id", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return UpdateClass(c, db) })
	api.Get("/:id/subjects", func(c *fiber.Ctx) error { return GetClassSubjects(c, db) })
	api.Post("/:id/subjects", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return AddClassSubject(c, db) })
	api.Post("/:id/enrollments", auth.RequireRole(models.RoleAdmin), func(c *fiber.Ctx) error { return EnrollStudent(c, db) })
}
