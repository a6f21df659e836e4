package timetable

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupTimetableRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/timetable")
	api.Use(auth.AuthMiddleware)

	admin := auth.RequireRole(models.RoleAdmin, models.RoleHeadTeacher)

	api.Get("/classes/:classId", func(c *fiber.Ctx) error { return GetClassTimetable(c, db) })
	api.Post("/entries", admin, func(c *fiber.Ctx) error { return CreateEntry(c, db) })
	api.Put("/entries/:id", admin, func(c *fiber.Ctx) error { return UpdateEntry(c, db) })
	api.Delete("/entries/:id", admin, func(c *fiber.Ctx) error { return DeleteEntry(c, db) })

	app.Get("/timetable", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("timetable", fiber.Map{
			"Title":       "Timetable - School20",
			"CurrentPage": "timetable",
			"user":        user,
		})
	})
}
