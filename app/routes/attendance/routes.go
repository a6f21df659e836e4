package attendance

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupAttendanceRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/attendance")
	api.Use(auth.AuthMiddleware)

	marker := auth.RequireRole(models.RoleTeacher, models.RoleHeadTeacher, models.RoleAdmin)

	api.Get("/classes/:classId", func(c *fiber.Ctx) error { return GetClassAttendance(c, db) })
	api.Post("/classes/:classId", marker, func(c *fiber.Ctx) error { return MarkAttendance(c, db) })
	api.Get("/classes/:classId/summary", func(c *fiber.Ctx) error { return GetClassSummary(c, db) })

	app.Get("/attendance", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("attendance", fiber.Map{
			"Title":       "Attendance - School20",
			"CurrentPage": "attendance",
			"user":        user,
		})
	})
}
