package dashboard

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupDashboardRoutes(app *fiber.App, db *sql.DB) {
	app.Get("/api/dashboard/stats", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return GetStatsAPI(c, db)
	})

	app.Get("/dashboard", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("dashboard/index", fiber.Map{
			"Title":       "Dashboard - School20",
			"CurrentPage": "dashboard",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})

	app.Get("/", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard")
	})
}
