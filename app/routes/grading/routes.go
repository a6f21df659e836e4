package grading

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

// SetupGradingRoutes wires the marks submission, approval and report
// generation endpoints.
func SetupGradingRoutes(app *fiber.App, db *sql.DB) {
	// Teacher-facing marks entry
	api := app.Group("/api/grading")
	api.Use(auth.AuthMiddleware)
	api.Get("/entry", func(c *fiber.Ctx) error { return GetMarksEntry(c, db) })
	api.Get("/navigate", func(c *fiber.Ctx) error { return Navigate(c, db) })
	api.Post("/draft", func(c *fiber.Ctx) error { return SaveDraft(c, db) })
	api.Post("/submit", func(c *fiber.Ctx) error { return SubmitForApproval(c, db) })

	// Head-teacher approval
	approvals := app.Group("/api/grading/approvals")
	approvals.Use(auth.AuthMiddleware, auth.RequireRole(models.RoleHeadTeacher, models.RoleAdmin))
	approvals.Get("/", func(c *fiber.Ctx) error { return GetApprovalGroups(c, db) })
	approvals.Post("/approve", func(c *fiber.Ctx) error { return ApproveGroupAPI(c, db) })
	approvals.Post("/reject", func(c *fiber.Ctx) error { return RejectGroupAPI(c, db) })

	// Report readiness and generation
	reports := app.Group("/api/grading/reports")
	reports.Use(auth.AuthMiddleware)
	reports.Get("/readiness", func(c *fiber.Ctx) error { return GetReadiness(c, db) })
	reports.Post("/toggle-select-all", func(c *fiber.Ctx) error { return ToggleSelectAll(c, db) })
	reports.Post("/generate", func(c *fiber.Ctx) error { return GenerateReports(c, db) })

	// Pages
	app.Get("/grading/marks-entry", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("grading/marks-entry", fiber.Map{
			"Title":       "Marks Entry",
			"CurrentPage": "grading",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})

	app.Get("/grading/approvals", auth.AuthMiddleware, auth.RequireRole(models.RoleHeadTeacher, models.RoleAdmin), func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("grading/approvals", fiber.Map{
			"Title":       "Marks Approval",
			"CurrentPage": "grading",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})

	app.Get("/grading/reports", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("grading/reports", fiber.Map{
			"Title":       "Report Cards",
			"CurrentPage": "grading",
			"FirstName":   user.FirstName,
			"LastName":    user.LastName,
			"user":        user,
		})
	})
}
