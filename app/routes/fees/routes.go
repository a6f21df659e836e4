package fees

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/fees")
	api.Use(auth.AuthMiddleware)

	bursar := auth.RequireRole(models.RoleBursar, models.RoleAdmin)

	api.Get("/structures", func(c *fiber.Ctx) error { return GetFeeStructures(c, db) })
	api.Post("/structures", bursar, func(c *fiber.Ctx) error { return CreateFeeStructure(c, db) })
	api.Put("/structures/:id", bursar, func(c *fiber.Ctx) error { return UpdateFeeStructure(c, db) })
	api.Post("/structures/:id/invoices", bursar, func(c *fiber.Ctx) error { return GenerateInvoicesAPI(c, db) })

	api.Get("/invoices", func(c *fiber.Ctx) error { return GetInvoices(c, db) })
	api.Post("/payments", bursar, func(c *fiber.Ctx) error { return RecordPaymentAPI(c, db) })
	api.Get("/balances/:studentId", func(c *fiber.Ctx) error { return GetStudentBalanceAPI(c, db) })

	app.Get("/fees", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("fees", fiber.Map{
			"Title":       "Fees - School20",
			"CurrentPage": "fees",
			"user":        user,
		})
	})
}
