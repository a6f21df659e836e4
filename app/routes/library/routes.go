package library

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
	"school20/app/routes/auth"
)

func SetupLibraryRoutes(app *fiber.App, db *sql.DB) {
	api := app.Group("/api/library")
	api.Use(auth.AuthMiddleware)

	librarian := auth.RequireRole(models.RoleLibrarian, models.RoleAdmin)

	api.Get("/books", func(c *fiber.Ctx) error { return GetBooks(c, db) })
	api.Post("/books", librarian, func(c *fiber.Ctx) error { return CreateBook(c, db) })
	api.Put("/books/:id", librarian, func(c *fiber.Ctx) error { return UpdateBook(c, db) })

	api.Get("/loans", func(c *fiber.Ctx) error { return GetLoans(c, db) })
	api.Post("/loans", librarian, func(c *fiber.Ctx) error { return BorrowBookAPI(c, db) })
	api.Post("/loans/:id/return", librarian, func(c *fiber.Ctx) error { return ReturnBookAPI(c, db) })

	api.Get("/fines", func(c *fiber.Ctx) error { return GetFines(c, db) })
	api.Post("/fines/:id/pay", librarian, func(c *fiber.Ctx) error { return PayFine(c, db) })
	api.Post("/fines/:id/waive", librarian, func(c *fiber.Ctx) error { return WaiveFine(c, db) })

	app.Get("/library", auth.AuthMiddleware, func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)
		return c.Render("library", fiber.Map{
			"Title":       "Library - School20",
			"CurrentPage": "library",
			"user":        user,
		})
	})
}
