package main

import (
	"encoding/json"
	"log"
	"time"

	"school20/app/config"
	"school20/app/database"
	"school20/app/routes/academic"
	"school20/app/routes/admissions"
	"school20/app/routes/attendance"
	"school20/app/routes/auth"
	"school20/app/routes/classes"
	"school20/app/routes/dashboard"
	"school20/app/routes/fees"
	"school20/app/routes/grading"
	"school20/app/routes/library"
	"school20/app/routes/students"
	"school20/app/routes/subjects"
	"school20/app/routes/teachers"
	"school20/app/routes/timetable"
	"school20/app/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
)

// customErrorHandler handles HTTP errors with custom templates
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	// API requests get JSON, web requests get an error page
	if len(c.Path()) >= 4 && c.Path()[:4] == "/api" {
		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
			"code":    code,
		})
	}

	switch code {
	case 404:
		return c.Status(404).Render("404", fiber.Map{
			"Title":       "Page Not Found - School20",
			"CurrentPage": "",
		})
	case 403:
		return c.Status(403).Render("error", fiber.Map{
			"Title":        "Access Forbidden - School20",
			"CurrentPage":  "",
			"ErrorCode":    "403",
			"ErrorTitle":   "Access Forbidden",
			"ErrorMessage": "You don't have permission to access this resource.",
		})
	case 401:
		return c.Status(401).Render("error", fiber.Map{
			"Title":        "Unauthorized - School20",
			"CurrentPage":  "",
			"ErrorCode":    "401",
			"ErrorTitle":   "Unauthorized",
			"ErrorMessage": "Please log in to access this resource.",
		})
	case 500:
		return c.Status(500).Render("500", fiber.Map{
			"Title":        "Server Error - School20",
			"CurrentPage":  "",
			"ErrorCode":    "500",
			"ErrorTitle":   "Internal Server Error",
			"ErrorMessage": "We're experiencing technical difficulties. Please try again later.",
			"ShowRetry":    true,
		})
	default:
		return c.Status(code).Render("error", fiber.Map{
			"Title":        "Error - School20",
			"CurrentPage":  "",
			"ErrorCode":    code,
			"ErrorTitle":   "An Error Occurred",
			"ErrorMessage": err.Error(),
		})
	}
}

func main() {
	// Set global time zone to East Africa Time
	loc, err := time.LoadLocation("Africa/Kampala")
	if err != nil {
		log.Printf("Warning: Failed to load Africa/Kampala location, falling back to UTC+3: %v", err)
		time.Local = time.FixedZone("EAT", 3*60*60)
	} else {
		time.Local = loc
	}
	log.Printf("Application time zone set to: %s", time.Local.String())

	config.Init()
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Background sweep for overdue library loans
	services.StartScheduler(db)

	engine := html.New("./app/templates", ".html")
	engine.AddFunc("json", func(v interface{}) (string, error) {
		b, err := json.Marshal(v)
		return string(b), err
	})
	engine.Reload(true)
	engine.Debug(false)

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
		ErrorHandler:      customErrorHandler,
	})

	app.Use(logger.New())
	app.Use(cors.New())

	app.Static("/static", "./static")
	app.Get("/favicon.ico", func(c *fiber.Ctx) error {
		return c.SendFile("./static/favicon.ico")
	})

	auth.SetupAuthRoutes(app)
	dashboard.SetupDashboardRoutes(app, db)
	academic.SetupAcademicRoutes(app, db)
	students.SetupStudentsRoutes(app, db)
	admissions.SetupAdmissionsRoutes(app, db)
	teachers.SetupTeachersRoutes(app, db)
	classes.SetupClassesRoutes(app, db)
	subjects.SetupSubjectsRoutes(app, db)
	grading.SetupGradingRoutes(app, db)
	fees.SetupFeesRoutes(app, db)
	library.SetupLibraryRoutes(app, db)
	attendance.SetupAttendanceRoutes(app, db)
	timetable.SetupTimetableRoutes(app, db)

	// Catch-all route for 404 errors (must be last)
	app.Use("*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Page not found")
	})

	addr := ":" + config.AppConfig.Port
	log.Println("Server starting on " + addr)
	log.Fatal(app.Listen(addr))
}
