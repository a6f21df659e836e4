package grading

import (
	"database/sql"
	"log"

	"github.com/gofiber/fiber/v2"

	"school20/app/config"
	"school20/app/models"
	"school20/app/services"
)

// GetReadiness computes, per student of a class, whether enough subject
// submissions are approved to generate a report card. Derived on demand
// from current rows, never stored.
func GetReadiness(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Query("class_id")
	if classID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id is required",
		})
	}

	termID, yearID, err := resolvePeriod(db, c.Query("term_id"), c.Query("academic_year_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	students, err := GetClassStudents(db, classID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	submissions, err := GetTermSubmissions(db, yearID, termID, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch submissions",
		})
	}

	threshold := config.AppConfig.Grading.ReadyThreshold
	readiness := ComputeReadiness(students, submissions, threshold)

	return c.JSON(fiber.Map{
		"readiness": readiness,
		"threshold": threshold,
	})
}

type toggleSelectRequest struct {
	ClassID        string   `json:"class_id" validate:"required,uuid"`
	TermID         string   `json:"term_id" validate:"omitempty,uuid"`
	AcademicYearID string   `json:"academic_year_id" validate:"omitempty,uuid"`
	Selected       []string `json:"selected"`
}

// ToggleSelectAll returns the new selection for the report screen's
// select-all control: all ready students, or nothing when they were all
// selected already.
func ToggleSelectAll(c *fiber.Ctx, db *sql.DB) error {
	var req toggleSelectRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	termID, yearID, err := resolvePeriod(db, req.TermID, req.AcademicYearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	students, err := GetClassStudents(db, req.ClassID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}
	submissions, err := GetTermSubmissions(db, yearID, termID, req.ClassID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch submissions",
		})
	}

	readiness := ComputeReadiness(students, submissions, config.AppConfig.Grading.ReadyThreshold)
	selection := ToggleSelectAllReady(readiness, req.Selected)

	return c.JSON(fiber.Map{"selected": selection})
}

type generateRequest struct {
	StudentIDs     []string `json:"student_ids"`
	TermID         string   `json:"term_id" validate:"omitempty,uuid"`
	AcademicYearID string   `json:"academic_year_id" validate:"omitempty,uuid"`
}

// GenerateReports runs a best-effort batch: one render call per selected
// student, sequentially. Individual failures are reported back but never
// halt the rest of the batch.
func GenerateReports(c *fiber.Ctx, db *sql.DB) error {
	user := c.Locals("user").(*models.User)

	var req generateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if len(req.StudentIDs) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrNoSelection.Error(),
		})
	}

	termID, yearID, err := resolvePeriod(db, req.TermID, req.AcademicYearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	renderer := services.NewHTTPRenderer(config.AppConfig.Renderer)
	result := services.GenerateReports(c.Context(), renderer, req.StudentIDs,
		yearID, termID, user.ID, func(completed, total int) {
			log.Printf("Report generation progress: %d/%d", completed, total)
		})

	return c.JSON(result)
}
