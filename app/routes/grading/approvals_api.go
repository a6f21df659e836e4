package grading

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

// GetApprovalGroups lists submission batches for review, grouped by
// (subject, submitting teacher). Teachers submit whole rosters at once,
// so the head teacher reviews per batch rather than per student row.
func GetApprovalGroups(c *fiber.Ctx, db *sql.DB) error {
	status := models.SubmissionStatus(c.Query("status", string(models.SubmissionPending)))
	search := c.Query("search")

	termID, yearID, err := resolvePeriod(db, c.Query("term_id"), c.Query("academic_year_id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	groups, err := ListSubmissionGroups(db, yearID, termID, status, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch submission groups",
		})
	}

	return c.JSON(fiber.Map{"groups": groups})
}

type groupActionRequest struct {
	SubjectID      string `json:"subject_id" validate:"required,uuid"`
	SubmittedBy    string `json:"submitted_by" validate:"required,uuid"`
	TermID         string `json:"term_id" validate:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" validate:"required,uuid"`
	Reason         string `json:"reason"`
}

// ApproveGroupAPI approves every pending row in the batch. Rows already
// approved or rejected are not touched.
func ApproveGroupAPI(c *fiber.Ctx, db *sql.DB) error {
	user := c.Locals("user").(*models.User)

	var req groupActionRequest
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

	affected, err := ApproveGroup(db, req.AcademicYearID, req.TermID, req.SubjectID, req.SubmittedBy, user.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to approve submissions",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"approved": affected,
	})
}

// RejectGroupAPI rejects every pending row in the batch with a reason.
// An empty reason is refused before any database call.
func RejectGroupAPI(c *fiber.Ctx, db *sql.DB) error {
	var req groupActionRequest
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
	if strings.TrimSpace(req.Reason) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrEmptyReason.Error(),
		})
	}

	affected, err := RejectGroup(db, req.AcademicYearID, req.TermID, req.SubjectID, req.SubmittedBy, req.Reason)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reject submissions",
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"rejected": affected,
	})
}
