package grading

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/database"
	"school20/app/models"
)

var validate = validator.New()

// GetMarksEntry loads everything the marks entry screen needs: the
// eligible students (enrolled in both the class and the subject) in
// traversal order, each with any existing submission, plus the grading
// scale. An empty student list is a normal response.
func GetMarksEntry(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Query("class_id")
	subjectID := c.Query("subject_id")
	termID := c.Query("term_id")
	yearID := c.Query("academic_year_id")

	if classID == "" || subjectID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id and subject_id are required",
		})
	}

	termID, yearID, err := resolvePeriod(db, termID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	students, err := GetEligibleStudents(db, classID, subjectID, termID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch eligible students",
		})
	}

	bands, err := GetGradingBands(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grading bands",
		})
	}

	return c.JSON(fiber.Map{
		"students":      students,
		"grading_bands": bands,
		"term_id":       termID,
		"academic_year_id": yearID,
	})
}

type submissionRequest struct {
	StudentID      string   `json:"student_id" validate:"required,uuid"`
	SubjectID      string   `json:"subject_id" validate:"required,uuid"`
	TermID         string   `json:"term_id" validate:"required,uuid"`
	AcademicYearID string   `json:"academic_year_id" validate:"required,uuid"`
	ClassID        string   `json:"class_id" validate:"omitempty,uuid"`
	A1             *float64 `json:"a1" validate:"omitempty,gte=0,lte=3"`
	A2             *float64 `json:"a2" validate:"omitempty,gte=0,lte=3"`
	A3             *float64 `json:"a3" validate:"omitempty,gte=0,lte=3"`
	ExamScore      *float64 `json:"exam_score" validate:"omitempty,gte=0,lte=100"`
	Identifier     int      `json:"identifier" validate:"omitempty,min=1,max=3"`
	Remark         string   `json:"remark"`
}

// SaveDraft upserts a submission without moving it through the pipeline.
// Editing a rejected record returns it to draft and clears the rejection
// reason; an approved record can no longer be edited by the teacher.
func SaveDraft(c *fiber.Ctx, db *sql.DB) error {
	return saveSubmission(c, db, false)
}

// SubmitForApproval upserts and moves the record to pending. Incomplete
// marks (no computable total) are refused before any write. On success
// the response carries the next student in traversal order so the screen
// can auto-advance.
func SubmitForApproval(c *fiber.Ctx, db *sql.DB) error {
	return saveSubmission(c, db, true)
}

func saveSubmission(c *fiber.Ctx, db *sql.DB, submit bool) error {
	user := c.Locals("user").(*models.User)

	var req submissionRequest
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

	existing, err := GetSubmissionByKey(db, req.StudentID, req.SubjectID, req.AcademicYearID, req.TermID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load submission",
		})
	}

	bands, err := GetGradingBands(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch grading bands",
		})
	}

	derived := ComputeDerived(req.A1, req.A2, req.A3, req.ExamScore, bands)

	switch err := ValidateSave(submit, derived, existing); err {
	case nil:
	case ErrApprovedLocked:
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	m := &models.MarksSubmission{
		StudentID:      req.StudentID,
		SubjectID:      req.SubjectID,
		AcademicYearID: req.AcademicYearID,
		TermID:         req.TermID,
		A1:             req.A1,
		A2:             req.A2,
		A3:             req.A3,
		ExamScore:      req.ExamScore,
		AvgAssessment:  derived.AvgAssessment,
		CA20:           derived.CA20,
		Exam80:         derived.Exam80,
		Total:          derived.Total,
		Identifier:     req.Identifier,
		Remark:         req.Remark,
	}
	if m.Identifier == 0 {
		m.Identifier = 1
	}

	// A missing total never blanks a grade that is already on the record.
	if derived.GradeResolved {
		m.Grade = derived.Grade
		m.GradePoints = derived.GradePoints
		if m.Remark == "" {
			m.Remark = derived.DefaultRemark
		}
	} else if existing != nil {
		m.Grade = existing.Grade
		m.GradePoints = existing.GradePoints
	}

	if submit {
		now := time.Now()
		m.Status = models.SubmissionPending
		m.SubmittedBy = &user.ID
		m.SubmittedAt = &now
	} else {
		// Any edit lands the record back in draft; a rejection reason
		// does not survive the edit.
		m.Status = models.SubmissionDraft
		m.RejectionReason = nil
		if existing != nil {
			m.SubmittedBy = existing.SubmittedBy
			m.SubmittedAt = existing.SubmittedAt
		}
	}

	if err := UpsertSubmission(db, m); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save submission",
		})
	}

	resp := fiber.Map{
		"success":    true,
		"submission": m,
	}

	if submit && req.ClassID != "" {
		if next, err := nextInTraversal(db, req.ClassID, req.SubjectID, req.TermID, req.AcademicYearID, req.StudentID); err == nil {
			resp["next_student_id"] = next
		}
	}

	return c.JSON(resp)
}

// Navigate resolves the neighbor of a student in the marks-entry
// traversal. The order is by admission number and wraps at both ends.
func Navigate(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Query("class_id")
	subjectID := c.Query("subject_id")
	termID := c.Query("term_id")
	yearID := c.Query("academic_year_id")
	current := c.Query("current")
	direction := c.Query("direction", "next")

	if classID == "" || subjectID == "" || current == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "class_id, subject_id and current are required",
		})
	}

	termID, yearID, err := resolvePeriod(db, termID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to resolve current term",
		})
	}

	students, err := GetEligibleStudents(db, classID, subjectID, termID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch eligible students",
		})
	}

	ordered := make([]string, len(students))
	for i, es := range students {
		ordered[i] = es.Student.ID
	}

	var target string
	if direction == "prev" {
		target = PrevStudent(ordered, current)
	} else {
		target = NextStudent(ordered, current)
	}

	return c.JSON(fiber.Map{"student_id": target})
}

func nextInTraversal(db *sql.DB, classID, subjectID, termID, yearID, current string) (string, error) {
	students, err := GetEligibleStudents(db, classID, subjectID, termID, yearID)
	if err != nil {
		return "", err
	}
	ordered := make([]string, len(students))
	for i, es := range students {
		ordered[i] = es.Student.ID
	}
	return NextStudent(ordered, current), nil
}

// resolvePeriod fills missing term/year ids from the configured current
// term, keeping every operation explicit about the period it acts on.
func resolvePeriod(db *sql.DB, termID, yearID string) (string, string, error) {
	if termID != "" && yearID != "" {
		return termID, yearID, nil
	}
	term, err := database.GetCurrentTerm(db)
	if err != nil {
		return "", "", err
	}
	if termID == "" {
		termID = term.ID
	}
	if yearID == "" {
		yearID = term.AcademicYearID
	}
	return termID, yearID, nil
}
