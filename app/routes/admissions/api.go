package admissions

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/database"
	"school20/app/models"
)

var validate = validator.New()

func GetApplications(c *fiber.Ctx, db *sql.DB) error {
	status := c.Query("status")
	search := c.Query("search")

	query := `
		SELECT a.id, a.first_name, a.last_name, a.gender, a.date_of_birth,
			   a.applied_class_id, a.academic_year_id, a.guardian_name,
			   a.guardian_phone, a.guardian_email, a.status, a.notes,
			   a.student_id, a.created_at, a.updated_at,
			   c.name, c.level
		FROM admission_applications a
		JOIN classes c ON a.applied_class_id = c.id
		WHERE ($1 = '' OR a.status = $1)
		  AND ($2 = '' OR a.first_name ILIKE '%' || $2 || '%'
			   OR a.last_name ILIKE '%' || $2 || '%'
			   OR a.guardian_name ILIKE '%' || $2 || '%')
		ORDER BY a.created_at DESC
	`
	rows, err := db.Query(query, status, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch applications"})
	}
	defer rows.Close()

	var apps []*models.AdmissionApplication
	for rows.Next() {
		var a models.AdmissionApplication
		var dob sql.NullTime
		var studentID sql.NullString
		var className, classLevel string

		err := rows.Scan(
			&a.ID, &a.FirstName, &a.LastName, &a.Gender, &dob,
			&a.AppliedClassID, &a.AcademicYearID, &a.GuardianName,
			&a.GuardianPhone, &a.GuardianEmail, &a.Status, &a.Notes,
			&studentID, &a.CreatedAt, &a.UpdatedAt,
			&className, &classLevel,
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan application"})
		}

		if dob.Valid {
			a.DateOfBirth = &dob.Time
		}
		if studentID.Valid {
			a.StudentID = &studentID.String
		}
		a.AppliedClass = &models.Class{ID: a.AppliedClassID, Name: className, Level: classLevel}
		apps = append(apps, &a)
	}

	return c.JSON(apps)
}

type applicationRequest struct {
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	Gender         string `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    string `json:"date_of_birth" validate:"omitempty"`
	AppliedClassID string `json:"applied_class_id" validate:"required,uuid"`
	AcademicYearID string `json:"academic_year_id" validate:"omitempty,uuid"`
	GuardianName   string `json:"guardian_name" validate:"required"`
	GuardianPhone  string `json:"guardian_phone" validate:"required"`
	GuardianEmail  string `json:"guardian_email" validate:"omitempty,email"`
	Notes          string `json:"notes"`
}

func CreateApplication(c *fiber.Ctx, db *sql.DB) error {
	var req applicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.AcademicYearID == "" {
		year, err := database.GetCurrentAcademicYear(db)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No current academic year configured"})
		}
		req.AcademicYearID = year.ID
	}

	var dob *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		dob = &parsed
	}

	var a models.AdmissionApplication
	query := `
		INSERT INTO admission_applications
			(first_name, last_name, gender, date_of_birth, applied_class_id,
			 academic_year_id, guardian_name, guardian_phone, guardian_email, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, status, created_at, updated_at
	`
	err := db.QueryRow(query,
		req.FirstName, req.LastName, req.Gender, dob, req.AppliedClassID,
		req.AcademicYearID, req.GuardianName, req.GuardianPhone, req.GuardianEmail, req.Notes,
	).Scan(&a.ID, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"id":      a.ID,
		"status":  a.Status,
	})
}

var allowedTransitions = map[models.AdmissionStatus][]models.AdmissionStatus{
	models.AdmissionApplied:  {models.AdmissionReview, models.AdmissionRejected},
	models.AdmissionReview:   {models.AdmissionAdmitted, models.AdmissionRejected},
	models.AdmissionAdmitted: {models.AdmissionRejected},
}

func UpdateApplicationStatus(c *fiber.Ctx, db *sql.DB) error {
	appID := c.Params("id")

	var req struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	var current models.AdmissionStatus
	err := db.QueryRow(`SELECT status FROM admission_applications WHERE id = $1`, appID).Scan(&current)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch application"})
	}

	target := models.AdmissionStatus(req.Status)
	ok := false
	for _, allowed := range allowedTransitions[current] {
		if allowed == target {
			ok = true
			break
		}
	}
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot move application from " + string(current) + " to " + req.Status,
		})
	}

	_, err = db.Exec(`UPDATE admission_applications
					  SET status = $1, notes = CASE WHEN $2 <> '' THEN $2 ELSE notes END, updated_at = NOW()
					  WHERE id = $3`, target, req.Notes, appID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
	}

	return c.JSON(fiber.Map{"success": true, "status": target})
}

// EnrollApplication turns an admitted application into a student: assigns
// an admission number, creates the student and class enrollment, and
// copies the guardian contact. Runs in one transaction.
func EnrollApplication(c *fiber.Ctx, db *sql.DB) error {
	appID := c.Params("id")

	var a models.AdmissionApplication
	var dob sql.NullTime
	err := db.QueryRow(`
		SELECT id, first_name, last_name, gender, date_of_birth, applied_class_id,
			   academic_year_id, guardian_name, guardian_phone, guardian_email, status
		FROM admission_applications WHERE id = $1`, appID).Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Gender, &dob, &a.AppliedClassID,
		&a.AcademicYearID, &a.GuardianName, &a.GuardianPhone, &a.GuardianEmail, &a.Status,
	)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch application"})
	}

	if a.Status != models.AdmissionAdmitted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Only admitted applications can be enrolled"})
	}

	var yearName string
	if err := db.QueryRow(`SELECT name FROM academic_years WHERE id = $1`, a.AcademicYearID).Scan(&yearName); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve academic year"})
	}

	admissionNo, err := database.NextAdmissionNo(db, yearName)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to allocate admission number"})
	}

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	var studentID string
	err = tx.QueryRow(`
		INSERT INTO students (admission_no, first_name, last_name, gender, date_of_birth, class_id, academic_year_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		admissionNo, a.FirstName, a.LastName, a.Gender, dob, a.AppliedClassID, a.AcademicYearID,
	).Scan(&studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	_, err = tx.Exec(`
		INSERT INTO class_enrollments (student_id, class_id, academic_year_id)
		VALUES ($1, $2, $3)`, studentID, a.AppliedClassID, a.AcademicYearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student in class"})
	}

	_, err = tx.Exec(`
		INSERT INTO student_guardians (student_id, name, phone, email)
		VALUES ($1, $2, $3, $4)`, studentID, a.GuardianName, a.GuardianPhone, a.GuardianEmail)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save guardian"})
	}

	_, err = tx.Exec(`
		UPDATE admission_applications
		SET status = 'enrolled', student_id = $1, updated_at = NOW()
		WHERE id = $2`, studentID, appID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit enrollment"})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"student_id":   studentID,
		"admission_no": admissionNo,
	})
}
