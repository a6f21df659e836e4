package subjects

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

func GetSubjects(c *fiber.Ctx, db *sql.DB) error {
	query := `SELECT id, name, code, is_active, created_at, updated_at
			  FROM subjects WHERE deleted_at IS NULL ORDER BY name`
	rows, err := db.Query(query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subjects"})
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan subject"})
		}
		subjects = append(subjects, &s)
	}

	return c.JSON(subjects)
}

func CreateSubject(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and code are required"})
	}

	var id string
	if err := db.QueryRow(`INSERT INTO subjects (name, code) VALUES ($1, $2) RETURNING id`,
		req.Name, req.Code).Scan(&id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func UpdateSubject(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name     string `json:"name"`
		Code     string `json:"code"`
		IsActive *bool  `json:"is_active"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	res, err := db.Exec(`UPDATE subjects SET name = $1, code = $2, is_active = $3, updated_at = NOW()
						 WHERE id = $4 AND deleted_at IS NULL`,
		req.Name, req.Code, active, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update subject"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Subject not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// EnrollStudent registers a student for this subject. Marks entry only
// lists students enrolled in both the class and the subject.
func EnrollStudent(c *fiber.Ctx, db *sql.DB) error {
	subjectID := c.Params("id")

	var req struct {
		StudentID      string `json:"student_id"`
		AcademicYearID string `json:"academic_year_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.StudentID == "" || req.AcademicYearID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "student_id and academic_year_id are required"})
	}

	var id string
	query := `INSERT INTO subject_enrollments (student_id, subject_id, academic_year_id)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (student_id, subject_id, academic_year_id)
			  DO UPDATE SET is_active = true
			  RETURNING id`
	if err := db.QueryRow(query, req.StudentID, subjectID, req.AcademicYearID).Scan(&id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func GetEnrollments(c *fiber.Ctx, db *sql.DB) error {
	subjectID := c.Params("id")
	yearID := c.Query("academic_year_id")

	query := `
		SELECT se.id, se.student_id, se.academic_year_id, se.is_active, se.created_at,
			   s.admission_no, s.first_name, s.last_name
		FROM subject_enrollments se
		JOIN students s ON s.id = se.student_id
		WHERE se.subject_id = $1 AND ($2 = '' OR se.academic_year_id::text = $2)
		  AND se.is_active = true AND s.deleted_at IS NULL
		ORDER BY s.admission_no
	`
	rows, err := db.Query(query, subjectID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch enrollments"})
	}
	defer rows.Close()

	type enrollmentRow struct {
		models.SubjectEnrollment
		AdmissionNo string `json:"admission_no"`
		StudentName string `json:"student_name"`
	}

	var out []*enrollmentRow
	for rows.Next() {
		var e enrollmentRow
		var first, last string
		if err := rows.Scan(&e.ID, &e.StudentID, &e.AcademicYearID, &e.IsActive, &e.CreatedAt,
			&e.AdmissionNo, &first, &last); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan enrollment"})
		}
		e.SubjectID = subjectID
		e.StudentName = first + " " + last
		out = append(out, &e)
	}

	return c.JSON(out)
}
