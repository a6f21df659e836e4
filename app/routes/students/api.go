package students

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"school20/app/database"
	"school20/app/models"
)

func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	filters := database.StudentFilters{
		Search:    c.Query("search"),
		ClassID:   c.Query("class_id"),
		Gender:    c.Query("gender"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Limit:     limit,
		Offset:    offset,
	}

	students, total, err := database.GetStudents(db, filters)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch students",
		})
	}

	return c.JSON(fiber.Map{
		"students": students,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func GetStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	student, err := database.GetStudentByID(db, c.Params("id"))
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch student"})
	}
	return c.JSON(student)
}

func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	var req struct {
		FirstName   string  `json:"first_name"`
		LastName    string  `json:"last_name"`
		Gender      string  `json:"gender"`
		DateOfBirth *string `json:"date_of_birth"`
		ClassID     *string `json:"class_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.FirstName == "" || req.LastName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "first_name and last_name are required"})
	}

	var dob *time.Time
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		parsed, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_of_birth must be YYYY-MM-DD"})
		}
		dob = &parsed
	}

	query := `UPDATE students
			  SET first_name = $1, last_name = $2, gender = $3, date_of_birth = $4,
				  class_id = $5, updated_at = NOW()
			  WHERE id = $6 AND deleted_at IS NULL`
	res, err := db.Exec(query, req.FirstName, req.LastName, req.Gender, dob, req.ClassID, studentID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// DeactivateStudentAPI soft-deletes; history (marks, fees, loans) stays
// attached to the row.
func DeactivateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `UPDATE students SET is_active = false, deleted_at = NOW(), updated_at = NOW()
			  WHERE id = $1 AND deleted_at IS NULL`
	res, err := db.Exec(query, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate student"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
	}
	return c.JSON(fiber.Map{"success": true})
}

func GetGuardiansAPI(c *fiber.Ctx, db *sql.DB) error {
	query := `SELECT id, student_id, name, phone, email, relationship, created_at
			  FROM student_guardians WHERE student_id = $1 ORDER BY created_at`
	rows, err := db.Query(query, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch guardians"})
	}
	defer rows.Close()

	var guardians []*models.StudentGuardian
	for rows.Next() {
		var g models.StudentGuardian
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Name, &g.Phone, &g.Email, &g.Relationship, &g.CreatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan guardian"})
		}
		guardians = append(guardians, &g)
	}

	return c.JSON(guardians)
}

func AddGuardianAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	var req struct {
		Name         string `json:"name"`
		Phone        string `json:"phone"`
		Email        string `json:"email"`
		Relationship string `json:"relationship"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and phone are required"})
	}
	if req.Relationship == "" {
		req.Relationship = string(models.Guardian)
	}

	var g models.StudentGuardian
	query := `INSERT INTO student_guardians (student_id, name, phone, email, relationship)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, student_id, name, phone, email, relationship, created_at`
	err := db.QueryRow(query, studentID, req.Name, req.Phone, req.Email, req.Relationship).Scan(
		&g.ID, &g.StudentID, &g.Name, &g.Phone, &g.Email, &g.Relationship, &g.CreatedAt,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to add guardian"})
	}

	return c.Status(fiber.StatusCreated).JSON(g)
}
