package teachers

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"

	"school20/app/models"
	"school20/app/routes/auth"
)

var validate = validator.New()

// GetTeachers lists users holding the teacher role, with their subject
// assignments merged in one extra query.
func GetTeachers(c *fiber.Ctx, db *sql.DB) error {
	search := c.Query("search")

	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.phone, u.is_active, u.created_at, u.updated_at
		FROM users u
		JOIN user_roles ur ON ur.user_id = u.id
		JOIN roles r ON r.id = ur.role_id
		WHERE r.name = 'teacher' AND u.deleted_at IS NULL
		  AND ($1 = '' OR u.first_name ILIKE '%' || $1 || '%'
			   OR u.last_name ILIKE '%' || $1 || '%'
			   OR u.email ILIKE '%' || $1 || '%')
		ORDER BY u.first_name, u.last_name
	`
	rows, err := db.Query(query, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch teachers"})
	}
	defer rows.Close()

	var teachers []*models.User
	var ids []string
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan teacher"})
		}
		teachers = append(teachers, &u)
		ids = append(ids, u.ID)
	}

	if len(ids) > 0 {
		subjectRows, err := db.Query(`
			SELECT ts.teacher_id, s.id, s.name, s.code
			FROM teacher_subjects ts
			JOIN subjects s ON s.id = ts.subject_id
			WHERE ts.teacher_id = ANY($1)`, pq.Array(ids))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch subject assignments"})
		}
		defer subjectRows.Close()

		byTeacher := make(map[string][]*models.Subject)
		for subjectRows.Next() {
			var teacherID string
			var s models.Subject
			if err := subjectRows.Scan(&teacherID, &s.ID, &s.Name, &s.Code); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan assignment"})
			}
			byTeacher[teacherID] = append(byTeacher[teacherID], &s)
		}
		for _, t := range teachers {
			t.Subjects = byTeacher[t.ID]
		}
	}

	return c.JSON(teachers)
}

type teacherRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
}

func CreateTeacher(c *fiber.Ctx, db *sql.DB) error {
	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "password is required"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
	}

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`
		INSERT INTO users (email, password, first_name, last_name, phone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, req.Email, hashed, req.FirstName, req.LastName, req.Phone).Scan(&userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create teacher"})
	}

	_, err = tx.Exec(`
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = 'teacher'`, userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign teacher role"})
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": userID})
}

func UpdateTeacher(c *fiber.Ctx, db *sql.DB) error {
	teacherID := c.Params("id")

	var req teacherRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	res, err := db.Exec(`
		UPDATE users SET email = $1, first_name = $2, last_name = $3, phone = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`,
		req.Email, req.FirstName, req.LastName, req.Phone, teacherID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update teacher"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

// AssignSubjects replaces a teacher's subject assignments.
func AssignSubjects(c *fiber.Ctx, db *sql.DB) error {
	teacherID := c.Params("id")

	var req struct {
		SubjectIDs []string `json:"subject_ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM teacher_subjects WHERE teacher_id = $1`, teacherID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to clear assignments"})
	}
	for _, subjectID := range req.SubjectIDs {
		if _, err := tx.Exec(`INSERT INTO teacher_subjects (teacher_id, subject_id) VALUES ($1, $2)`, teacherID, subjectID); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to assign subject"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit"})
	}

	return c.JSON(fiber.Map{"success": true, "count": len(req.SubjectIDs)})
}
