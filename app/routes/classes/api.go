package classes

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"school20/app/database"
	"school20/app/models"
)

func GetClasses(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT c.id, c.name, c.level, c.class_teacher_id, c.capacity, c.is_active,
			   c.created_at, c.updated_at,
			   COUNT(s.id) AS student_count
		FROM classes c
		LEFT JOIN students s ON s.class_id = c.id AND s.deleted_at IS NULL AND s.is_active = true
		WHERE c.deleted_at IS NULL
		GROUP BY c.id
		ORDER BY c.level, c.name
	`
	rows, err := db.Query(query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch classes"})
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		var cl models.Class
		var teacherID sql.NullString
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Level, &teacherID, &cl.Capacity, &cl.IsActive,
			&cl.CreatedAt, &cl.UpdatedAt, &cl.StudentCount); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan class"})
		}
		if teacherID.Valid {
			cl.ClassTeacherID = &teacherID.String
		}
		classes = append(classes, &cl)
	}

	// Attach class-teacher names with one batched lookup.
	teacherIDs := database.CollectIDs(classes, func(cl *models.Class) string {
		if cl.ClassTeacherID == nil {
			return ""
		}
		return *cl.ClassTeacherID
	})
	teachers, err := database.BatchLookup(db,
		`SELECT id, first_name || ' ' || last_name FROM users WHERE id = ANY($1)`,
		teacherIDs,
		func(rows *sql.Rows) (string, string, error) {
			var id, name string
			err := rows.Scan(&id, &name)
			return id, name, err
		})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch class teachers"})
	}
	for _, cl := range classes {
		if cl.ClassTeacherID != nil {
			if name, ok := teachers[*cl.ClassTeacherID]; ok {
				cl.ClassTeacher = &models.User{ID: *cl.ClassTeacherID, FirstName: name}
			}
		}
	}

	return c.JSON(classes)
}

func CreateClass(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name           string  `json:"name"`
		Level          string  `json:"level"`
		ClassTeacherID *string `json:"class_teacher_id"`
		Capacity       int     `json:"capacity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" || req.Level == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and level are required"})
	}

	var id string
	query := `INSERT INTO classes (name, level, class_teacher_id, capacity)
			  VALUES ($1, $2, $3, $4) RETURNING id`
	if err := db.QueryRow(query, req.Name, req.Level, req.ClassTeacherID, req.Capacity).Scan(&id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func UpdateClass(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")

	var req struct {
		Name           string  `json:"name"`
		Level          string  `json:"level"`
		ClassTeacherID *string `json:"class_teacher_id"`
		Capacity       int     `json:"capacity"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	res, err := db.Exec(`
		UPDATE classes SET name = $1, level = $2, class_teacher_id = $3, capacity = $4, updated_at = NOW()
		WHERE id = $5 AND deleted_at IS NULL`,
		req.Name, req.Level, req.ClassTeacherID, req.Capacity, classID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update class"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func GetClassSubjects(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")
	yearID := c.Query("academic_year_id")

	query := `
		SELECT cs.id, cs.class_id, cs.subject_id, cs.academic_year_id, cs.teacher_id, cs.created_at,
			   s.name, s.code,
			   COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM class_subjects cs
		JOIN subjects s ON s.id = cs.subject_id
		LEFT JOIN users u ON u.id = cs.teacher_id
		WHERE cs.class_id = $1 AND ($2 = '' OR cs.academic_year_id::text = $2)
		ORDER BY s.name
	`
	rows, err := db.Query(query, classID, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch class subjects"})
	}
	defer rows.Close()

	var links []*models.ClassSubject
	for rows.Next() {
		var cs models.ClassSubject
		var teacherID sql.NullString
		var subjectName, subjectCode, teacherName string
		if err := rows.Scan(&cs.ID, &cs.ClassID, &cs.SubjectID, &cs.AcademicYearID, &teacherID, &cs.CreatedAt,
			&subjectName, &subjectCode, &teacherName); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan class subject"})
		}
		if teacherID.Valid {
			cs.TeacherID = &teacherID.String
			cs.Teacher = &models.User{ID: teacherID.String, FirstName: teacherName}
		}
		cs.Subject = &models.Subject{ID: cs.SubjectID, Name: subjectName, Code: subjectCode}
		links = append(links, &cs)
	}

	return c.JSON(links)
}

func AddClassSubject(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")

	var req struct {
		SubjectID      string  `json:"subject_id"`
		AcademicYearID string  `json:"academic_year_id"`
		TeacherID      *string `json:"teacher_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.SubjectID == "" || req.AcademicYearID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "subject_id and academic_year_id are required"})
	}

	var id string
	query := `INSERT INTO class_subjects (class_id, subject_id, academic_year_id, teacher_id)
			  VALUES ($1, $2, $3, $4)
			  ON CONFLICT (class_id, subject_id, academic_year_id)
			  DO UPDATE SET teacher_id = EXCLUDED.teacher_id
			  RETURNING id`
	if err := db.QueryRow(query, classID, req.SubjectID, req.AcademicYearID, req.TeacherID).Scan(&id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to link subject"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

// EnrollStudent places a student in this class for an academic year.
func EnrollStudent(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("id")

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
	query := `INSERT INTO class_enrollments (student_id, class_id, academic_year_id)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (student_id, class_id, academic_year_id)
			  DO UPDATE SET is_active = true
			  RETURNING id`
	if err := db.QueryRow(query, req.StudentID, classID, req.AcademicYearID).Scan(&id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to enroll student"})
	}

	// Keep the denormalized pointer on the student row in step.
	if _, err := db.Exec(`UPDATE students SET class_id = $1, updated_at = NOW() WHERE id = $2`, classID, req.StudentID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update student class"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}
