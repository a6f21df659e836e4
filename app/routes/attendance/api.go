package attendance

import (
	"database/sql"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

var validate = validator.New()

// GetClassAttendance returns the class roster for a date with whatever
// marks exist. Unmarked students come back with an empty status.
func GetClassAttendance(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("classId")
	date := c.Query("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date must be YYYY-MM-DD"})
	}

	query := `
		SELECT s.id, s.admission_no, s.first_name, s.last_name,
			   COALESCE(ar.status, ''), COALESCE(ar.notes, '')
		FROM class_enrollments ce
		JOIN students s ON s.id = ce.student_id AND s.deleted_at IS NULL
		LEFT JOIN attendance_records ar ON ar.student_id = s.id AND ar.date = $2
		WHERE ce.class_id = $1 AND ce.is_active = true
		ORDER BY s.admission_no
	`
	rows, err := db.Query(query, classID, date)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance"})
	}
	defer rows.Close()

	type rosterRow struct {
		StudentID   string `json:"student_id"`
		AdmissionNo string `json:"admission_no"`
		StudentName string `json:"student_name"`
		Status      string `json:"status"`
		Notes       string `json:"notes,omitempty"`
	}

	var roster []*rosterRow
	for rows.Next() {
		var r rosterRow
		var first, last string
		if err := rows.Scan(&r.StudentID, &r.AdmissionNo, &first, &last, &r.Status, &r.Notes); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan roster"})
		}
		r.StudentName = first + " " + last
		roster = append(roster, &r)
	}

	return c.JSON(fiber.Map{"date": date, "class_id": classID, "students": roster})
}

type markRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Entries []struct {
		StudentID string `json:"student_id" validate:"required,uuid"`
		Status    string `json:"status" validate:"required,oneof=present absent late excused"`
		Notes     string `json:"notes"`
	} `json:"entries" validate:"required,min=1,dive"`
}

// MarkAttendance upserts the day's marks for a class. Re-marking a
// student on the same date overwrites the earlier status.
func MarkAttendance(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("classId")

	var req markRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user := c.Locals("user").(*models.User)

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}
	defer tx.Rollback()

	query := `
		INSERT INTO attendance_records (student_id, class_id, date, status, notes, marked_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (student_id, date)
		DO UPDATE SET status = EXCLUDED.status, notes = EXCLUDED.notes,
					  marked_by = EXCLUDED.marked_by, updated_at = NOW()
	`
	for _, e := range req.Entries {
		if _, err := tx.Exec(query, e.StudentID, classID, req.Date, e.Status, e.Notes, user.ID); err != nil {
			log.Printf("Attendance upsert failed for student %s: %v", e.StudentID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to mark attendance"})
	}

	return c.JSON(fiber.Map{"success": true, "marked": len(req.Entries)})
}

// GetClassSummary aggregates attendance per student over a date range.
func GetClassSummary(c *fiber.Ctx, db *sql.DB) error {
	classID := c.Params("classId")
	from := c.Query("from")
	to := c.Query("to", time.Now().Format("2006-01-02"))
	if from == "" {
		from = time.Now().AddDate(0, -1, 0).Format("2006-01-02")
	}

	query := `
		SELECT s.id, s.first_name, s.last_name,
			   COUNT(*) FILTER (WHERE ar.status = 'present'),
			   COUNT(*) FILTER (WHERE ar.status = 'absent'),
			   COUNT(*) FILTER (WHERE ar.status = 'late'),
			   COUNT(*) FILTER (WHERE ar.status = 'excused')
		FROM class_enrollments ce
		JOIN students s ON s.id = ce.student_id AND s.deleted_at IS NULL
		LEFT JOIN attendance_records ar
			ON ar.student_id = s.id AND ar.date BETWEEN $2 AND $3
		WHERE ce.class_id = $1 AND ce.is_active = true
		GROUP BY s.id, s.first_name, s.last_name
		ORDER BY s.first_name, s.last_name
	`
	rows, err := db.Query(query, classID, from, to)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch summary"})
	}
	defer rows.Close()

	var summaries []*models.AttendanceSummary
	for rows.Next() {
		var s models.AttendanceSummary
		var first, last string
		err := rows.Scan(&s.StudentID, &first, &last,
			&s.PresentCount, &s.AbsentCount, &s.LateCount, &s.ExcusedCount)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan summary"})
		}
		s.StudentName = first + " " + last
		total := s.PresentCount + s.AbsentCount + s.LateCount + s.ExcusedCount
		if total > 0 {
			s.Rate = float64(s.PresentCount+s.LateCount) / float64(total) * 100
		}
		summaries = append(summaries, &s)
	}

	return c.JSON(fiber.Map{"from": from, "to": to, "students": summaries})
}
