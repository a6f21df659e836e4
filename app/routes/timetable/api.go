package timetable

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"school20/app/models"
)

var validate = validator.New()

func GetClassTimetable(c *fiber.Ctx, db *sql.DB) error {
	query := `
		SELECT te.id, te.class_id, te.subject_id, te.teacher_id, te.day,
			   te.start_time, te.end_time, te.room, te.created_at, te.updated_at,
			   c.name, sub.name,
			   COALESCE(u.first_name || ' ' || u.last_name, '')
		FROM timetable_entries te
		JOIN classes c ON c.id = te.class_id
		JOIN subjects sub ON sub.id = te.subject_id
		LEFT JOIN users u ON u.id = te.teacher_id
		WHERE te.class_id = $1 AND te.deleted_at IS NULL
		ORDER BY CASE te.day
			WHEN 'monday' THEN 1
			WHEN 'tuesday' THEN 2
			WHEN 'wednesday' THEN 3
			WHEN 'thursday' THEN 4
			WHEN 'friday' THEN 5
		END, te.start_time
	`
	rows, err := db.Query(query, c.Params("classId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch timetable"})
	}
	defer rows.Close()

	var entries []*models.TimetableEntryDetail
	for rows.Next() {
		var e models.TimetableEntryDetail
		err := rows.Scan(&e.ID, &e.ClassID, &e.SubjectID, &e.TeacherID, &e.Day,
			&e.StartTime, &e.EndTime, &e.Room, &e.CreatedAt, &e.UpdatedAt,
			&e.ClassName, &e.SubjectName, &e.TeacherName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan entry"})
		}
		entries = append(entries, &e)
	}

	return c.JSON(entries)
}

type entryRequest struct {
	ClassID   string  `json:"class_id" validate:"required,uuid"`
	SubjectID string  `json:"subject_id" validate:"required,uuid"`
	TeacherID *string `json:"teacher_id" validate:"omitempty,uuid"`
	Day       string  `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday"`
	StartTime string  `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string  `json:"end_time" validate:"required,datetime=15:04"`
	Room      string  `json:"room"`
}

func CreateEntry(c *fiber.Ctx, db *sql.DB) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	var id string
	query := `INSERT INTO timetable_entries (class_id, subject_id, teacher_id, day, start_time, end_time, room)
			  VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := db.QueryRow(query, req.ClassID, req.SubjectID, req.TeacherID,
		req.Day, req.StartTime, req.EndTime, req.Room).Scan(&id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create entry"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

func UpdateEntry(c *fiber.Ctx, db *sql.DB) error {
	var req entryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.EndTime <= req.StartTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_time must be after start_time"})
	}

	query := `UPDATE timetable_entries
			  SET subject_id = $1, teacher_id = $2, day = $3, start_time = $4,
				  end_time = $5, room = $6, updated_at = NOW()
			  WHERE id = $7 AND deleted_at IS NULL`
	res, err := db.Exec(query, req.SubjectID, req.TeacherID, req.Day,
		req.StartTime, req.EndTime, req.Room, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update entry"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func DeleteEntry(c *fiber.Ctx, db *sql.DB) error {
	res, err := db.Exec(`UPDATE timetable_entries SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`,
		c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete entry"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Entry not found"})
	}

	return c.JSON(fiber.Map{"success": true})
}
