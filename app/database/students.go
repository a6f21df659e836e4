package database

import (
	"database/sql"
	"fmt"
	"strings"

	"school20/app/models"
)

// StudentFilters represents filtering options for student lists.
type StudentFilters struct {
	Search    string
	ClassID   string
	Gender    string
	Status    string // "active", "inactive", or "" for all
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

var studentSortColumns = map[string]string{
	"admission_no": "s.admission_no",
	"first_name":   "s.first_name",
	"last_name":    "s.last_name",
	"created_at":   "s.created_at",
}

// GetStudents returns students matching the filters plus the unfiltered
// match count for pagination.
func GetStudents(db *sql.DB, filters StudentFilters) ([]*models.Student, int, error) {
	var conditions []string
	var args []interface{}

	conditions = append(conditions, "s.deleted_at IS NULL")

	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(s.first_name ILIKE $%d OR s.last_name ILIKE $%d OR s.admission_no ILIKE $%d)", n, n, n))
	}
	if filters.ClassID != "" {
		args = append(args, filters.ClassID)
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)))
	}
	if filters.Gender != "" {
		args = append(args, filters.Gender)
		conditions = append(conditions, fmt.Sprintf("s.gender = $%d", len(args)))
	}
	switch filters.Status {
	case "active":
		conditions = append(conditions, "s.is_active = true")
	case "inactive":
		conditions = append(conditions, "s.is_active = false")
	}

	where := "WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM students s " + where
	if err := db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	orderCol, ok := studentSortColumns[filters.SortBy]
	if !ok {
		orderCol = "s.admission_no"
	}
	orderDir := "ASC"
	if strings.EqualFold(filters.SortOrder, "desc") {
		orderDir = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT s.id, s.admission_no, s.first_name, s.last_name, s.gender,
			   s.date_of_birth, s.class_id, s.academic_year_id, s.is_active,
			   s.created_at, s.updated_at,
			   c.id, c.name, c.level
		FROM students s
		LEFT JOIN classes c ON s.class_id = c.id
		%s
		ORDER BY %s %s`, where, orderCol, orderDir)

	if filters.Limit > 0 {
		args = append(args, filters.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, filters.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var s models.Student
		var dob sql.NullTime
		var classID, yearID, cID, cName, cLevel sql.NullString

		err := rows.Scan(
			&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.Gender,
			&dob, &classID, &yearID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&cID, &cName, &cLevel,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student: %w", err)
		}

		if dob.Valid {
			s.DateOfBirth = &dob.Time
		}
		if classID.Valid {
			s.ClassID = &classID.String
		}
		if yearID.Valid {
			s.AcademicYearID = &yearID.String
		}
		if cID.Valid {
			s.Class = &models.Class{ID: cID.String, Name: cName.String, Level: cLevel.String}
		}
		students = append(students, &s)
	}
	return students, total, rows.Err()
}

func GetStudentByID(db *sql.DB, studentID string) (*models.Student, error) {
	var s models.Student
	var dob sql.NullTime
	var classID, yearID sql.NullString

	query := `SELECT id, admission_no, first_name, last_name, gender, date_of_birth,
				 class_id, academic_year_id, is_active, created_at, updated_at
			  FROM students WHERE id = $1 AND deleted_at IS NULL`

	err := db.QueryRow(query, studentID).Scan(
		&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.Gender,
		&dob, &classID, &yearID, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dob.Valid {
		s.DateOfBirth = &dob.Time
	}
	if classID.Valid {
		s.ClassID = &classID.String
	}
	if yearID.Valid {
		s.AcademicYearID = &yearID.String
	}
	return &s, nil
}

// NextAdmissionNo allocates the next admission number for a year, e.g.
// "S20-2026-0042". Numbers follow insertion order, which also fixes the
// marks-entry traversal order.
func NextAdmissionNo(db *sql.DB, yearName string) (string, error) {
	var seq int
	query := `SELECT COUNT(*) + 1 FROM students WHERE admission_no LIKE $1`
	if err := db.QueryRow(query, "S20-"+yearName+"-%").Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to allocate admission number: %w", err)
	}
	return fmt.Sprintf("S20-%s-%04d", yearName, seq), nil
}
