package academic

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"school20/app/database"
	"school20/app/models"
)

func GetAcademicYears(c *fiber.Ctx, db *sql.DB) error {
	years, err := listYears(db)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch academic years",
		})
	}
	return c.JSON(years)
}

func CreateAcademicYear(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		Name      string `json:"name"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must follow start_date"})
	}

	var year models.AcademicYear
	query := `INSERT INTO academic_years (name, start_date, end_date)
			  VALUES ($1, $2, $3)
			  RETURNING id, name, start_date, end_date, is_current, created_at, updated_at`
	err = db.QueryRow(query, req.Name, start, end).Scan(
		&year.ID, &year.Name, &year.StartDate, &year.EndDate,
		&year.IsCurrent, &year.CreatedAt, &year.UpdatedAt,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create academic year"})
	}

	return c.Status(fiber.StatusCreated).JSON(year)
}

// SetCurrentYear flips the current flag to exactly one year.
func SetCurrentYear(c *fiber.Ctx, db *sql.DB) error {
	yearID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`UPDATE academic_years SET is_current = false WHERE is_current = true`); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic years"})
	}
	res, err := tx.Exec(`UPDATE academic_years SET is_current = true, updated_at = NOW() WHERE id = $1`, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic year"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academic year not found"})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func GetTerms(c *fiber.Ctx, db *sql.DB) error {
	yearID := c.Query("academic_year_id")

	query := `SELECT id, academic_year_id, name, start_date, end_date, is_current, created_at
			  FROM terms WHERE ($1 = '' OR academic_year_id::text = $1)
			  ORDER BY start_date`
	rows, err := db.Query(query, yearID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch terms"})
	}
	defer rows.Close()

	var terms []*models.Term
	for rows.Next() {
		var t models.Term
		if err := rows.Scan(&t.ID, &t.AcademicYearID, &t.Name, &t.StartDate, &t.EndDate, &t.IsCurrent, &t.CreatedAt); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to scan term"})
		}
		terms = append(terms, &t)
	}

	return c.JSON(terms)
}

func CreateTerm(c *fiber.Ctx, db *sql.DB) error {
	var req struct {
		AcademicYearID string `json:"academic_year_id"`
		Name           string `json:"name"`
		StartDate      string `json:"start_date"`
		EndDate        string `json:"end_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if req.AcademicYearID == "" || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "academic_year_id and name are required"})
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil || !end.After(start) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date must follow start_date"})
	}

	var term models.Term
	query := `INSERT INTO terms (academic_year_id, name, start_date, end_date)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, academic_year_id, name, start_date, end_date, is_current, created_at`
	err = db.QueryRow(query, req.AcademicYearID, req.Name, start, end).Scan(
		&term.ID, &term.AcademicYearID, &term.Name, &term.StartDate, &term.EndDate, &term.IsCurrent, &term.CreatedAt,
	)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create term"})
	}

	return c.Status(fiber.StatusCreated).JSON(term)
}

// SetCurrentTerm marks one term current within its year.
func SetCurrentTerm(c *fiber.Ctx, db *sql.DB) error {
	termID := c.Params("id")

	tx, err := db.Begin()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start transaction"})
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE terms SET is_current = false
		WHERE academic_year_id = (SELECT academic_year_id FROM terms WHERE id = $1)`, termID); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update terms"})
	}
	res, err := tx.Exec(`UPDATE terms SET is_current = true WHERE id = $1`, termID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update term"})
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Term not found"})
	}
	if err := tx.Commit(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit"})
	}

	return c.JSON(fiber.Map{"success": true})
}

func GetCurrentTermAPI(c *fiber.Ctx, db *sql.DB) error {
	term, err := database.GetCurrentTerm(db)
	if err == sql.ErrNoRows {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No current term configured"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch current term"})
	}
	return c.JSON(term)
}

func listYears(db *sql.DB) ([]*models.AcademicYear, error) {
	query := `SELECT id, name, start_date, end_date, is_current, created_at, updated_at
			  FROM academic_years ORDER BY start_date DESC`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch academic years: %w", err)
	}
	defer rows.Close()

	var years []*models.AcademicYear
	for rows.Next() {
		var y models.AcademicYear
		if err := rows.Scan(&y.ID, &y.Name, &y.StartDate, &y.EndDate, &y.IsCurrent, &y.CreatedAt, &y.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan academic year: %w", err)
		}
		years = append(years, &y)
	}
	return years, rows.Err()
}
