package database

import (
	"database/sql"
	"time"

	"school20/app/models"
)

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, phone, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, phone, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true AND deleted_at IS NULL`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Phone, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `
		SELECT r.id, r.name
		FROM roles r
		JOIN user_roles ur ON r.id = ur.role_id
		WHERE ur.user_id = $1
	`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, &role)
	}
	return roles, rows.Err()
}

func CreateSession(db *sql.DB, sessionID, userID string, expiresAt time.Time) error {
	query := `INSERT INTO sessions (id, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`
	_, err := db.Exec(query, sessionID, userID, expiresAt, time.Now())
	return err
}

func GetSessionByID(db *sql.DB, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	query := `SELECT id, user_id, expires_at, created_at FROM sessions WHERE id = $1 AND expires_at > NOW()`

	err := db.QueryRow(query, sessionID).Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
	)

	if err != nil {
		return nil, err
	}
	return session, nil
}

func DeleteSession(db *sql.DB, sessionID string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := db.Exec(query, sessionID)
	return err
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

// GetCurrentAcademicYear returns the year flagged current, or
// sql.ErrNoRows when none is configured.
func GetCurrentAcademicYear(db *sql.DB) (*models.AcademicYear, error) {
	year := &models.AcademicYear{}
	query := `SELECT id, name, start_date, end_date, is_current, created_at, updated_at
			  FROM academic_years WHERE is_current = true LIMIT 1`

	err := db.QueryRow(query).Scan(
		&year.ID, &year.Name, &year.StartDate, &year.EndDate,
		&year.IsCurrent, &year.CreatedAt, &year.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return year, nil
}

// GetCurrentTerm returns the term flagged current within the current year.
func GetCurrentTerm(db *sql.DB) (*models.Term, error) {
	term := &models.Term{}
	query := `SELECT t.id, t.academic_year_id, t.name, t.start_date, t.end_date, t.is_current, t.created_at
			  FROM terms t
			  JOIN academic_years y ON t.academic_year_id = y.id
			  WHERE t.is_current = true AND y.is_current = true
			  LIMIT 1`

	err := db.QueryRow(query).Scan(
		&term.ID, &term.AcademicYearID, &term.Name,
		&term.StartDate, &term.EndDate, &term.IsCurrent, &term.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return term, nil
}
