package services

import (
	"database/sql"
	"fmt"
)

// AccrueOverdueFines flips active loans past their due date to overdue and
// brings each overdue loan's fine up to date at the given daily rate. Runs
// as an idempotent sweep: re-running on the same day changes nothing.
func AccrueOverdueFines(db *sql.DB, ratePerDay float64) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`UPDATE book_loans
					  SET status = 'overdue', updated_at = NOW()
					  WHERE status = 'active' AND due_date < CURRENT_DATE`)
	if err != nil {
		return 0, fmt.Errorf("failed to flag overdue loans: %w", err)
	}

	// One fine per loan; the upsert grows it as more days pass.
	res, err := tx.Exec(`
		INSERT INTO library_fines (loan_id, student_id, amount, days_late)
		SELECT l.id, l.student_id,
			   (CURRENT_DATE - l.due_date) * $1,
			   CURRENT_DATE - l.due_date
		FROM book_loans l
		WHERE l.status = 'overdue'
		ON CONFLICT (loan_id) DO UPDATE
		SET amount = EXCLUDED.amount,
			days_late = EXCLUDED.days_late,
			updated_at = NOW()
		WHERE library_fines.status = 'outstanding'
		  AND library_fines.days_late < EXCLUDED.days_late
	`, ratePerDay)
	if err != nil {
		return 0, fmt.Errorf("failed to accrue fines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit fine accrual: %w", err)
	}

	touched, _ := res.RowsAffected()
	return int(touched), nil
}
