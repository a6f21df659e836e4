package library

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"school20/app/models"
)

var (
	ErrNoCopies     = errors.New("no copies available")
	ErrLoanNotOpen  = errors.New("loan is not open")
	ErrFineSettled  = errors.New("fine is already settled")
	ErrBookNotFound = errors.New("book not found")
)

// BorrowBook checks out one copy. The copy decrement and the loan insert
// run in one transaction so the available count never goes negative.
func BorrowBook(db *sql.DB, bookID, studentID, issuedBy string, loanDays int) (*models.BookLoan, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE books SET copies_available = copies_available - 1, updated_at = NOW()
						 WHERE id = $1 AND copies_available > 0 AND deleted_at IS NULL`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to reserve copy: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1 AND deleted_at IS NULL)`,
			bookID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("failed to check book: %w", err)
		}
		if !exists {
			return nil, ErrBookNotFound
		}
		return nil, ErrNoCopies
	}

	loan := &models.BookLoan{
		BookID:    bookID,
		StudentID: studentID,
		DueDate:   time.Now().AddDate(0, 0, loanDays),
		Status:    models.LoanActive,
		IssuedBy:  issuedBy,
	}
	err = tx.QueryRow(`INSERT INTO book_loans (book_id, student_id, due_date, issued_by)
					   VALUES ($1, $2, $3, $4)
					   RETURNING id, borrowed_at, created_at, updated_at`,
		bookID, studentID, loan.DueDate, issuedBy).
		Scan(&loan.ID, &loan.BorrowedAt, &loan.CreatedAt, &loan.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert loan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit loan: %w", err)
	}
	return loan, nil
}

// ReturnBook closes the loan and releases the copy. An overdue loan keeps
// its fine; returning only stops it from growing further.
func ReturnBook(db *sql.DB, loanID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var bookID string
	err = tx.QueryRow(`UPDATE book_loans
					   SET status = 'returned', returned_at = NOW(), updated_at = NOW()
					   WHERE id = $1 AND status IN ('active', 'overdue')
					   RETURNING book_id`, loanID).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrLoanNotOpen
	}
	if err != nil {
		return fmt.Errorf("failed to close loan: %w", err)
	}

	_, err = tx.Exec(`UPDATE books
					  SET copies_available = LEAST(copies_available + 1, copies_total), updated_at = NOW()
					  WHERE id = $1`, bookID)
	if err != nil {
		return fmt.Errorf("failed to release copy: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit return: %w", err)
	}
	return nil
}

// SettleFine marks an outstanding fine paid or waived.
func SettleFine(db *sql.DB, fineID, settledBy string, status models.FineStatus) error {
	res, err := db.Exec(`UPDATE library_fines
						 SET status = $1, settled_by = $2, settled_at = NOW(), updated_at = NOW()
						 WHERE id = $3 AND status = 'outstanding'`,
		status, settledBy, fineID)
	if err != nil {
		return fmt.Errorf("failed to settle fine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFineSettled
	}
	return nil
}
