package fees

import (
	"database/sql"
	"fmt"

	"school20/app/models"
)

// GenerateInvoices creates an invoice for every active student enrolled in
// the structure's class who does not have one yet. Existing invoices are
// left untouched.
func GenerateInvoices(db *sql.DB, structureID string) (int, error) {
	query := `
		INSERT INTO invoices (student_id, fee_structure_id, amount, due_date)
		SELECT ce.student_id, fs.id, fs.amount, t.end_date
		FROM fee_structures fs
		JOIN terms t ON t.id = fs.term_id
		JOIN class_enrollments ce
			ON ce.class_id = fs.class_id
			AND ce.academic_year_id = fs.academic_year_id
			AND ce.is_active = true
		JOIN students s ON s.id = ce.student_id AND s.deleted_at IS NULL
		WHERE fs.id = $1 AND fs.is_active = true AND fs.deleted_at IS NULL
		ON CONFLICT (student_id, fee_structure_id) DO NOTHING
	`
	res, err := db.Exec(query, structureID)
	if err != nil {
		return 0, fmt.Errorf("failed to generate invoices: %w", err)
	}
	created, _ := res.RowsAffected()
	return int(created), nil
}

// RecordPayment inserts the payment and spreads it over the student's open
// invoices oldest-first in one transaction. The unallocated remainder, if
// any, is returned so the caller can report it as credit.
func RecordPayment(db *sql.DB, p *models.Payment) (string, float64, error) {
	tx, err := db.Begin()
	if err != nil {
		return "", 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var paymentID string
	err = tx.QueryRow(`INSERT INTO payments (student_id, amount, method, reference, received_by)
					   VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.StudentID, p.Amount, p.Method, p.Reference, p.ReceivedBy).Scan(&paymentID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to insert payment: %w", err)
	}

	rows, err := tx.Query(`SELECT id, amount - amount_paid
						   FROM invoices
						   WHERE student_id = $1 AND status IN ('unpaid', 'partial')
						   ORDER BY created_at, id
						   FOR UPDATE`, p.StudentID)
	if err != nil {
		return "", 0, fmt.Errorf("failed to lock open invoices: %w", err)
	}
	var open []OpenInvoice
	for rows.Next() {
		var inv OpenInvoice
		if err := rows.Scan(&inv.ID, &inv.Outstanding); err != nil {
			rows.Close()
			return "", 0, fmt.Errorf("failed to scan invoice: %w", err)
		}
		open = append(open, inv)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return "", 0, fmt.Errorf("failed to read open invoices: %w", err)
	}

	allocations, credit := AllocatePayment(p.Amount, open)
	for _, a := range allocations {
		_, err = tx.Exec(`INSERT INTO payment_allocations (payment_id, invoice_id, amount)
						  VALUES ($1, $2, $3)`, paymentID, a.InvoiceID, a.Amount)
		if err != nil {
			return "", 0, fmt.Errorf("failed to insert allocation: %w", err)
		}
		_, err = tx.Exec(`UPDATE invoices
						  SET amount_paid = amount_paid + $1,
							  status = CASE WHEN amount_paid + $1 >= amount THEN 'paid' ELSE 'partial' END,
							  updated_at = NOW()
						  WHERE id = $2`, a.Amount, a.InvoiceID)
		if err != nil {
			return "", 0, fmt.Errorf("failed to update invoice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("failed to commit payment: %w", err)
	}
	return paymentID, credit, nil
}

// GetStudentBalance sums a student's invoices and payments.
func GetStudentBalance(db *sql.DB, studentID string) (*models.StudentBalance, error) {
	b := &models.StudentBalance{StudentID: studentID}
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(SUM(amount_paid), 0)
		FROM invoices
		WHERE student_id = $1 AND status != 'void'
	`
	err := db.QueryRow(query, studentID).Scan(&b.InvoiceCount, &b.TotalBilled, &b.TotalPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to compute balance: %w", err)
	}
	b.Outstanding = round2(b.TotalBilled - b.TotalPaid)
	return b, nil
}
