package models

import "time"

type Book struct {
	ID         string     `json:"id" validate:"required,uuid"`
	Title      string     `json:"title" validate:"required"`
	Author     string     `json:"author"`
	ISBN       string     `json:"isbn,omitempty"`
	Category   string     `json:"category,omitempty"`
	CopiesTotal     int   `json:"copies_total" validate:"gte=0"`
	CopiesAvailable int   `json:"copies_available" validate:"gte=0"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// BookLoan is one circulation record. DueDate is set at checkout from the
// configured loan period; the scheduler flips active loans past due to
// overdue and accrues fines.
type BookLoan struct {
	ID         string     `json:"id" validate:"required,uuid"`
	BookID     string     `json:"book_id" validate:"required,uuid"`
	StudentID  string     `json:"student_id" validate:"required,uuid"`
	BorrowedAt time.Time  `json:"borrowed_at"`
	DueDate    time.Time  `json:"due_date"`
	ReturnedAt *time.Time `json:"returned_at,omitempty"`
	Status     LoanStatus `json:"status"`
	IssuedBy   string     `json:"issued_by" validate:"required,uuid"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Book       *Book      `json:"book,omitempty"`
	Student    *Student   `json:"student,omitempty"`
}

// LibraryFine accrues per overdue loan; one open fine per loan, its
// amount grows as days pass until the loan is returned.
type LibraryFine struct {
	ID        string     `json:"id" validate:"required,uuid"`
	LoanID    string     `json:"loan_id" validate:"required,uuid"`
	StudentID string     `json:"student_id" validate:"required,uuid"`
	Amount    float64    `json:"amount" validate:"gte=0"`
	DaysLate  int        `json:"days_late"`
	Status    FineStatus `json:"status"`
	SettledBy *string    `json:"settled_by,omitempty"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Loan      *BookLoan  `json:"loan,omitempty"`
}
