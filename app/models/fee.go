package models

import "time"

// FeeStructure defines an amount charged per class per term.
type FeeStructure struct {
	ID             string     `json:"id" validate:"required,uuid"`
	Name           string     `json:"name" validate:"required"`
	ClassID        string     `json:"class_id" validate:"required,uuid"`
	TermID         string     `json:"term_id" validate:"required,uuid"`
	AcademicYearID string     `json:"academic_year_id" validate:"required,uuid"`
	Amount         float64    `json:"amount" validate:"gt=0"`
	IsMandatory    bool       `json:"is_mandatory"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Class          *Class     `json:"class,omitempty"`
	Term           *Term      `json:"term,omitempty"`
}

// Invoice bills one student for one fee structure. Balance queries derive
// the outstanding amount from allocations, it is not stored.
type Invoice struct {
	ID             string        `json:"id" validate:"required,uuid"`
	StudentID      string        `json:"student_id" validate:"required,uuid"`
	FeeStructureID string        `json:"fee_structure_id" validate:"required,uuid"`
	Amount         float64       `json:"amount" validate:"gt=0"`
	AmountPaid     float64       `json:"amount_paid"`
	Status         InvoiceStatus `json:"status"`
	DueDate        *time.Time    `json:"due_date,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	Student        *Student      `json:"student,omitempty"`
	FeeStructure   *FeeStructure `json:"fee_structure,omitempty"`
}

// Payment is money received from a student; allocations spread it over
// that student's open invoices oldest-first.
type Payment struct {
	ID          string               `json:"id" validate:"required,uuid"`
	StudentID   string               `json:"student_id" validate:"required,uuid"`
	Amount      float64              `json:"amount" validate:"gt=0"`
	Method      string               `json:"method" validate:"required,oneof=cash bank mobile_money"`
	Reference   string               `json:"reference,omitempty"`
	ReceivedBy  string               `json:"received_by" validate:"required,uuid"`
	ReceivedAt  time.Time            `json:"received_at"`
	CreatedAt   time.Time            `json:"created_at"`
	Allocations []*PaymentAllocation `json:"allocations,omitempty"`
}

type PaymentAllocation struct {
	ID        string    `json:"id" validate:"required,uuid"`
	PaymentID string    `json:"payment_id" validate:"required,uuid"`
	InvoiceID string    `json:"invoice_id" validate:"required,uuid"`
	Amount    float64   `json:"amount" validate:"gt=0"`
	CreatedAt time.Time `json:"created_at"`
}

// StudentBalance summarises a student's fee position.
type StudentBalance struct {
	StudentID    string  `json:"student_id"`
	TotalBilled  float64 `json:"total_billed"`
	TotalPaid    float64 `json:"total_paid"`
	Outstanding  float64 `json:"outstanding"`
	InvoiceCount int     `json:"invoice_count"`
}
