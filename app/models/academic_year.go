package models

import "time"

type AcademicYear struct {
	ID        string    `json:"id" validate:"required,uuid"`
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsCurrent bool      `json:"is_current"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Terms     []*Term   `json:"terms,omitempty"`
}

type Term struct {
	ID             string    `json:"id" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" validate:"required,uuid"`
	Name           string    `json:"name" validate:"required"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	IsCurrent      bool      `json:"is_current"`
	CreatedAt      time.Time `json:"created_at"`
}
