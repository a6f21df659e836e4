package models

import "time"

type Subject struct {
	ID        string     `json:"id" validate:"required,uuid"`
	Name      string     `json:"name" validate:"required"`
	Code      string     `json:"code" validate:"required"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// SubjectEnrollment registers a student for a subject in an academic year.
type SubjectEnrollment struct {
	ID             string    `json:"id" validate:"required,uuid"`
	StudentID      string    `json:"student_id" validate:"required,uuid"`
	SubjectID      string    `json:"subject_id" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" validate:"required,uuid"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	Subject        *Subject  `json:"subject,omitempty"`
}

// TeacherSubject assigns a teacher to a subject.
type TeacherSubject struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	SubjectID string `json:"subject_id" validate:"required,uuid"`
}
