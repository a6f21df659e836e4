package models

import "time"

// Class is a teaching group, e.g. "P4 West". Level is the year group label
// ("P4") used by the approval screen's free-text filter.
type Class struct {
	ID            string     `json:"id" validate:"required,uuid"`
	Name          string     `json:"name" validate:"required"`
	Level         string     `json:"level" validate:"required"`
	ClassTeacherID *string   `json:"class_teacher_id,omitempty" validate:"omitempty,uuid"`
	Capacity      int        `json:"capacity"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
	ClassTeacher  *User      `json:"class_teacher,omitempty"`
	StudentCount  int        `json:"student_count,omitempty"`
}

// ClassSubject links a subject to a class for an academic year.
type ClassSubject struct {
	ID             string    `json:"id" validate:"required,uuid"`
	ClassID        string    `json:"class_id" validate:"required,uuid"`
	SubjectID      string    `json:"subject_id" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" validate:"required,uuid"`
	TeacherID      *string   `json:"teacher_id,omitempty" validate:"omitempty,uuid"`
	CreatedAt      time.Time `json:"created_at"`
	Class          *Class    `json:"class,omitempty"`
	Subject        *Subject  `json:"subject,omitempty"`
	Teacher        *User     `json:"teacher,omitempty"`
}

// ClassEnrollment places a student in a class for an academic year.
// Eligibility for marks entry requires an active row here AND an active
// SubjectEnrollment for the same year.
type ClassEnrollment struct {
	ID             string    `json:"id" validate:"required,uuid"`
	StudentID      string    `json:"student_id" validate:"required,uuid"`
	ClassID        string    `json:"class_id" validate:"required,uuid"`
	AcademicYearID string    `json:"academic_year_id" validate:"required,uuid"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}
