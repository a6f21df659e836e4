package models

import "time"

// Student is an enrolled learner. AdmissionNo is the human-facing number
// assigned when an application is enrolled; it also fixes the traversal
// order used by the marks entry screens.
type Student struct {
	ID             string     `json:"id" validate:"required,uuid"`
	AdmissionNo    string     `json:"admission_no" validate:"required"`
	FirstName      string     `json:"first_name" validate:"required"`
	LastName       string     `json:"last_name" validate:"required"`
	Gender         Gender     `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	ClassID        *string    `json:"class_id,omitempty" validate:"omitempty,uuid"`
	AcademicYearID *string    `json:"academic_year_id,omitempty" validate:"omitempty,uuid"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
	Class          *Class     `json:"class,omitempty"`
	Guardians      []*StudentGuardian `json:"guardians,omitempty"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// AdmissionApplication is a prospective student record. Enrolling an admitted
// application creates the Student row.
type AdmissionApplication struct {
	ID             string          `json:"id" validate:"required,uuid"`
	FirstName      string          `json:"first_name" validate:"required"`
	LastName       string          `json:"last_name" validate:"required"`
	Gender         Gender          `json:"gender" validate:"required,oneof=male female other"`
	DateOfBirth    *time.Time      `json:"date_of_birth,omitempty"`
	AppliedClassID string          `json:"applied_class_id" validate:"required,uuid"`
	AcademicYearID string          `json:"academic_year_id" validate:"required,uuid"`
	GuardianName   string          `json:"guardian_name" validate:"required"`
	GuardianPhone  string          `json:"guardian_phone" validate:"required"`
	GuardianEmail  string          `json:"guardian_email,omitempty" validate:"omitempty,email"`
	Status         AdmissionStatus `json:"status"`
	Notes          string          `json:"notes,omitempty"`
	StudentID      *string         `json:"student_id,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	AppliedClass   *Class          `json:"applied_class,omitempty"`
}

// StudentGuardian links a guardian contact to a student.
type StudentGuardian struct {
	ID           string           `json:"id" validate:"required,uuid"`
	StudentID    string           `json:"student_id" validate:"required,uuid"`
	Name         string           `json:"name" validate:"required"`
	Phone        string           `json:"phone" validate:"required"`
	Email        string           `json:"email,omitempty" validate:"omitempty,email"`
	Relationship RelationshipType `json:"relationship"`
	CreatedAt    time.Time        `json:"created_at"`
}
