package models

import "time"

// AttendanceRecord marks one student for one school day. Unique on
// (student_id, date).
type AttendanceRecord struct {
	ID        string           `json:"id" validate:"required,uuid"`
	StudentID string           `json:"student_id" validate:"required,uuid"`
	ClassID   string           `json:"class_id" validate:"required,uuid"`
	Date      time.Time        `json:"date"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late excused"`
	Notes     string           `json:"notes,omitempty"`
	MarkedBy  string           `json:"marked_by" validate:"required,uuid"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Student   *Student         `json:"student,omitempty"`
}

type AttendanceSummary struct {
	StudentID    string  `json:"student_id"`
	StudentName  string  `json:"student_name"`
	PresentCount int     `json:"present_count"`
	AbsentCount  int     `json:"absent_count"`
	LateCount    int     `json:"late_count"`
	ExcusedCount int     `json:"excused_count"`
	Rate         float64 `json:"rate"`
}
