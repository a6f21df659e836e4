package models

import "time"

// TimetableEntry is one period slot for a class.
type TimetableEntry struct {
	ID        string     `json:"id" validate:"required,uuid"`
	ClassID   string     `json:"class_id" validate:"required,uuid"`
	SubjectID string     `json:"subject_id" validate:"required,uuid"`
	TeacherID *string    `json:"teacher_id,omitempty" validate:"omitempty,uuid"`
	Day       DayOfWeek  `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday"`
	StartTime string     `json:"start_time" validate:"required"`
	EndTime   string     `json:"end_time" validate:"required"`
	Room      string     `json:"room,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// TimetableEntryDetail extends the base entry with display names.
type TimetableEntryDetail struct {
	TimetableEntry
	ClassName   string `json:"class_name"`
	SubjectName string `json:"subject_name"`
	TeacherName string `json:"teacher_name"`
}
