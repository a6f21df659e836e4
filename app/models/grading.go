package models

import "time"

// GradingBand maps an inclusive total-marks range to a grade label and
// points. Active bands are expected to partition [0,100]; lookup scans
// bands ordered by descending MinMarks and picks the first containing
// band.
type GradingBand struct {
	ID            string     `json:"id" validate:"required,uuid"`
	MinMarks      float64    `json:"min_marks" validate:"gte=0,lte=100"`
	MaxMarks      float64    `json:"max_marks" validate:"gte=0,lte=100"`
	Grade         string     `json:"grade" validate:"required"`
	GradePoints   float64    `json:"grade_points" validate:"gte=0"`
	DefaultRemark string     `json:"default_remark"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

// Contains reports whether total falls in the band's inclusive range.
func (b *GradingBand) Contains(total float64) bool {
	return total >= b.MinMarks && total <= b.MaxMarks
}

// MarksSubmission is one student's marks entry for a subject in a term.
// The composite key (StudentID, SubjectID, AcademicYearID, TermID) is
// unique; writes are upserts on that key.
//
// A1..A3 are continuous-assessment scores on a 0-3 scale; ExamScore is
// out of 100. AvgAssessment, CA20, Exam80, Total, Grade and GradePoints
// are derived and recomputed on every write, never set directly.
type MarksSubmission struct {
	ID             string  `json:"id"`
	StudentID      string  `json:"student_id" validate:"required,uuid"`
	SubjectID      string  `json:"subject_id" validate:"required,uuid"`
	AcademicYearID string  `json:"academic_year_id" validate:"required,uuid"`
	TermID         string  `json:"term_id" validate:"required,uuid"`

	A1        *float64 `json:"a1,omitempty" validate:"omitempty,gte=0,lte=3"`
	A2        *float64 `json:"a2,omitempty" validate:"omitempty,gte=0,lte=3"`
	A3        *float64 `json:"a3,omitempty" validate:"omitempty,gte=0,lte=3"`
	ExamScore *float64 `json:"exam_score,omitempty" validate:"omitempty,gte=0,lte=100"`

	AvgAssessment *float64 `json:"avg_assessment,omitempty"`
	CA20          *float64 `json:"ca_20,omitempty"`
	Exam80        *float64 `json:"exam_80,omitempty"`
	Total         *float64 `json:"total,omitempty"`
	Grade         string   `json:"grade,omitempty"`
	GradePoints   float64  `json:"grade_points,omitempty"`

	// Identifier is the secondary achievement-level tag (1-3),
	// independent of the letter grade.
	Identifier int    `json:"identifier" validate:"omitempty,min=1,max=3"`
	Remark     string `json:"remark,omitempty"`

	Status          SubmissionStatus `json:"status"`
	RejectionReason *string          `json:"rejection_reason,omitempty"`
	SubmittedBy     *string          `json:"submitted_by,omitempty"`
	SubmittedAt     *time.Time       `json:"submitted_at,omitempty"`
	ApprovedBy      *string          `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time       `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Student *Student `json:"student,omitempty"`
	Subject *Subject `json:"subject,omitempty"`
}

// SubmissionGroup is one head-teacher review unit: all pending rows
// sharing a subject and submitting teacher.
type SubmissionGroup struct {
	SubjectID    string           `json:"subject_id"`
	SubjectName  string           `json:"subject_name"`
	SubmittedBy  string           `json:"submitted_by"`
	TeacherName  string           `json:"teacher_name"`
	ClassLevel   string           `json:"class_level,omitempty"`
	Status       SubmissionStatus `json:"status"`
	StudentCount int              `json:"student_count"`
	AverageScore *float64         `json:"average_score,omitempty"`
	SubmittedAt  *time.Time       `json:"submitted_at,omitempty"`
}

// StudentReadiness is derived on demand from submission rows; it is
// never persisted.
type StudentReadiness struct {
	StudentID     string `json:"student_id"`
	AdmissionNo   string `json:"admission_no"`
	StudentName   string `json:"student_name"`
	ApprovedCount int    `json:"approved_count"`
	PendingCount  int    `json:"pending_count"`
	TotalSubjects int    `json:"total_subjects"`
	IsReady       bool   `json:"is_ready"`
}

// ReportOutcome records the result of one render invocation in a batch.
type ReportOutcome struct {
	StudentID string `json:"student_id"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// ReportBatchResult aggregates a best-effort generation run. Progress
// reaches 100 whether or not individual students failed.
type ReportBatchResult struct {
	Outcomes  []ReportOutcome `json:"outcomes"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Progress  float64         `json:"progress"`
}
