package models

import "time"

// DashboardStats feeds the admin landing page.
type DashboardStats struct {
	TotalStudents      int        `json:"total_students"`
	TotalTeachers      int        `json:"total_teachers"`
	TotalClasses       int        `json:"total_classes"`
	PendingAdmissions  int        `json:"pending_admissions"`
	PendingApprovals   int        `json:"pending_approvals"`
	FeeCollectionRate  float64    `json:"fee_collection_rate"`
	StudentAttendance  float64    `json:"student_attendance"`
	ActiveLoans        int        `json:"active_loans"`
	OutstandingFines   float64    `json:"outstanding_fines"`
	RecentActivities   []Activity `json:"recent_activities"`
}

type Activity struct {
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TimeAgo     string    `json:"time_ago"`
	RawTime     time.Time `json:"-"`
}
