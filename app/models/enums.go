package models

// SubmissionStatus tracks a marks submission through the approval pipeline.
type SubmissionStatus string

const (
	SubmissionDraft    SubmissionStatus = "draft"
	SubmissionPending  SubmissionStatus = "pending"
	SubmissionApproved SubmissionStatus = "approved"
	SubmissionRejected SubmissionStatus = "rejected"
)

// AdmissionStatus tracks an application from submission to enrollment.
type AdmissionStatus string

const (
	AdmissionApplied  AdmissionStatus = "applied"
	AdmissionReview   AdmissionStatus = "under_review"
	AdmissionAdmitted AdmissionStatus = "admitted"
	AdmissionEnrolled AdmissionStatus = "enrolled"
	AdmissionRejected AdmissionStatus = "rejected"
)

// AttendanceStatus defines the possible status values for attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	Late    AttendanceStatus = "late"
	Excused AttendanceStatus = "excused"
)

// LoanStatus defines the lifecycle of a library loan.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
	LoanLost     LoanStatus = "lost"
)

// FineStatus defines the lifecycle of a library fine.
type FineStatus string

const (
	FineOutstanding FineStatus = "outstanding"
	FinePaid        FineStatus = "paid"
	FineWaived      FineStatus = "waived"
)

// InvoiceStatus defines the payment state of a fee invoice.
type InvoiceStatus string

const (
	InvoiceUnpaid  InvoiceStatus = "unpaid"
	InvoicePartial InvoiceStatus = "partial"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceVoid    InvoiceStatus = "void"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// DayOfWeek defines the days of the week for timetable entries.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
)

// RelationshipType defines the relationship of a guardian to a student.
type RelationshipType string

const (
	Father   RelationshipType = "father"
	Mother   RelationshipType = "mother"
	Guardian RelationshipType = "guardian"
	OtherRel RelationshipType = "other"
)
