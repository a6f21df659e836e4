package grading

import (
	"testing"

	"school20/app/models"
)

func student(id, adm, name string) *models.Student {
	return &models.Student{ID: id, AdmissionNo: adm, FirstName: name, LastName: "Test"}
}

func submission(studentID string, status models.SubmissionStatus) *models.MarksSubmission {
	return &models.MarksSubmission{StudentID: studentID, Status: status}
}

func TestComputeReadinessThreshold(t *testing.T) {
	students := []*models.Student{
		student("s1", "001", "Three"),
		student("s2", "002", "Two"),
		student("s3", "003", "None"),
	}
	subs := []*models.MarksSubmission{
		submission("s1", models.SubmissionApproved),
		submission("s1", models.SubmissionApproved),
		submission("s1", models.SubmissionApproved),
		submission("s2", models.SubmissionApproved),
		submission("s2", models.SubmissionApproved),
		submission("s2", models.SubmissionPending),
	}

	readiness := ComputeReadiness(students, subs, 3)
	if len(readiness) != 3 {
		t.Fatalf("got %d readiness rows, want 3", len(readiness))
	}

	// Boundary: exactly 3 approved is ready, 2 is not.
	if !readiness[0].IsReady || readiness[0].ApprovedCount != 3 {
		t.Errorf("s1: ready=%v approved=%d, want ready with 3", readiness[0].IsReady, readiness[0].ApprovedCount)
	}
	if readiness[1].IsReady {
		t.Errorf("s2 with 2 approved should not be ready")
	}
	if readiness[1].PendingCount != 1 {
		t.Errorf("s2 pending = %d, want 1", readiness[1].PendingCount)
	}
	if readiness[2].IsReady || readiness[2].TotalSubjects != 0 {
		t.Errorf("s3 with no submissions should not be ready")
	}
}

func TestComputeReadinessIgnoresForeignSubmissions(t *testing.T) {
	students := []*models.Student{student("s1", "001", "Only")}
	subs := []*models.MarksSubmission{
		submission("s1", models.SubmissionApproved),
		submission("other", models.SubmissionApproved),
		submission("other", models.SubmissionApproved),
	}

	readiness := ComputeReadiness(students, subs, 1)
	if readiness[0].ApprovedCount != 1 {
		t.Errorf("approved = %d, want 1 (foreign rows ignored)", readiness[0].ApprovedCount)
	}
	if !readiness[0].IsReady {
		t.Error("s1 should be ready at threshold 1")
	}
}

func TestComputeReadinessRejectedNotCounted(t *testing.T) {
	students := []*models.Student{student("s1", "001", "Rej")}
	subs := []*models.MarksSubmission{
		submission("s1", models.SubmissionRejected),
		submission("s1", models.SubmissionDraft),
		submission("s1", models.SubmissionApproved),
	}

	r := ComputeReadiness(students, subs, 3)[0]
	if r.ApprovedCount != 1 || r.PendingCount != 0 || r.TotalSubjects != 3 {
		t.Errorf("got approved=%d pending=%d total=%d, want 1/0/3", r.ApprovedCount, r.PendingCount, r.TotalSubjects)
	}
	if r.IsReady {
		t.Error("one approved submission should not satisfy threshold 3")
	}
}

func TestToggleSelectAllReady(t *testing.T) {
	readiness := []*models.StudentReadiness{
		{StudentID: "s1", IsReady: true},
		{StudentID: "s2", IsReady: false},
		{StudentID: "s3", IsReady: true},
	}

	// Nothing selected: select exactly the ready set.
	got := ToggleSelectAllReady(readiness, nil)
	if len(got) != 2 || got[0] != "s1" || got[1] != "s3" {
		t.Fatalf("selection = %v, want [s1 s3]", got)
	}

	// All ready students selected: toggle clears.
	got = ToggleSelectAllReady(readiness, []string{"s1", "s3"})
	if len(got) != 0 {
		t.Fatalf("selection = %v, want empty after toggle", got)
	}

	// Partial selection: completes to the ready set, never includes s2.
	got = ToggleSelectAllReady(readiness, []string{"s1", "s2"})
	if len(got) != 2 || got[0] != "s1" || got[1] != "s3" {
		t.Fatalf("selection = %v, want [s1 s3]", got)
	}

	// No ready students: always empty.
	got = ToggleSelectAllReady([]*models.StudentReadiness{{StudentID: "s2"}}, nil)
	if len(got) != 0 {
		t.Fatalf("selection = %v, want empty with no ready students", got)
	}
}
