package grading

import (
	"testing"

	"school20/app/models"
)

func TestValidateSaveSubmitRequiresTotal(t *testing.T) {
	incomplete := Derived{CA20: f(15.0)} // no exam, no total

	if err := ValidateSave(true, incomplete, nil); err != ErrIncompleteMarks {
		t.Errorf("submit without total: got %v, want ErrIncompleteMarks", err)
	}
	// The same partial marks are fine as a draft.
	if err := ValidateSave(false, incomplete, nil); err != nil {
		t.Errorf("draft without total: got %v, want nil", err)
	}

	complete := Derived{CA20: f(15.0), Exam80: f(56.0), Total: f(71.0)}
	if err := ValidateSave(true, complete, nil); err != nil {
		t.Errorf("submit with total: got %v, want nil", err)
	}
}

func TestValidateSaveApprovedRowIsLocked(t *testing.T) {
	approved := &models.MarksSubmission{Status: models.SubmissionApproved}
	complete := Derived{Total: f(71.0)}

	// Locked in both modes, even with complete marks.
	if err := ValidateSave(false, complete, approved); err != ErrApprovedLocked {
		t.Errorf("draft over approved: got %v, want ErrApprovedLocked", err)
	}
	if err := ValidateSave(true, complete, approved); err != ErrApprovedLocked {
		t.Errorf("submit over approved: got %v, want ErrApprovedLocked", err)
	}
}

func TestValidateSaveRejectedRowIsEditable(t *testing.T) {
	rejected := &models.MarksSubmission{Status: models.SubmissionRejected}
	if err := ValidateSave(false, Derived{}, rejected); err != nil {
		t.Errorf("draft over rejected: got %v, want nil", err)
	}
	if err := ValidateSave(true, Derived{Total: f(50.0)}, rejected); err != nil {
		t.Errorf("resubmit over rejected: got %v, want nil", err)
	}
}

func TestInActionGroupMatchesOnlyPendingRowsOfTheGroup(t *testing.T) {
	teacher := "teacher-1"
	other := "teacher-2"

	row := func(subjectID, submittedBy string, status models.SubmissionStatus) *models.MarksSubmission {
		return &models.MarksSubmission{
			AcademicYearID: "year-1",
			TermID:         "term-1",
			SubjectID:      subjectID,
			SubmittedBy:    &submittedBy,
			Status:         status,
		}
	}

	cases := []struct {
		name string
		m    *models.MarksSubmission
		want bool
	}{
		{"pending row of the group", row("math", teacher, models.SubmissionPending), true},
		{"approved row of the group", row("math", teacher, models.SubmissionApproved), false},
		{"rejected row of the group", row("math", teacher, models.SubmissionRejected), false},
		{"draft row of the group", row("math", teacher, models.SubmissionDraft), false},
		{"pending row of another teacher", row("math", other, models.SubmissionPending), false},
		{"pending row of another subject", row("physics", teacher, models.SubmissionPending), false},
	}
	for _, tc := range cases {
		if got := InActionGroup(tc.m, "year-1", "term-1", "math", teacher); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}

	// Rows outside the period never match.
	otherTerm := row("math", teacher, models.SubmissionPending)
	otherTerm.TermID = "term-2"
	if InActionGroup(otherTerm, "year-1", "term-1", "math", teacher) {
		t.Error("row from another term matched the group")
	}

	// A row that was never submitted carries no teacher to match on.
	unsubmitted := row("math", teacher, models.SubmissionPending)
	unsubmitted.SubmittedBy = nil
	if InActionGroup(unsubmitted, "year-1", "term-1", "math", teacher) {
		t.Error("row without a submitter matched the group")
	}
}
