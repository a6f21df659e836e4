package grading

import "school20/app/models"

// ValidateSave applies the write preconditions shared by draft saves and
// submissions, before anything touches the database. An approved record
// is locked against teacher edits in either mode; submitting additionally
// requires a computable total. Draft saves accept partial marks.
func ValidateSave(submit bool, derived Derived, existing *models.MarksSubmission) error {
	if existing != nil && existing.Status == models.SubmissionApproved {
		return ErrApprovedLocked
	}
	if submit && derived.Total == nil {
		return ErrIncompleteMarks
	}
	return nil
}

// InActionGroup reports whether a group approve/reject touches the row.
// It is the matching rule of the single filtered UPDATE in ApproveGroup
// and RejectGroup: the row must belong to the acting (subject, teacher)
// pair in the period and still be pending. Rows in any other status,
// approved ones in particular, are never matched.
func InActionGroup(m *models.MarksSubmission, yearID, termID, subjectID, submittedBy string) bool {
	if m.AcademicYearID != yearID || m.TermID != termID {
		return false
	}
	if m.SubjectID != subjectID {
		return false
	}
	if m.SubmittedBy == nil || *m.SubmittedBy != submittedBy {
		return false
	}
	return m.Status == models.SubmissionPending
}
