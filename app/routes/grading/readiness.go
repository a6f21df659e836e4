package grading

import "school20/app/models"

// ComputeReadiness derives, per student, how many subject submissions are
// approved or still pending for the term and whether enough are approved
// to generate a report card. Nothing here is persisted; callers recompute
// from current rows every time.
func ComputeReadiness(students []*models.Student, submissions []*models.MarksSubmission, threshold int) []*models.StudentReadiness {
	type counts struct {
		approved int
		pending  int
		total    int
	}
	byStudent := make(map[string]*counts, len(students))
	for _, s := range students {
		byStudent[s.ID] = &counts{}
	}

	for _, sub := range submissions {
		c, ok := byStudent[sub.StudentID]
		if !ok {
			continue
		}
		c.total++
		switch sub.Status {
		case models.SubmissionApproved:
			c.approved++
		case models.SubmissionPending:
			c.pending++
		}
	}

	out := make([]*models.StudentReadiness, 0, len(students))
	for _, s := range students {
		c := byStudent[s.ID]
		out = append(out, &models.StudentReadiness{
			StudentID:     s.ID,
			AdmissionNo:   s.AdmissionNo,
			StudentName:   s.FullName(),
			ApprovedCount: c.approved,
			PendingCount:  c.pending,
			TotalSubjects: c.total,
			IsReady:       c.approved >= threshold,
		})
	}
	return out
}

// ToggleSelectAllReady implements the select-all toggle on the report
// screen: if every ready student is already selected the selection is
// cleared, otherwise it becomes exactly the ready set.
func ToggleSelectAllReady(readiness []*models.StudentReadiness, selected []string) []string {
	ready := make([]string, 0, len(readiness))
	for _, r := range readiness {
		if r.IsReady {
			ready = append(ready, r.StudentID)
		}
	}

	have := make(map[string]struct{}, len(selected))
	for _, id := range selected {
		have[id] = struct{}{}
	}

	allSelected := len(ready) > 0
	for _, id := range ready {
		if _, ok := have[id]; !ok {
			allSelected = false
			break
		}
	}

	if allSelected {
		return nil
	}
	return ready
}
