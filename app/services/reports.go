package services

import (
	"context"
	"log"

	"school20/app/models"
)

// GenerateReports drives one render call per student, strictly one at a
// time. A student's failure is recorded and the batch moves on; there is
// no retry and no rollback, failed students are simply re-selected by
// the user later. Progress is reported after every element whether or
// not it succeeded, so it always ends at 100.
func GenerateReports(ctx context.Context, renderer ReportRenderer, studentIDs []string,
	yearID, termID, generatedBy string, onProgress func(completed, total int)) models.ReportBatchResult {

	result := models.ReportBatchResult{
		Outcomes: make([]models.ReportOutcome, 0, len(studentIDs)),
	}
	total := len(studentIDs)

	for i, studentID := range studentIDs {
		outcome := models.ReportOutcome{StudentID: studentID, Success: true}

		err := renderer.Render(ctx, RenderRequest{
			StudentID:      studentID,
			AcademicYearID: yearID,
			TermID:         termID,
			GeneratedBy:    generatedBy,
		})
		if err != nil {
			log.Printf("Report generation failed for student %s: %v", studentID, err)
			outcome.Success = false
			outcome.Error = err.Error()
			result.Failed++
		} else {
			result.Succeeded++
		}

		result.Outcomes = append(result.Outcomes, outcome)
		if onProgress != nil {
			onProgress(i+1, total)
		}
	}

	if total > 0 {
		result.Progress = float64(result.Succeeded+result.Failed) / float64(total) * 100
	}
	return result
}
