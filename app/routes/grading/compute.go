package grading

import (
	"math"
	"sort"

	"school20/app/models"
)

// Derived holds the fields recomputed from raw scores on every write.
// Grade and GradePoints are only meaningful when GradeResolved is true;
// when Total is nil the caller keeps whatever grade the record already
// carries instead of blanking it.
type Derived struct {
	AvgAssessment *float64
	CA20          *float64
	Exam80        *float64
	Total         *float64
	Grade         string
	GradePoints   float64
	DefaultRemark string
	GradeResolved bool
}

// ComputeDerived recomputes the weighted totals from the raw component
// scores. Assessment scores (0-3 scale) are averaged over present values
// only: a zero counts, an absent or non-finite value does not. The
// continuous assessment average is weighted to 20 and the exam score
// (out of 100) to 80; the total exists only when both parts do.
func ComputeDerived(a1, a2, a3, examScore *float64, bands []*models.GradingBand) Derived {
	var d Derived

	var sum float64
	var n int
	for _, a := range []*float64{a1, a2, a3} {
		if !present(a) {
			continue
		}
		sum += *a
		n++
	}

	if n > 0 {
		avg := round2(sum / float64(n))
		ca := round1(avg / 3 * 20)
		d.AvgAssessment = &avg
		d.CA20 = &ca
	}

	if present(examScore) {
		ex := round1(*examScore / 100 * 80)
		d.Exam80 = &ex
	}

	if d.CA20 != nil && d.Exam80 != nil {
		total := round1(*d.CA20 + *d.Exam80)
		d.Total = &total

		if band, ok := ResolveBand(bands, total); ok {
			d.Grade = band.Grade
			d.GradePoints = band.GradePoints
			d.DefaultRemark = band.DefaultRemark
			d.GradeResolved = true
		}
	}

	return d
}

// ResolveBand picks the grading band for a total: bands are scanned by
// descending MinMarks and the first whose inclusive range contains the
// total wins. Inactive bands are skipped.
func ResolveBand(bands []*models.GradingBand, total float64) (*models.GradingBand, bool) {
	ordered := make([]*models.GradingBand, 0, len(bands))
	for _, b := range bands {
		if b.IsActive {
			ordered = append(ordered, b)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinMarks > ordered[j].MinMarks
	})

	for _, b := range ordered {
		if b.Contains(total) {
			return b, true
		}
	}
	return nil, false
}

// NextStudent returns the id following current in the traversal order,
// wrapping at the end. An unknown current id lands on the first student.
func NextStudent(ordered []string, current string) string {
	return step(ordered, current, 1)
}

// PrevStudent returns the id preceding current, wrapping at the start.
func PrevStudent(ordered []string, current string) string {
	return step(ordered, current, -1)
}

func step(ordered []string, current string, delta int) string {
	if len(ordered) == 0 {
		return ""
	}
	for i, id := range ordered {
		if id == current {
			return ordered[(i+delta+len(ordered))%len(ordered)]
		}
	}
	return ordered[0]
}

func present(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
