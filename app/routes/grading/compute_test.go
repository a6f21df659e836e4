package grading

import (
	"math"
	"testing"

	"school20/app/models"
)

func f(v float64) *float64 { return &v }

func testBands() []*models.GradingBand {
	return []*models.GradingBand{
		{ID: "b1", MinMarks: 0, MaxMarks: 39.9, Grade: "F", GradePoints: 0, DefaultRemark: "Fail", IsActive: true},
		{ID: "b2", MinMarks: 40, MaxMarks: 54.9, Grade: "D", GradePoints: 1, DefaultRemark: "Weak pass", IsActive: true},
		{ID: "b3", MinMarks: 55, MaxMarks: 69.9, Grade: "C", GradePoints: 2, DefaultRemark: "Fair", IsActive: true},
		{ID: "b4", MinMarks: 70, MaxMarks: 84.9, Grade: "B", GradePoints: 3, DefaultRemark: "Good", IsActive: true},
		{ID: "b5", MinMarks: 85, MaxMarks: 100, Grade: "A", GradePoints: 4, DefaultRemark: "Excellent", IsActive: true},
	}
}

func TestComputeDerivedAverage(t *testing.T) {
	tests := []struct {
		name       string
		a1, a2, a3 *float64
		wantAvg    *float64
	}{
		{"all present", f(1.0), f(2.0), f(3.0), f(2.0)},
		{"two present", f(2.0), f(2.5), nil, f(2.25)},
		{"one present", nil, nil, f(1.5), f(1.5)},
		{"zero counts as present", f(0), nil, nil, f(0)},
		{"none present", nil, nil, nil, nil},
		{"nan treated as absent", f(math.NaN()), f(2.0), nil, f(2.0)},
		{"inf treated as absent", f(math.Inf(1)), nil, f(3.0), f(3.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ComputeDerived(tt.a1, tt.a2, tt.a3, nil, testBands())
			if tt.wantAvg == nil {
				if d.AvgAssessment != nil {
					t.Fatalf("expected nil average, got %v", *d.AvgAssessment)
				}
				return
			}
			if d.AvgAssessment == nil {
				t.Fatalf("expected average %v, got nil", *tt.wantAvg)
			}
			if *d.AvgAssessment != *tt.wantAvg {
				t.Errorf("average = %v, want %v", *d.AvgAssessment, *tt.wantAvg)
			}
		})
	}
}

func TestComputeDerivedWeights(t *testing.T) {
	// Scenario: a1=2.0, a2=2.5, a3 missing, exam=70
	d := ComputeDerived(f(2.0), f(2.5), nil, f(70), testBands())

	if d.AvgAssessment == nil || *d.AvgAssessment != 2.25 {
		t.Fatalf("avg = %v, want 2.25", d.AvgAssessment)
	}
	if d.CA20 == nil || *d.CA20 != 15.0 {
		t.Fatalf("ca20 = %v, want 15.0", d.CA20)
	}
	if d.Exam80 == nil || *d.Exam80 != 56.0 {
		t.Fatalf("exam80 = %v, want 56.0", d.Exam80)
	}
	if d.Total == nil || *d.Total != 71.0 {
		t.Fatalf("total = %v, want 71.0", d.Total)
	}
	if !d.GradeResolved || d.Grade != "B" || d.GradePoints != 3 {
		t.Errorf("grade = %q (%v points, resolved=%v), want B with 3 points", d.Grade, d.GradePoints, d.GradeResolved)
	}
}

func TestComputeDerivedTotalRequiresBothParts(t *testing.T) {
	// Assessments without an exam: no total, no grade overwrite.
	d := ComputeDerived(f(2.0), f(2.0), f(2.0), nil, testBands())
	if d.Total != nil {
		t.Fatalf("total = %v, want nil without exam score", *d.Total)
	}
	if d.GradeResolved {
		t.Error("grade should not resolve without a total")
	}

	// Exam without assessments: same.
	d = ComputeDerived(nil, nil, nil, f(90), testBands())
	if d.Total != nil {
		t.Fatalf("total = %v, want nil without assessments", *d.Total)
	}
	if d.GradeResolved {
		t.Error("grade should not resolve without a total")
	}

	// No scores at all: everything nil.
	d = ComputeDerived(nil, nil, nil, nil, testBands())
	if d.AvgAssessment != nil || d.CA20 != nil || d.Exam80 != nil || d.Total != nil {
		t.Error("expected all derived fields nil with no scores")
	}
}

func TestComputeDerivedRounding(t *testing.T) {
	// avg(1.0, 2.0) = 1.5 -> ca20 = 10.0; exam 33 -> 26.4
	d := ComputeDerived(f(1.0), f(2.0), nil, f(33), testBands())
	if d.CA20 == nil || *d.CA20 != 10.0 {
		t.Errorf("ca20 = %v, want 10.0", d.CA20)
	}
	if d.Exam80 == nil || *d.Exam80 != 26.4 {
		t.Errorf("exam80 = %v, want 26.4", d.Exam80)
	}
	if d.Total == nil || *d.Total != 36.4 {
		t.Errorf("total = %v, want 36.4", d.Total)
	}
}

func TestResolveBandCoversScale(t *testing.T) {
	bands := testBands()

	// Every total in [0,100] must land in exactly one band.
	for total := 0.0; total <= 100.0; total += 0.1 {
		v := math.Round(total*10) / 10
		band, ok := ResolveBand(bands, v)
		if !ok {
			t.Fatalf("no band for total %v", v)
		}
		if !band.Contains(v) {
			t.Fatalf("band %s [%v,%v] does not contain %v", band.Grade, band.MinMarks, band.MaxMarks, v)
		}
	}
}

func TestResolveBandBoundaries(t *testing.T) {
	bands := testBands()
	cases := []struct {
		total float64
		grade string
	}{
		{0, "F"},
		{39.9, "F"},
		{40, "D"},
		{69.9, "C"},
		{70, "B"},
		{84.9, "B"},
		{85, "A"},
		{100, "A"},
	}
	for _, c := range cases {
		band, ok := ResolveBand(bands, c.total)
		if !ok {
			t.Fatalf("no band for %v", c.total)
		}
		if band.Grade != c.grade {
			t.Errorf("total %v resolved to %s, want %s", c.total, band.Grade, c.grade)
		}
	}
}

func TestResolveBandSkipsInactive(t *testing.T) {
	bands := testBands()
	bands[4].IsActive = false // drop the A band

	if _, ok := ResolveBand(bands, 90); ok {
		t.Error("expected no band for 90 with A band inactive")
	}
}

func TestStudentTraversalWraps(t *testing.T) {
	ordered := []string{"s1", "s2", "s3"}

	if got := NextStudent(ordered, "s1"); got != "s2" {
		t.Errorf("next of s1 = %s, want s2", got)
	}
	if got := NextStudent(ordered, "s3"); got != "s1" {
		t.Errorf("next of s3 = %s, want s1 (wrap)", got)
	}
	if got := PrevStudent(ordered, "s1"); got != "s3" {
		t.Errorf("prev of s1 = %s, want s3 (wrap)", got)
	}
	if got := PrevStudent(ordered, "s2"); got != "s1" {
		t.Errorf("prev of s2 = %s, want s1", got)
	}
	if got := NextStudent(ordered, "unknown"); got != "s1" {
		t.Errorf("next of unknown = %s, want s1", got)
	}
	if got := NextStudent(nil, "s1"); got != "" {
		t.Errorf("next on empty list = %q, want empty", got)
	}
}
