package services

import (
	"context"
	"errors"
	"testing"
)

// fakeRenderer fails for the student ids listed in failFor and records
// call order.
type fakeRenderer struct {
	failFor map[string]bool
	calls   []string
}

func (f *fakeRenderer) Render(_ context.Context, req RenderRequest) error {
	f.calls = append(f.calls, req.StudentID)
	if f.failFor[req.StudentID] {
		return errors.New("render exploded")
	}
	return nil
}

func TestGenerateReportsBestEffort(t *testing.T) {
	// s2 fails; s1 and s3 must still be rendered and progress must
	// reach 100.
	renderer := &fakeRenderer{failFor: map[string]bool{"s2": true}}

	var progress []int
	result := GenerateReports(context.Background(), renderer, []string{"s1", "s2", "s3"},
		"year1", "term1", "head1", func(completed, total int) {
			progress = append(progress, completed)
		})

	if len(renderer.calls) != 3 {
		t.Fatalf("renderer called %d times, want 3", len(renderer.calls))
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if renderer.calls[i] != want {
			t.Errorf("call %d = %s, want %s (sequential order)", i, renderer.calls[i], want)
		}
	}

	if result.Succeeded != 2 || result.Failed != 1 {
		t.Errorf("succeeded=%d failed=%d, want 2/1", result.Succeeded, result.Failed)
	}
	if result.Progress != 100 {
		t.Errorf("progress = %v, want 100 despite the failure", result.Progress)
	}

	if len(result.Outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(result.Outcomes))
	}
	if !result.Outcomes[0].Success || result.Outcomes[1].Success || !result.Outcomes[2].Success {
		t.Errorf("outcome successes = %v %v %v, want true false true",
			result.Outcomes[0].Success, result.Outcomes[1].Success, result.Outcomes[2].Success)
	}
	if result.Outcomes[1].Error == "" {
		t.Error("failed outcome should carry the error message")
	}

	// Progress ticks after every element, including the failed one.
	if len(progress) != 3 || progress[0] != 1 || progress[1] != 2 || progress[2] != 3 {
		t.Errorf("progress ticks = %v, want [1 2 3]", progress)
	}
}

func TestGenerateReportsEmptySelection(t *testing.T) {
	renderer := &fakeRenderer{}
	result := GenerateReports(context.Background(), renderer, nil, "y", "t", "u", nil)

	if len(renderer.calls) != 0 {
		t.Errorf("renderer called %d times for empty selection", len(renderer.calls))
	}
	if result.Progress != 0 || result.Succeeded != 0 || result.Failed != 0 {
		t.Errorf("unexpected result for empty selection: %+v", result)
	}
}

func TestGenerateReportsAllFail(t *testing.T) {
	renderer := &fakeRenderer{failFor: map[string]bool{"s1": true, "s2": true}}
	result := GenerateReports(context.Background(), renderer, []string{"s1", "s2"}, "y", "t", "u", nil)

	if result.Failed != 2 || result.Succeeded != 0 {
		t.Errorf("failed=%d succeeded=%d, want 2/0", result.Failed, result.Succeeded)
	}
	if result.Progress != 100 {
		t.Errorf("progress = %v, want 100", result.Progress)
	}
}
