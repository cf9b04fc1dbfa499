package resolve

import (
	"errors"
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		score     Score
		threshold float64
		sentinel  float64
		expected  Classification
	}{
		{"high score", Assigned(75), 50, 0, ClassHigh},
		{"unassigned uses sentinel", Unassigned(), 50, 0, ClassBelowThreshold},
		{"equal to threshold is below", Assigned(50), 50, 0, ClassBelowThreshold},
		{"just above threshold", Assigned(50.001), 50, 0, ClassHigh},
		{"sentinel above threshold", Unassigned(), 50, 60, ClassHigh},
		{"assigned zero is not unassigned", Assigned(0), -1, -100, ClassHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Classify(tt.score, tt.threshold, tt.sentinel)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Classify() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestClassify_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		score     Score
		threshold float64
		sentinel  float64
		field     string
	}{
		{"NaN threshold", Assigned(75), math.NaN(), 0, "threshold"},
		{"infinite threshold", Assigned(75), math.Inf(1), 0, "threshold"},
		{"negative infinite threshold", Unassigned(), math.Inf(-1), 0, "threshold"},
		{"NaN score", Assigned(math.NaN()), 50, 0, "score"},
		{"NaN sentinel", Unassigned(), 50, math.NaN(), "sentinel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Classify(tt.score, tt.threshold, tt.sentinel)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *InvalidInputError
			if errors.As(err, &inputErr) && inputErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, inputErr.Field)
			}
		})
	}
}

func TestScore_ValueOr(t *testing.T) {
	if v := Unassigned().ValueOr(7); v != 7 {
		t.Errorf("expected sentinel 7, got %v", v)
	}
	if v := Assigned(3).ValueOr(7); v != 3 {
		t.Errorf("expected 3, got %v", v)
	}
	var zero Score
	if zero.IsAssigned() {
		t.Error("zero Score should be unassigned")
	}
}

func TestPolicyResolveScore(t *testing.T) {
	p := DefaultPolicy()

	got, err := p.ResolveScore(true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ClassHigh {
		t.Errorf("assigned score: expected %q, got %q", ClassHigh, got)
	}

	got, err = p.ResolveScore(false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != ClassBelowThreshold {
		t.Errorf("unassigned score: expected %q, got %q", ClassBelowThreshold, got)
	}
}

func TestClassification_String(t *testing.T) {
	if ClassHigh.String() != "high score" {
		t.Errorf("unexpected %q", ClassHigh.String())
	}
	if ClassBelowThreshold.String() != "below threshold" {
		t.Errorf("unexpected %q", ClassBelowThreshold.String())
	}
	if Classification("other").String() != "other" {
		t.Errorf("unexpected %q", Classification("other").String())
	}
}
