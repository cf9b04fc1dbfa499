package resolve

import (
	"errors"
	"math"
	"testing"
)

func TestResolveConditionalValue(t *testing.T) {
	tests := []struct {
		name         string
		conditionMet bool
		baseline     float64
		def          float64
		expected     float64
	}{
		{"member discount", true, 100, 0, 90},
		{"non-member uses default", false, 100, 5, 95},
		{"non-member zero default", false, 100, 0, 100},
		{"zero baseline with condition", true, 0, 0, -10},
		{"default ignored when condition met", true, 50, 999, 40},
		{"fractional baseline", false, 19.5, 2.25, 17.25},
		{"negative default increases result", false, 10, -5, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ResolveConditionalValue(tt.conditionMet, tt.baseline, tt.def)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("ResolveConditionalValue(%v, %v, %v) = %v, want %v",
					tt.conditionMet, tt.baseline, tt.def, result, tt.expected)
			}
		})
	}
}

func TestResolveConditionalValue_NeverNaN(t *testing.T) {
	for _, baseline := range []float64{0, 1, 42.5, 1e9} {
		for _, def := range []float64{0, 3, 10, 1e6} {
			for _, cond := range []bool{true, false} {
				result, err := ResolveConditionalValue(cond, baseline, def)
				if err != nil {
					t.Fatalf("unexpected error for (%v, %v, %v): %v", cond, baseline, def, err)
				}
				if math.IsNaN(result) {
					t.Errorf("got NaN for (%v, %v, %v)", cond, baseline, def)
				}
				want := baseline - def
				if cond {
					want = baseline - DefaultDiscount
				}
				if result != want {
					t.Errorf("ResolveConditionalValue(%v, %v, %v) = %v, want %v", cond, baseline, def, result, want)
				}
			}
		}
	}
}

func TestResolveConditionalValue_Idempotent(t *testing.T) {
	first, err := ResolveConditionalValue(false, 73.25, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ResolveConditionalValue(false, 73.25, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected identical results, got %v and %v", first, second)
	}
}

func TestResolveConditionalValue_InvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		cond     bool
		baseline float64
		def      float64
		field    string
	}{
		{"negative baseline", true, -1, 0, "baseline"},
		{"negative baseline without condition", false, -0.01, 0, "baseline"},
		{"NaN baseline", false, math.NaN(), 0, "baseline"},
		{"infinite baseline", true, math.Inf(1), 0, "baseline"},
		{"NaN default", false, 100, math.NaN(), "default_intermediate"},
		{"infinite default", false, 100, math.Inf(-1), "default_intermediate"},
		{"overflowing result", false, math.MaxFloat64, -math.MaxFloat64, "default_intermediate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveConditionalValue(tt.cond, tt.baseline, tt.def)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
			var inputErr *InvalidInputError
			if !errors.As(err, &inputErr) {
				t.Fatalf("expected *InvalidInputError, got %T", err)
			}
			if inputErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, inputErr.Field)
			}
		})
	}
}

func TestResolve_NaNDefaultIgnoredWhenConditionMet(t *testing.T) {
	// The default branch is never read when the condition holds
	result, err := ResolveConditionalValue(true, 100, math.NaN())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 90 {
		t.Errorf("expected 90, got %v", result)
	}
}

func TestPolicyResolve_CustomDiscount(t *testing.T) {
	p := DefaultPolicy()
	p.Discount = 25

	result, err := p.Resolve(true, 100, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != 75 {
		t.Errorf("expected 75, got %v", result)
	}
}

func TestPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Policy)
		wantErr bool
	}{
		{"defaults", func(p *Policy) {}, false},
		{"zero discount", func(p *Policy) { p.Discount = 0 }, true},
		{"negative discount", func(p *Policy) { p.Discount = -10 }, true},
		{"NaN discount", func(p *Policy) { p.Discount = math.NaN() }, true},
		{"infinite threshold", func(p *Policy) { p.Threshold = math.Inf(1) }, true},
		{"NaN high score", func(p *Policy) { p.HighScore = math.NaN() }, true},
		{"infinite sentinel", func(p *Policy) { p.Sentinel = math.Inf(-1) }, true},
		{"negative threshold is fine", func(p *Policy) { p.Threshold = -5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultPolicy()
			tt.mutate(&p)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestInvalidInputError_Message(t *testing.T) {
	err := &InvalidInputError{Field: "baseline", Value: -3, Reason: "must not be negative"}
	expected := "invalid baseline -3: must not be negative"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}
