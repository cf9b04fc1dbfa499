package resolve

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is matched by every InvalidInputError via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports a numeric input outside the resolver's domain
type InvalidInputError struct {
	// Field is the name of the offending input (baseline, threshold, ...)
	Field string
	// Value is the rejected value
	Value float64
	// Reason describes the violated constraint
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidInput) succeed for any InvalidInputError
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Default policy values
const (
	DefaultDiscount  = 10.0
	DefaultHighScore = 75.0
	DefaultThreshold = 50.0
	DefaultSentinel  = 0.0
)

// Policy holds the values assigned on each branch of a resolution
type Policy struct {
	// Discount is the intermediate value used when the condition is met
	Discount float64 `yaml:"discount" json:"discount"`
	// HighScore is the score assigned when the score branch runs
	HighScore float64 `yaml:"high_score" json:"high_score"`
	// Threshold is the value a score must exceed to be classified high
	Threshold float64 `yaml:"threshold" json:"threshold"`
	// Sentinel stands in for a score that was never assigned
	Sentinel float64 `yaml:"sentinel" json:"sentinel"`
}

// DefaultPolicy returns the policy with the documented defaults
func DefaultPolicy() Policy {
	return Policy{
		Discount:  DefaultDiscount,
		HighScore: DefaultHighScore,
		Threshold: DefaultThreshold,
		Sentinel:  DefaultSentinel,
	}
}

// Validate checks that every branch value of the policy is usable
func (p Policy) Validate() error {
	if !isFinite(p.Discount) || p.Discount <= 0 {
		return &InvalidInputError{Field: "discount", Value: p.Discount, Reason: "must be positive and finite"}
	}
	if !isFinite(p.HighScore) {
		return &InvalidInputError{Field: "high_score", Value: p.HighScore, Reason: "must be finite"}
	}
	if !isFinite(p.Threshold) {
		return &InvalidInputError{Field: "threshold", Value: p.Threshold, Reason: "must be finite"}
	}
	if !isFinite(p.Sentinel) {
		return &InvalidInputError{Field: "sentinel", Value: p.Sentinel, Reason: "must be finite"}
	}
	return nil
}

// ResolveConditionalValue returns baseline minus the intermediate value,
// where the intermediate is DefaultDiscount when conditionMet and
// defaultIntermediate otherwise.
//
// ResolveConditionalValue(true, 100, 0) == 90
// ResolveConditionalValue(false, 100, 5) == 95
func ResolveConditionalValue(conditionMet bool, baseline, defaultIntermediate float64) (float64, error) {
	return DefaultPolicy().Resolve(conditionMet, baseline, defaultIntermediate)
}

// Resolve is ResolveConditionalValue using the policy's discount
func (p Policy) Resolve(conditionMet bool, baseline, defaultIntermediate float64) (float64, error) {
	if !isFinite(baseline) {
		return 0, &InvalidInputError{Field: "baseline", Value: baseline, Reason: "must be finite"}
	}
	if baseline < 0 {
		return 0, &InvalidInputError{Field: "baseline", Value: baseline, Reason: "must not be negative"}
	}

	intermediate := defaultIntermediate
	if conditionMet {
		intermediate = p.Discount
	}
	if !isFinite(intermediate) {
		return 0, &InvalidInputError{Field: "default_intermediate", Value: intermediate, Reason: "must be finite"}
	}

	result := baseline - intermediate
	if !isFinite(result) {
		return 0, &InvalidInputError{Field: "default_intermediate", Value: intermediate, Reason: "result overflows"}
	}
	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
