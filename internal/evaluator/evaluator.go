package evaluator

import (
	"errors"
	"fmt"

	"github.com/swantron/resolvtron/internal/cases"
	"github.com/swantron/resolvtron/internal/logging"
	"github.com/swantron/resolvtron/internal/resolve"
)

// EvaluationResult contains the outcome of running every case in a set
type EvaluationResult struct {
	// Source is the case file the results came from
	Source string
	// Policy is the policy the cases were resolved with
	Policy resolve.Policy
	// CaseResults holds one entry per case, in file order
	CaseResults []*CaseResult

	TotalCases   int
	ValidCases   int
	InvalidCases int

	// DiscountMetrics and ScoreMetrics break the totals down by case kind
	DiscountMetrics *KindMetrics
	ScoreMetrics    *KindMetrics
}

// KindMetrics tracks totals for one kind of case
type KindMetrics struct {
	CaseCount    int
	InvalidCount int
	// ConditionMetCount is the number of cases that took the assigning branch
	ConditionMetCount int
	// HighCount and BelowCount are only populated for score cases
	HighCount  int
	BelowCount int
}

// CaseResult contains the outcome for a single case
type CaseResult struct {
	Name         string
	Kind         cases.Kind
	Position     int
	ConditionMet bool
	// Intermediate is the value the resolver used; for score cases it is
	// the score after the sentinel was applied. Zero when Err is set.
	Intermediate float64
	// Value is set for discount cases
	Value float64
	// Classification is set for score cases
	Classification resolve.Classification
	// Err is non-nil when the case inputs were out of domain
	Err error
}

// Valid reports whether the case resolved without an input error
func (r *CaseResult) Valid() bool {
	return r.Err == nil
}

// Evaluate resolves every case in the set with the given policy.
// Out-of-domain inputs are recorded on the case; any other error aborts.
func Evaluate(set *cases.Set, policy resolve.Policy) (*EvaluationResult, error) {
	if set == nil {
		return nil, fmt.Errorf("case set cannot be nil")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	log := logging.New("evaluator")

	result := &EvaluationResult{
		Source:          set.Source,
		Policy:          policy,
		CaseResults:     make([]*CaseResult, 0, len(set.Cases)),
		DiscountMetrics: &KindMetrics{},
		ScoreMetrics:    &KindMetrics{},
	}

	for _, c := range set.Cases {
		caseResult, err := evaluateCase(c, policy)
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", c.Name, err)
		}
		result.CaseResults = append(result.CaseResults, caseResult)

		metrics := result.DiscountMetrics
		if c.Kind == cases.KindScore {
			metrics = result.ScoreMetrics
		}
		metrics.CaseCount++
		if c.ConditionMet {
			metrics.ConditionMetCount++
		}

		result.TotalCases++
		if !caseResult.Valid() {
			result.InvalidCases++
			metrics.InvalidCount++
			log.Warn("case rejected", "case", c.Name, "position", c.Position, "error", caseResult.Err)
			continue
		}
		result.ValidCases++

		switch caseResult.Classification {
		case resolve.ClassHigh:
			metrics.HighCount++
		case resolve.ClassBelowThreshold:
			metrics.BelowCount++
		}

		log.Debug("case resolved", "case", c.Name, "kind", c.Kind, "condition", c.ConditionMet)
	}

	return result, nil
}

// evaluateCase resolves one case; input errors are stored on the result
func evaluateCase(c cases.Case, policy resolve.Policy) (*CaseResult, error) {
	caseResult := &CaseResult{
		Name:         c.Name,
		Kind:         c.Kind,
		Position:     c.Position,
		ConditionMet: c.ConditionMet,
	}

	var err error
	switch c.Kind {
	case cases.KindDiscount:
		var def float64
		switch {
		case c.ConditionMet:
			caseResult.Intermediate = policy.Discount
		case c.DefaultIntermediate == nil:
			return nil, fmt.Errorf("default intermediate is required when the condition is not met")
		default:
			def = *c.DefaultIntermediate
			caseResult.Intermediate = def
		}
		caseResult.Value, err = policy.Resolve(c.ConditionMet, c.Baseline, def)
	case cases.KindScore:
		p := policy
		if c.Score != nil {
			p.HighScore = *c.Score
		}
		if c.Threshold != nil {
			p.Threshold = *c.Threshold
		}
		if c.Sentinel != nil {
			p.Sentinel = *c.Sentinel
		}
		caseResult.Intermediate = p.ScoreFor(c.ConditionMet).ValueOr(p.Sentinel)
		caseResult.Classification, err = p.ResolveScore(c.ConditionMet)
	default:
		return nil, fmt.Errorf("unknown case kind %q", c.Kind)
	}

	if err != nil {
		if !errors.Is(err, resolve.ErrInvalidInput) {
			return nil, err
		}
		// Rejected inputs may be non-finite; keep them out of the result
		caseResult.Err = err
		caseResult.Intermediate = 0
		caseResult.Value = 0
	}

	return caseResult, nil
}

// AllValid returns true if every case resolved without an input error
func (r *EvaluationResult) AllValid() bool {
	return r.InvalidCases == 0
}

// InvalidResults returns the cases that were rejected, in file order
func (r *EvaluationResult) InvalidResults() []*CaseResult {
	var invalid []*CaseResult
	for _, cr := range r.CaseResults {
		if !cr.Valid() {
			invalid = append(invalid, cr)
		}
	}
	return invalid
}
