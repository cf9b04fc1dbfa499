package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/swantron/resolvtron/internal/cases"
	"github.com/swantron/resolvtron/internal/evaluator"
	"github.com/swantron/resolvtron/internal/resolve"
)

// EvaluationReport represents the JSON output structure for the eval command
type EvaluationReport struct {
	Source       string         `json:"source,omitempty"`
	Policy       resolve.Policy `json:"policy"`
	TotalCases   int            `json:"total_cases"`
	ValidCases   int            `json:"valid_cases"`
	InvalidCases int            `json:"invalid_cases"`
	AllValid     bool           `json:"all_valid"`
	Cases        []*CaseReport  `json:"cases"`
	Discount     *KindReport    `json:"discount,omitempty"`
	Score        *KindReport    `json:"score,omitempty"`
}

// CaseReport represents one case's outcome
type CaseReport struct {
	Name           string   `json:"name"`
	Kind           string   `json:"kind"`
	Position       int      `json:"position,omitempty"`
	ConditionMet   bool     `json:"condition_met"`
	Intermediate   *float64 `json:"intermediate,omitempty"`
	Value          *float64 `json:"value,omitempty"`
	Classification string   `json:"classification,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// KindReport represents totals for one case kind
type KindReport struct {
	CaseCount         int `json:"case_count"`
	InvalidCount      int `json:"invalid_count"`
	ConditionMetCount int `json:"condition_met_count"`
	HighCount         int `json:"high_count,omitempty"`
	BelowCount        int `json:"below_threshold_count,omitempty"`
}

// ToJSON converts an EvaluationResult to JSON format
func ToJSON(result *evaluator.EvaluationResult) ([]byte, error) {
	report := &EvaluationReport{
		Source:       result.Source,
		Policy:       result.Policy,
		TotalCases:   result.TotalCases,
		ValidCases:   result.ValidCases,
		InvalidCases: result.InvalidCases,
		AllValid:     result.AllValid(),
		Cases:        make([]*CaseReport, 0, len(result.CaseResults)),
		Discount:     kindReport(result.DiscountMetrics),
		Score:        kindReport(result.ScoreMetrics),
	}

	for _, cr := range result.CaseResults {
		report.Cases = append(report.Cases, caseReport(cr))
	}

	return json.MarshalIndent(report, "", "  ")
}

func caseReport(cr *evaluator.CaseResult) *CaseReport {
	out := &CaseReport{
		Name:         cr.Name,
		Kind:         string(cr.Kind),
		Position:     cr.Position,
		ConditionMet: cr.ConditionMet,
	}
	if !cr.Valid() {
		out.Error = cr.Err.Error()
		return out
	}
	intermediate := cr.Intermediate
	out.Intermediate = &intermediate
	if cr.Kind == cases.KindScore {
		out.Classification = string(cr.Classification)
	} else {
		v := cr.Value
		out.Value = &v
	}
	return out
}

func kindReport(m *evaluator.KindMetrics) *KindReport {
	if m == nil || m.CaseCount == 0 {
		return nil
	}
	return &KindReport{
		CaseCount:         m.CaseCount,
		InvalidCount:      m.InvalidCount,
		ConditionMetCount: m.ConditionMetCount,
		HighCount:         m.HighCount,
		BelowCount:        m.BelowCount,
	}
}

// outcome renders a case's result cell for text formats
func outcome(cr *evaluator.CaseResult) string {
	if !cr.Valid() {
		return cr.Err.Error()
	}
	if cr.Kind == cases.KindScore {
		return cr.Classification.String()
	}
	return formatNumber(cr.Value)
}

func formatNumber(v float64) string {
	return fmt.Sprintf("%g", v)
}

// ToMarkdown converts an EvaluationResult to Markdown format
func ToMarkdown(result *evaluator.EvaluationResult) string {
	var sb strings.Builder

	sb.WriteString("# Conditional Value Report\n\n")

	sb.WriteString("## Summary\n\n")
	if result.Source != "" {
		sb.WriteString(fmt.Sprintf("- **Source**: `%s`\n", result.Source))
	}
	sb.WriteString(fmt.Sprintf("- **Cases**: %d\n", result.TotalCases))
	sb.WriteString(fmt.Sprintf("- **Valid**: %d\n", result.ValidCases))
	sb.WriteString(fmt.Sprintf("- **Invalid**: %d\n", result.InvalidCases))
	sb.WriteString(fmt.Sprintf("- **Policy**: discount %s, high score %s, threshold %s, sentinel %s\n",
		formatNumber(result.Policy.Discount), formatNumber(result.Policy.HighScore),
		formatNumber(result.Policy.Threshold), formatNumber(result.Policy.Sentinel)))

	status := "❌ FAIL"
	if result.AllValid() {
		status = "✅ PASS"
	}
	sb.WriteString(fmt.Sprintf("- **Status**: %s\n\n", status))

	if m := result.ScoreMetrics; m != nil && m.CaseCount > 0 {
		sb.WriteString("### Score Cases\n\n")
		sb.WriteString(fmt.Sprintf("- **Cases**: %d\n", m.CaseCount))
		sb.WriteString(fmt.Sprintf("- **High**: %d | **Below threshold**: %d\n\n", m.HighCount, m.BelowCount))
	}

	if len(result.CaseResults) > 0 {
		sb.WriteString("## Case Details\n\n")
		sb.WriteString(ToTable(result, Markdown))
		sb.WriteString("\n\n")
	}

	return sb.String()
}
