package report

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/swantron/resolvtron/internal/evaluator"
)

// Mode controls how a table is rendered
type Mode int

const (
	ASCII    Mode = iota // Fixed-width terminal table
	Markdown             // GitHub-flavoured Markdown table
)

// ToTable renders one row per case followed by a totals footer
func ToTable(result *evaluator.EvaluationResult, mode Mode) string {
	w := table.NewWriter()
	if mode == ASCII {
		w.SetStyle(table.StyleLight)
	}

	w.AppendHeader(table.Row{"Case", "Kind", "Condition", "Intermediate", "Result", "Status"})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignCenter},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight, WidthMax: 60},
	})

	for _, cr := range result.CaseResults {
		status := "✅"
		if !cr.Valid() {
			status = "❌"
		}
		intermediate := "-"
		if cr.Valid() {
			intermediate = formatNumber(cr.Intermediate)
		}
		w.AppendRow(table.Row{cr.Name, string(cr.Kind), cr.ConditionMet, intermediate, outcome(cr), status})
	}

	w.AppendFooter(table.Row{"Total", result.TotalCases, "", "",
		fmt.Sprintf("%d valid / %d invalid", result.ValidCases, result.InvalidCases), ""})

	if mode == Markdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}
