package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/swantron/resolvtron/internal/cases"
	"github.com/swantron/resolvtron/internal/evaluator"
	"github.com/swantron/resolvtron/internal/logging"
	"github.com/swantron/resolvtron/pkg/report"
)

var (
	casesFile        string
	evalOutputFormat string
)

var evalCmd = &cobra.Command{
	Use:   "eval [cases-file]",
	Short: "Evaluate every case in a case file",
	Long: `Evaluate a YAML, JSON or record-format case file. Each case is resolved
with the loaded policy; cases with out-of-domain inputs are reported and
make the command exit non-zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringVarP(&casesFile, "file", "f", "", "Path to case file (YAML, JSON or record format)")
	evalCmd.Flags().StringVarP(&evalOutputFormat, "output", "o", "text", "Output format: text, json, markdown, table")

	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	path := casesFile
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("case file is required (use --file or -f)")
	}

	// Parse cases
	set, err := cases.Parse(path)
	if err != nil {
		return fmt.Errorf("failed to parse case file: %w", err)
	}
	logging.New("cli").Info("cases parsed", "source", set.Source, "format", set.Format, "count", len(set.Cases))

	if len(set.Cases) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cases found.")
		return nil
	}

	// Evaluate
	result, err := evaluator.Evaluate(set, policy)
	if err != nil {
		return fmt.Errorf("failed to evaluate: %w", err)
	}

	// Output results
	out := cmd.OutOrStdout()
	switch evalOutputFormat {
	case "json":
		data, err := report.ToJSON(result)
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "markdown":
		fmt.Fprint(out, report.ToMarkdown(result))
	case "table":
		fmt.Fprintln(out, report.ToTable(result, report.ASCII))
	case "text":
		outputText(out, result)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: text, json, markdown, table)", evalOutputFormat)
	}

	if !result.AllValid() {
		return fmt.Errorf("%d of %d cases have invalid input", result.InvalidCases, result.TotalCases)
	}
	return nil
}

func outputText(w io.Writer, result *evaluator.EvaluationResult) {
	fmt.Fprintln(w, "Resolvtron Case Evaluation")
	fmt.Fprintln(w, "==========================")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Cases: %d (%d valid, %d invalid)\n", result.TotalCases, result.ValidCases, result.InvalidCases)
	if m := result.ScoreMetrics; m != nil && m.CaseCount > 0 {
		fmt.Fprintf(w, "Scores: %d high, %d below threshold\n", m.HighCount, m.BelowCount)
	}
	fmt.Fprintln(w)

	if result.AllValid() {
		fmt.Fprintln(w, "✓ All cases resolved")
	} else {
		fmt.Fprintln(w, "✗ Some cases have invalid input")
	}
	fmt.Fprintln(w)

	// Per-case results
	fmt.Fprintln(w, "Per-Case Results:")
	fmt.Fprintln(w, "-----------------")
	for _, cr := range result.CaseResults {
		fmt.Fprintf(w, "\n%s (%s, condition met: %t)\n", cr.Name, cr.Kind, cr.ConditionMet)
		switch {
		case !cr.Valid():
			fmt.Fprintf(w, "  Error: %v\n", cr.Err)
		case cr.Kind == cases.KindScore:
			fmt.Fprintf(w, "  Score: %g -> %s\n", cr.Intermediate, cr.Classification)
		default:
			fmt.Fprintf(w, "  Intermediate: %g\n", cr.Intermediate)
			fmt.Fprintf(w, "  Result: %g\n", cr.Value)
		}
	}
}
