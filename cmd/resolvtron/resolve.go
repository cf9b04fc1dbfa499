package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	resolveCondition    bool
	resolveBaseline     float64
	resolveDefault      float64
	resolveOutputFormat string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Subtract a conditionally assigned discount from a baseline",
	Long: `Resolve a baseline against an intermediate value that is the policy
discount when --condition is set, and the --default value otherwise.`,
	Example: `  resolvtron resolve --condition --baseline 100
  resolvtron resolve --baseline 100 --default 5 -o json`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveCondition, "condition", false, "Whether the condition is met (assigns the policy discount)")
	resolveCmd.Flags().Float64VarP(&resolveBaseline, "baseline", "b", 0, "Baseline value (must not be negative)")
	resolveCmd.Flags().Float64VarP(&resolveDefault, "default", "d", 0, "Intermediate value used when the condition is not met")
	resolveCmd.Flags().StringVarP(&resolveOutputFormat, "output", "o", "text", "Output format: text, json")

	rootCmd.AddCommand(resolveCmd)
}

// ResolveOutput represents the JSON output of the resolve command
type ResolveOutput struct {
	ConditionMet bool    `json:"condition_met"`
	Baseline     float64 `json:"baseline"`
	Intermediate float64 `json:"intermediate"`
	Result       float64 `json:"result"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	result, err := policy.Resolve(resolveCondition, resolveBaseline, resolveDefault)
	if err != nil {
		return err
	}

	intermediate := resolveDefault
	if resolveCondition {
		intermediate = policy.Discount
	}

	out := cmd.OutOrStdout()
	switch resolveOutputFormat {
	case "json":
		data, err := json.MarshalIndent(ResolveOutput{
			ConditionMet: resolveCondition,
			Baseline:     resolveBaseline,
			Intermediate: intermediate,
			Result:       result,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "text":
		fmt.Fprintf(out, "%g\n", result)
		fmt.Fprintf(cmd.ErrOrStderr(), "baseline %g - intermediate %g (condition met: %t)\n",
			resolveBaseline, intermediate, resolveCondition)
	default:
		return fmt.Errorf("unsupported output format: %s (supported: text, json)", resolveOutputFormat)
	}

	return nil
}
