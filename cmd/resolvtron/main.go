package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/swantron/resolvtron/internal/config"
	"github.com/swantron/resolvtron/internal/logging"
	"github.com/swantron/resolvtron/internal/resolve"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"

	configFile string
	envFile    string
	logLevel   string
	logFormat  string

	// policy is loaded once per invocation before any subcommand runs
	policy = resolve.DefaultPolicy()

	rootCmd = &cobra.Command{
		Use:   "resolvtron",
		Short: "Resolve conditionally assigned values with explicit defaults",
		Long: `Resolvtron computes values that depend on a condition, guaranteeing that
every branch of the condition assigns a concrete number before it is used.

It resolves discounts against a baseline, classifies conditionally assigned
scores against a threshold, and evaluates whole case files of either kind.`,
		Version:           fmt.Sprintf("%s (commit: %s, date: %s)", version, commit, date),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML policy file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Path to a dotenv file with RESOLVTRON_* overrides")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")
}

func setup(cmd *cobra.Command, args []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logging.Init(level, logFormat, cmd.ErrOrStderr())

	loaded, err := config.Load(configFile, envFile)
	if err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}
	policy = loaded

	logging.New("cli").Debug("policy loaded",
		"discount", policy.Discount,
		"high_score", policy.HighScore,
		"threshold", policy.Threshold,
		"sentinel", policy.Sentinel)
	return nil
}

func main() {
	// Subcommands are added in their respective files via init() functions

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
