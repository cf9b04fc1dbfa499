package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// execute runs the root command with fresh flag state and captures output.
// Cobra commands are package globals, so flags are reset between runs.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)
	// Keep tests independent of any .env in the working directory
	args = append(args, "--env-file", filepath.Join(t.TempDir(), ".env"))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand(t *testing.T) {
	if rootCmd == nil {
		t.Error("rootCmd should not be nil")
	}
	if rootCmd.Use != "resolvtron" {
		t.Errorf("expected rootCmd.Use to be 'resolvtron', got %q", rootCmd.Use)
	}
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should be set")
	}
	if commit == "" {
		t.Error("commit should be set")
	}
	if date == "" {
		t.Error("date should be set")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	for _, name := range []string{"resolve", "classify", "eval"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "resolve", "--log-level", "loud")
	if err == nil {
		t.Error("expected error for unknown log level")
	}
}
