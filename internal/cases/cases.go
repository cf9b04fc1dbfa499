package cases

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects which resolver a case runs through
type Kind string

const (
	// KindDiscount subtracts the resolved intermediate from the baseline
	KindDiscount Kind = "discount"
	// KindScore classifies the resolved score against a threshold
	KindScore Kind = "score"
)

// Format identifies a case file encoding
type Format string

const (
	// FormatYAML is a YAML document with a top-level "cases" list
	FormatYAML Format = "yaml"
	// FormatJSON is a JSON object with a "cases" array
	FormatJSON Format = "json"
	// FormatRecord is the line-oriented CASE:/end_of_record format
	FormatRecord Format = "record"
)

// sniffSize bounds how much of a file DetectFormat inspects
const sniffSize = 1024

// Case is a single set of resolver inputs
type Case struct {
	Name string `yaml:"name" json:"name"`
	Kind Kind   `yaml:"kind" json:"kind"`
	// ConditionMet selects the branch that assigns the intermediate value
	ConditionMet bool `yaml:"condition" json:"condition"`
	// Baseline and DefaultIntermediate apply to discount cases.
	// DefaultIntermediate must be given when the condition is not met.
	Baseline            float64  `yaml:"baseline" json:"baseline"`
	DefaultIntermediate *float64 `yaml:"default,omitempty" json:"default,omitempty"`
	// Score, Threshold and Sentinel override the policy for score cases
	Score     *float64 `yaml:"score,omitempty" json:"score,omitempty"`
	Threshold *float64 `yaml:"threshold,omitempty" json:"threshold,omitempty"`
	Sentinel  *float64 `yaml:"sentinel,omitempty" json:"sentinel,omitempty"`

	// Position is where the case starts in its source file (line or index)
	Position int `yaml:"-" json:"-"`
}

// Set contains the cases read from one file
type Set struct {
	// Source is the file the cases were read from
	Source string
	Format Format
	Cases  []Case
}

// document is the YAML/JSON file layout
type document struct {
	Cases []Case `yaml:"cases" json:"cases"`
}

// Parse detects the file format and parses all cases in it
func Parse(filePath string) (*Set, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect case file format: %w", err)
	}

	switch format {
	case FormatYAML:
		return ParseYAML(filePath)
	case FormatJSON:
		return ParseJSON(filePath)
	case FormatRecord:
		return ParseRecords(filePath)
	default:
		return nil, fmt.Errorf("unsupported case file format: %s", format)
	}
}

// DetectFormat picks the format from the file extension, falling back to
// sniffing the first kilobyte of content
func DetectFormat(filePath string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".rec", ".cases":
		return FormatRecord, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, sniffSize))
	if err != nil {
		return "", err
	}

	content := string(data)
	trimmed := strings.TrimSpace(content)

	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return FormatJSON, nil
	}
	if strings.HasPrefix(trimmed, "CASE:") || strings.Contains(content, "end_of_record") {
		return FormatRecord, nil
	}

	return FormatYAML, nil
}

// finish fills defaults and rejects cases that cannot be evaluated
func finish(set *Set) (*Set, error) {
	seen := make(map[string]int, len(set.Cases))
	for i := range set.Cases {
		c := &set.Cases[i]
		if c.Position == 0 {
			c.Position = i + 1
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("case-%d", i+1)
		}
		if c.Kind == "" {
			c.Kind = KindDiscount
		}
		if c.Kind != KindDiscount && c.Kind != KindScore {
			return nil, fmt.Errorf("%s: case %q: unknown kind %q (supported: discount, score)", set.Source, c.Name, c.Kind)
		}
		if prev, ok := seen[c.Name]; ok {
			return nil, fmt.Errorf("%s: case %q at %d duplicates case at %d", set.Source, c.Name, c.Position, prev)
		}
		seen[c.Name] = c.Position

		// The default branch must be assigned explicitly
		if c.Kind == KindDiscount && !c.ConditionMet && c.DefaultIntermediate == nil {
			return nil, fmt.Errorf("%s: case %q at %d: default is required when the condition is not met", set.Source, c.Name, c.Position)
		}
	}
	return set, nil
}
