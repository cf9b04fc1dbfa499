package cases

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ParseYAML parses a YAML case file with a top-level "cases" list
func ParseYAML(filePath string) (*Set, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open YAML case file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML case file %s: %w", filePath, err)
	}

	// Empty document
	if root.Kind == 0 {
		return &Set{Source: filePath, Format: FormatYAML}, nil
	}

	// Node.Decode ignores KnownFields, so decode the bytes again strictly
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML case file %s: %w", filePath, err)
	}

	// Record the source line of each case for error messages
	for i, line := range caseLines(&root) {
		if i < len(doc.Cases) {
			doc.Cases[i].Position = line
		}
	}

	return finish(&Set{Source: filePath, Format: FormatYAML, Cases: doc.Cases})
}

// caseLines returns the line of every item under the top-level "cases" key
func caseLines(root *yaml.Node) []int {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value != "cases" {
			continue
		}
		var lines []int
		for _, item := range mapping.Content[i+1].Content {
			lines = append(lines, item.Line)
		}
		return lines
	}
	return nil
}

// ParseJSON parses a JSON case file of the form {"cases": [...]}
func ParseJSON(filePath string) (*Set, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open JSON case file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse JSON case file %s: %w", filePath, err)
	}

	return finish(&Set{Source: filePath, Format: FormatJSON, Cases: doc.Cases})
}
