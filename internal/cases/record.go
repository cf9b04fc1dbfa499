package cases

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseRecords parses the line-oriented record format:
//
//	CASE:member
//	KIND:discount
//	COND:true
//	BASE:100
//	DEF:0
//	end_of_record
//
// Score records may also carry SCORE, THRESH and SENT. Lines starting
// with '#' are comments. Unlike a lenient reader, any malformed value is
// reported with its line number instead of being skipped.
func ParseRecords(filePath string) (*Set, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open record case file: %w", err)
	}
	defer file.Close()

	set := &Set{Source: filePath, Format: FormatRecord}

	scanner := bufio.NewScanner(file)
	var current *Case
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == "end_of_record" {
			if current == nil {
				return nil, fmt.Errorf("%s:%d: end_of_record without CASE", filePath, lineNum)
			}
			set.Cases = append(set.Cases, *current)
			current = nil
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected KEY:value, got %q", filePath, lineNum, line)
		}
		value = strings.TrimSpace(value)

		// CASE starts a new record
		if key == "CASE" {
			if current != nil {
				return nil, fmt.Errorf("%s:%d: CASE %q before end_of_record of %q", filePath, lineNum, value, current.Name)
			}
			current = &Case{Name: value, Position: lineNum}
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("%s:%d: %s outside of a record", filePath, lineNum, key)
		}

		if err := applyField(current, key, value); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", filePath, lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading record case file: %w", err)
	}

	if current != nil {
		return nil, fmt.Errorf("%s: record %q is missing end_of_record", filePath, current.Name)
	}

	return finish(set)
}

func applyField(c *Case, key, value string) error {
	switch key {
	case "KIND":
		c.Kind = Kind(strings.ToLower(value))
	case "COND":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid COND value %q", value)
		}
		c.ConditionMet = b
	case "BASE":
		return parseNumber(key, value, &c.Baseline)
	case "DEF":
		return parseOptional(key, value, &c.DefaultIntermediate)
	case "SCORE":
		return parseOptional(key, value, &c.Score)
	case "THRESH":
		return parseOptional(key, value, &c.Threshold)
	case "SENT":
		return parseOptional(key, value, &c.Sentinel)
	default:
		return fmt.Errorf("unknown field %s", key)
	}
	return nil
}

func parseNumber(key, value string, dst *float64) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid %s value %q", key, value)
	}
	*dst = v
	return nil
}

func parseOptional(key, value string, dst **float64) error {
	var v float64
	if err := parseNumber(key, value, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
