package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/swantron/resolvtron/internal/resolve"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "RESOLVTRON_"

// DefaultEnvFile is read when present; a missing file is not an error
const DefaultEnvFile = ".env"

// envKeys maps environment variable suffixes to policy fields
var envKeys = []struct {
	name  string
	field func(*resolve.Policy) *float64
}{
	{"DISCOUNT", func(p *resolve.Policy) *float64 { return &p.Discount }},
	{"HIGH_SCORE", func(p *resolve.Policy) *float64 { return &p.HighScore }},
	{"THRESHOLD", func(p *resolve.Policy) *float64 { return &p.Threshold }},
	{"SENTINEL", func(p *resolve.Policy) *float64 { return &p.Sentinel }},
}

// Load builds a policy from defaults, the YAML file at configPath (skipped
// when empty), the dotenv file at envPath and the process environment,
// in that order. The result is validated before it is returned.
func Load(configPath, envPath string) (resolve.Policy, error) {
	policy := resolve.DefaultPolicy()

	if configPath != "" {
		if err := loadYAML(configPath, &policy); err != nil {
			return resolve.Policy{}, err
		}
	}

	dotenv, err := readDotenv(envPath)
	if err != nil {
		return resolve.Policy{}, err
	}

	if err := applyEnv(&policy, dotenv); err != nil {
		return resolve.Policy{}, err
	}

	if err := policy.Validate(); err != nil {
		return resolve.Policy{}, fmt.Errorf("invalid policy: %w", err)
	}

	return policy, nil
}

func loadYAML(path string, policy *resolve.Policy) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(policy); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// readDotenv returns the key/values of a dotenv file without touching the
// process environment. An empty path or missing file yields no values.
func readDotenv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

// applyEnv overrides policy fields; the process environment wins over dotenv
func applyEnv(policy *resolve.Policy, dotenv map[string]string) error {
	for _, key := range envKeys {
		name := EnvPrefix + key.name

		raw, ok := os.LookupEnv(name)
		if !ok {
			raw, ok = dotenv[name]
		}
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, raw, err)
		}
		*key.field(policy) = v
	}
	return nil
}
