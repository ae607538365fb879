package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shadowdp-go/shadowdp/schema"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchemaJSON []byte

// Config is cmd/shadowdp's resolved configuration: where to find the
// verification toolchain, what to pass it, and the defaults to fall
// back on when a program doesn't annotate its own budget or goal.
type Config struct {
	SolverHome     string   `yaml:"solverHome,omitempty" json:"solverHome,omitempty"`
	SolverChecksum string   `yaml:"solverChecksum,omitempty" json:"solverChecksum,omitempty"`
	ExtraArgs      []string `yaml:"extraArgs,omitempty" json:"extraArgs,omitempty"`
	Epsilon        float64  `yaml:"epsilon,omitempty" json:"epsilon,omitempty"`
	Goal           int      `yaml:"goal,omitempty" json:"goal,omitempty"`
	OutDir         string   `yaml:"outDir,omitempty" json:"outDir,omitempty"`
}

var validatorOnce *schema.Validator

func configValidator() (*schema.Validator, error) {
	if validatorOnce != nil {
		return validatorOnce, nil
	}
	v, err := schema.NewValidator(configSchemaJSON)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	validatorOnce = v
	return v, nil
}

// Load reads a YAML or JSON config file, validates it against the
// embedded schema, and returns the populated Config. A missing path
// (os.IsNotExist) is not an error: Load returns the zero Config so a
// caller can fall back to flag defaults and environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	// #nosec G304 -- path is an operator-supplied --config flag
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	v, err := configValidator()
	if err != nil {
		return nil, err
	}

	diags, err := v.ValidateFile(path)
	if err != nil {
		return nil, fmt.Errorf("validate config %s: %w", path, err)
	}
	if len(diags) > 0 {
		return nil, fmt.Errorf("config %s failed validation: %s: %s", path, diags[0].Pointer, diags[0].Message)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Resolve searches GetAppConfigPaths("shadowdp") in order and loads the
// first file that exists, or returns the zero Config if none do.
func Resolve() (*Config, error) {
	for _, candidate := range GetAppConfigPaths("shadowdp") {
		if _, err := os.Stat(candidate); err == nil {
			return Load(candidate)
		}
	}
	return &Config{}, nil
}

// SaveConfig writes config as YAML to path, creating parent directories
// as needed.
func SaveConfig(config *Config, path string) error {
	dir := filepath.Dir(path)
	// #nosec G301 -- config directories use 0755 for multi-user access compatibility
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// #nosec G304 -- intentional user-controlled file creation for saving configuration to user-specified path
	return os.WriteFile(path, data, 0o644)
}
