// Package config loads crochet's optional YAML configuration file
// (.crochet.yaml), centralizing the handful of settings that go beyond a
// single boolean/string flag, the same way the teacher's
// internal/eval_harness centralizes benchmark configuration in YAML
// rather than hand-written flag plumbing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is crochet's CLI configuration, loadable from a `.crochet.yaml`
// file in the working directory or an explicit path.
type Config struct {
	// ArrayPatternGaps is read from the `array_pattern_gaps` key and
	// defaults to false when unset. No other package consults it: it does
	// not set refutability.ArrayGapIsRefutable, and it does not change how
	// `[a, , b]`-style gaps in array patterns are inferred or lowered.
	ArrayPatternGaps bool `yaml:"array_pattern_gaps"`

	// DeclPath, if set, names a declaration manifest (internal/declloader)
	// to load into the initial Env before inferring a program.
	DeclPath string `yaml:"decl_path"`
}

// Default returns the zero-value configuration used when no config file
// is present.
func Default() *Config {
	return &Config{}
}

// Load reads and parses the YAML config file at path. A missing file is
// not an error: Load returns Default() so callers can always use the
// result unconditionally.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
