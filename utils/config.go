package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sheikhrachel/go-lifelike/model"
	"github.com/sheikhrachel/go-lifelike/rules"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the configuration for the simulation
type Config struct {
	Size                int           `json:"size" yaml:"size"`
	Rule                string        `json:"rule" yaml:"rule"`
	FrameRate           time.Duration `json:"frame_rate" yaml:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart" yaml:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold" yaml:"stagnation_threshold"`
	UseMemoryPool       bool          `json:"use_memory_pool" yaml:"use_memory_pool"`
	MaxGenerations      int           `json:"max_generations" yaml:"max_generations"`
	RandomDensity       float64       `json:"random_density" yaml:"random_density"`
	InjectionCount      int           `json:"injection_count" yaml:"injection_count"`
	Seed                int64         `json:"seed" yaml:"seed"`
	Pattern             string        `json:"pattern" yaml:"pattern"`
	ShowAxis            bool          `json:"show_axis" yaml:"show_axis"`
	StepByStep          bool          `json:"step_by_step" yaml:"step_by_step"`
	DBPath              string        `json:"db_path" yaml:"db_path"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Size:                30,
		Rule:                rules.Default.String(),
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		UseMemoryPool:       true,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		DBPath:              "~/.lifelike/runs.db",
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension. Fields missing from the file keep their defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal yaml from file: %+v", filename)
		}
	default:
		if err = json.Unmarshal(data, &config); err != nil {
			return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
		}
	}

	return config, nil
}

// RuleSet resolves Rule, which may be a preset name or a rule string
func (c Config) RuleSet() (rules.RuleSet, error) {
	if c.Rule == "" {
		return rules.Default, nil
	}
	rs, err := rules.Lookup(c.Rule)
	if err != nil {
		return rules.RuleSet{}, errors.Wrap(err, "[RuleSet]")
	}
	return rs, nil
}

// Validate checks the fields that would otherwise fail at run time
func (c Config) Validate() error {
	switch {
	case c.Size < 0 || c.Size > model.MaxSideLength:
		return errors.Wrapf(ErrInvalidConfig, "size must be within [0, %d], got %d", model.MaxSideLength, c.Size)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Wrapf(ErrInvalidConfig, "random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.FrameRate < 0:
		return errors.Wrapf(ErrInvalidConfig, "frame_rate must not be negative, got %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Wrapf(ErrInvalidConfig, "max_generations must not be negative, got %d", c.MaxGenerations)
	case c.StagnationThreshold < 0 || c.InjectionCount < 0:
		return errors.Wrap(ErrInvalidConfig, "stagnation_threshold and injection_count must not be negative")
	}
	if _, err := c.RuleSet(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "rule: %v", err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "[ExpandHome] cannot expand home directory")
	}
	return filepath.Join(home, path[1:]), nil
}
