package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/creditrisk/model"
	"github.com/rustyeddy/creditrisk/risk"
)

// Config represents the complete risk-engine configuration
type Config struct {
	Regime      risk.Regime      `json:"regime" yaml:"regime"`
	Scenarios   risk.ScenarioSet `json:"scenarios" yaml:"scenarios"`
	RiskWeights risk.Tiers       `json:"risk_weights" yaml:"risk_weights"`
	Categories  risk.Categories  `json:"categories" yaml:"categories"`
	LGD         risk.LGDModel    `json:"lgd" yaml:"lgd"`
	Model       ModelConfig      `json:"model" yaml:"model"`
	Strict      bool             `json:"strict" yaml:"strict"`
	Journal     JournalConfig    `json:"journal" yaml:"journal"`
	Log         LogConfig        `json:"log" yaml:"log"`
	Metrics     MetricsConfig    `json:"metrics" yaml:"metrics"`
}

// ModelConfig holds a fitted logistic PD model. Features name the input
// columns in coefficient order.
type ModelConfig struct {
	Intercept float64   `json:"intercept" yaml:"intercept"`
	Features  []Feature `json:"features,omitempty" yaml:"features,omitempty"`
}

type Feature struct {
	Name        string  `json:"name" yaml:"name"`
	Coefficient float64 `json:"coefficient" yaml:"coefficient"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type      string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	RunsFile  string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	LoansFile string `json:"loans_file,omitempty" yaml:"loans_file,omitempty"`
	DBPath    string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type LogConfig struct {
	Level string `json:"level" yaml:"level"` // debug|info|warn|error
}

type MetricsConfig struct {
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"` // e.g. ":9102"; empty disables the server
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Sections left out of the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	// yaml merges maps into existing ones; start scenarios empty so the
	// file's set replaces the default set when given.
	cfg.Scenarios = nil

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		cfg.Scenarios = nil
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}
	if cfg.Scenarios == nil {
		cfg.Scenarios = risk.DefaultScenarios()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Regime.Validate(); err != nil {
		return err
	}
	if err := c.Scenarios.Validate(); err != nil {
		return err
	}
	if err := c.RiskWeights.Validate(); err != nil {
		return err
	}
	if err := c.Categories.Validate(); err != nil {
		return err
	}
	if err := c.LGD.Validate(); err != nil {
		return err
	}
	for i, f := range c.Model.Features {
		if f.Name == "" {
			return fmt.Errorf("model.features[%d].name is required", i)
		}
	}
	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.RunsFile == "" {
			return fmt.Errorf("journal runs_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'csv', 'sqlite' or 'none'")
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with the Basel III defaults
func Default() *Config {
	return &Config{
		Regime:      risk.DefaultRegime(),
		Scenarios:   risk.DefaultScenarios(),
		RiskWeights: risk.DefaultTiers(),
		Categories:  risk.DefaultCategories(),
		LGD:         risk.DefaultLGDModel(),
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./creditrisk.sqlite",
		},
		Log: LogConfig{Level: "info"},
	}
}

// Engine builds a risk engine from the configured values.
func (c *Config) Engine(logger *zap.Logger) *risk.Engine {
	return &risk.Engine{
		Tiers:      c.RiskWeights,
		Categories: c.Categories,
		Scenarios:  c.Scenarios,
		Regime:     c.Regime,
		Strict:     c.Strict,
		Logger:     logger,
	}
}

// Scorer returns the configured logistic model and its feature names, or
// false when no features are configured.
func (c *Config) Scorer() (model.Logistic, []string, bool) {
	if len(c.Model.Features) == 0 {
		return model.Logistic{}, nil, false
	}
	m := model.Logistic{Intercept: c.Model.Intercept}
	names := make([]string, len(c.Model.Features))
	for i, f := range c.Model.Features {
		names[i] = f.Name
		m.Coefficients = append(m.Coefficients, f.Coefficient)
	}
	return m, names, true
}
