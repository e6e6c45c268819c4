package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Ledger     LedgerConfig      `yaml:"ledger"`
	Statements []StatementSource `yaml:"statements,omitempty"`
	Git        GitConfig         `yaml:"git"`
}

// LedgerConfig locates the ledger and fixes its base currency.
type LedgerConfig struct {
	Path         string `yaml:"path"` // relative to the project root
	BaseCurrency string `yaml:"base_currency"`
	RatesPath    string `yaml:"rates_path"` // exchange-rate CSV, relative to the project root
}

// StatementSource maps statement file names to a bank adapter.
type StatementSource struct {
	Bank  string `yaml:"bank"`
	Match string `yaml:"match"` // filename glob, e.g. "wise-*.csv"
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(baseCurrency string) *Config {
	return &Config{
		Ledger: LedgerConfig{
			Path:         "ledger.csv",
			BaseCurrency: baseCurrency,
			RatesPath:    "rates/rates.csv",
		},
		Statements: []StatementSource{
			{Bank: "danskebank", Match: "danske-*.csv"},
			{Bank: "wise", Match: "wise-*.csv"},
			{Bank: "norwegian", Match: "norwegian-*.xlsx"},
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}
