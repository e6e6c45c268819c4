package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/gitops"
)

func newInitCommand() *cobra.Command {
	var baseCurrency string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Tally project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, baseCurrency)
		},
	}

	cmd.Flags().StringVar(&baseCurrency, "base-currency", "DKK", "ledger base currency")

	return cmd
}

func runInit(dir, baseCurrency string) error {
	// Create directory structure.
	dirs := []string{
		"rules",
		"rates",
		"logs",
		"statements",
		filepath.Join("statements", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write tally.yaml.
	cfg := config.Default(baseCurrency)
	if err := config.Save(filepath.Join(dir, configFile), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write empty categorization rules.
	rulesContent := "rules: []\n"
	if err := os.WriteFile(filepath.Join(dir, rulesFile), []byte(rulesContent), 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	// Write the rates CSV header.
	ratesContent := "Date;From;To;Rate\n"
	if err := os.WriteFile(filepath.Join(dir, cfg.Ledger.RatesPath), []byte(ratesContent), 0o644); err != nil {
		return fmt.Errorf("writing rates file: %w", err)
	}

	// Write .gitignore.
	gitignore := "statements/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Initialize git and create initial commit.
	if cfg.Git.AutoCommit {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
		hash, err := gitops.CommitAll(dir, "init: Initialize tally project", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Printf("Initialized Tally project at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Printf("Initialized Tally project at %s\n", dir)
	return nil
}
