package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/config"
	"github.com/tallyhq/tally/internal/gitops"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/pipeline"
	"github.com/tallyhq/tally/internal/rates"
	"github.com/tallyhq/tally/internal/resolver"
	"github.com/tallyhq/tally/internal/rules"
	"github.com/tallyhq/tally/internal/runlog"
)

func newImportCommand() *cobra.Command {
	var bank string
	var projectDir string
	var noInput bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import statement exports into the ledger",
		Long: `Import parses one statement file (or every pending file under statements/),
normalizes it into the ledger schema and merges it, dropping rows already
recorded.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runImport(absDir, file, bank, noInput)
		},
	}

	cmd.Flags().StringVar(&bank, "bank", "", "bank adapter name (danskebank, wise, norwegian)")
	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "skip the interactive categorization step")

	return cmd
}

// importItem is one statement queued for a run.
type importItem struct {
	path string
	name string
	bank string
	scan bool // found by scanning statements/, moved to processed/ afterwards
}

func runImport(root, file, bank string, noInput bool) error {
	cfg, err := config.Load(filepath.Join(root, configFile))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := rules.Load(filepath.Join(root, rulesFile))
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	table, err := rates.Load(filepath.Join(root, cfg.Ledger.RatesPath))
	if err != nil {
		return fmt.Errorf("loading rates: %w", err)
	}

	var prompter resolver.Prompter
	if !noInput {
		prompter = resolver.NewTerminal(os.Stdin, os.Stdout)
	}

	pipe := &pipeline.Pipeline{
		Registry: adapter.DefaultRegistry(nil),
		Oracle:   table,
		Store:    store,
		Prompter: prompter,
		Ledger:   ledger.NewService(filepath.Join(root, cfg.Ledger.Path)),
		Base:     cfg.Ledger.BaseCurrency,
	}

	items, err := collectItems(root, cfg, file, bank)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("Nothing to import.")
		return nil
	}

	var entries []runlog.Entry
	for _, item := range items {
		summary, err := pipe.Run(item.path, item.bank)
		if err != nil {
			return fmt.Errorf("importing %s: %w", item.name, err)
		}

		if summary.Skipped != "" {
			fmt.Fprintf(os.Stderr, "skipping %s: %s\n", item.name, summary.Skipped)
			continue
		}

		fmt.Printf("%s: %d parsed, %d merged, %d duplicates dropped", item.name, summary.Parsed, summary.Merged, summary.Duplicates)
		if summary.Unresolved > 0 {
			fmt.Printf(", %d with unresolved rates", summary.Unresolved)
		}
		fmt.Println()

		if item.scan {
			if err := adapter.MarkProcessed(root, item.name); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		entries = append(entries, runlog.Entry{
			Timestamp:  time.Now(),
			File:       item.name,
			Bank:       item.bank,
			Parsed:     summary.Parsed,
			Merged:     summary.Merged,
			Duplicates: summary.Duplicates,
		})
	}

	if len(entries) == 0 {
		return nil
	}

	hash := commitImport(root, cfg)
	for i := range entries {
		entries[i].CommitHash = hash
	}

	if err := runlog.Append(root, entries); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write import log: %v\n", err)
	}
	return nil
}

// collectItems resolves which files to import. With an explicit file the bank
// comes from --bank or a config glob; without one every file under
// statements/ matching a config glob is queued.
func collectItems(root string, cfg *config.Config, file, bank string) ([]importItem, error) {
	if file != "" {
		name := filepath.Base(file)
		if bank == "" {
			bank = matchBank(cfg, name)
			if bank == "" {
				return nil, fmt.Errorf("no --bank given and no statement glob matches %s", name)
			}
		}
		return []importItem{{path: file, name: name, bank: bank}}, nil
	}

	files, err := adapter.Scan(root)
	if err != nil {
		return nil, err
	}

	var items []importItem
	for _, f := range files {
		b := bank
		if b == "" {
			b = matchBank(cfg, f.Name)
		}
		if b == "" {
			fmt.Fprintf(os.Stderr, "skipping %s: no statement glob matches\n", f.Name)
			continue
		}
		items = append(items, importItem{path: f.Path, name: f.Name, bank: b, scan: true})
	}
	return items, nil
}

// matchBank returns the bank of the first configured glob matching name.
func matchBank(cfg *config.Config, name string) string {
	for _, src := range cfg.Statements {
		if ok, err := filepath.Match(src.Match, name); err == nil && ok {
			return src.Bank
		}
	}
	return ""
}

// commitImport auto-commits ledger and rule changes when configured. Failure
// to commit is a warning, the import itself already succeeded.
func commitImport(root string, cfg *config.Config) string {
	if !cfg.Git.AutoCommit || !gitops.IsRepo(root) {
		return ""
	}

	changed, err := gitops.HasChanges(root)
	if err != nil || !changed {
		return ""
	}

	hash, err := gitops.CommitAll(root, "import: update ledger", cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: auto-commit failed: %v\n", err)
		return ""
	}
	return hash
}
