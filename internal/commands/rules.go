package commands

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/rules"
)

func newRulesCommand() *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Categorization rule operations",
	}
	rulesCmd.AddCommand(newRulesCheckCommand())
	return rulesCmd
}

func newRulesCheckCommand() *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report conflicting and redundant rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(projectDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runRulesCheck(absDir)
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", "project directory")

	return cmd
}

func runRulesCheck(root string) error {
	store, err := rules.Load(filepath.Join(root, rulesFile))
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	conflicts := store.Conflicts()
	redundant := store.Redundant()

	if len(conflicts) == 0 && len(redundant) == 0 {
		fmt.Printf("%d rules, no conflicts, no redundancy.\n", store.Len())
		return nil
	}

	for _, kw := range sortedKeys(conflicts) {
		fmt.Printf("conflict: %q maps to", kw)
		for _, cat := range conflicts[kw] {
			fmt.Printf(" %s/%s", cat.Main, cat.Sub)
		}
		fmt.Println()
	}

	for _, kw := range sortedKeysInt(redundant) {
		fmt.Printf("redundant: %q appears at positions %v\n", kw, redundant[kw])
	}
	return fmt.Errorf("%d conflicting, %d redundant keywords", len(conflicts), len(redundant))
}

func sortedKeys(m map[string][]rules.Category) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeysInt(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
