// Package rules holds the ordered categorization rule set. Order is
// semantic: categorization applies the first rule whose keyword matches, so
// the store never deduplicates or reorders entries and persistence preserves
// append order exactly.
package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rule maps a description keyword prefix to a category.
type Rule struct {
	Keyword      string `yaml:"keyword"`
	MainCategory string `yaml:"main_category"`
	SubCategory  string `yaml:"sub_category"`
}

// ruleFile is the on-disk shape of the rule list.
type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// Store is the ordered rule list bound to its persistence path. It is
// read-mostly shared state: only the resolver appends to it.
type Store struct {
	path  string
	rules []Rule
}

// Load reads the rule file at path. A missing file yields an empty store
// bound to the same path, so the first Append creates it.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{path: path}, nil
		}
		return nil, fmt.Errorf("reading rules: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &Store{path: path, rules: rf.Rules}, nil
}

// NewStore creates an unbound in-memory store, for tests and scripted runs.
func NewStore(rules ...Rule) *Store {
	return &Store{rules: rules}
}

// Rules returns the rules in stored order.
func (s *Store) Rules() []Rule {
	return s.rules
}

// Len returns the number of stored rules.
func (s *Store) Len() int {
	return len(s.rules)
}

// Append extends the ordered list and persists it. Existing entries are
// never deduplicated or reordered.
func (s *Store) Append(newRules ...Rule) error {
	s.rules = append(s.rules, newRules...)
	if s.path == "" {
		return nil
	}
	return s.Save()
}

// Save writes the full ordered list back to the store's path.
func (s *Store) Save() error {
	rf := ruleFile{Rules: s.rules}
	if rf.Rules == nil {
		rf.Rules = []Rule{}
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}
