// Package resolver drives the human-in-the-loop step that settles
// transactions no rule matched. It is a sequential state machine over a
// request/response Prompter boundary, so a scripted driver can stand in for
// the terminal in tests.
package resolver

import (
	"fmt"

	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/rules"
)

// Action is the operator's choice for one uncategorized transaction.
type Action int

const (
	// ActionAddRule appends a new rule and categorizes the row from it.
	ActionAddRule Action = iota
	// ActionEditDescription replaces the row's description and re-runs the
	// rule lookup. The row's UniqueID is frozen at creation and stays as is.
	ActionEditDescription
	// ActionSkip leaves the row uncategorized and moves on.
	ActionSkip
)

// Response is the operator's structured answer for one transaction.
type Response struct {
	Action      Action
	Keyword     string // AddRule
	Main        string // AddRule
	Sub         string // AddRule
	Description string // EditDescription replacement
}

// Prompter is the operator boundary. Resolve presents one uncategorized
// transaction and returns the chosen action; Categorize is the follow-up when
// an edited description still matches no rule. Implementations own re-prompt
// behavior for invalid input.
type Prompter interface {
	Resolve(t model.Transaction) (Response, error)
	Categorize(t model.Transaction) (keyword, main, sub string, err error)
}

// Resolver walks uncategorized transactions and applies operator decisions.
// It is the rule store's single writer.
type Resolver struct {
	store    *rules.Store
	prompter Prompter
}

// New creates a Resolver over a store and a prompter.
func New(store *rules.Store, prompter Prompter) *Resolver {
	return &Resolver{store: store, prompter: prompter}
}

// Run visits every uncategorized row in order and blocks on the prompter
// until the operator settles or skips each one. There is no timeout: callers
// embedding this in a service must impose their own.
func (r *Resolver) Run(txns []model.Transaction) error {
	for i := range txns {
		t := &txns[i]
		if t.MainCategory != model.Uncategorized {
			continue
		}

		resp, err := r.prompter.Resolve(*t)
		if err != nil {
			return fmt.Errorf("resolving %q: %w", t.Description, err)
		}

		switch resp.Action {
		case ActionSkip:

		case ActionAddRule:
			rule := rules.Rule{Keyword: resp.Keyword, MainCategory: resp.Main, SubCategory: resp.Sub}
			if err := r.store.Append(rule); err != nil {
				return fmt.Errorf("appending rule for %q: %w", resp.Keyword, err)
			}
			t.MainCategory = resp.Main
			t.SubCategory = resp.Sub

		case ActionEditDescription:
			// UniqueID was computed from the original description and is
			// deliberately not recomputed here.
			t.Description = resp.Description

			if rule, ok := r.store.Match(t.Description); ok {
				t.MainCategory = rule.MainCategory
				t.SubCategory = rule.SubCategory
				continue
			}

			keyword, main, sub, err := r.prompter.Categorize(*t)
			if err != nil {
				return fmt.Errorf("categorizing %q: %w", t.Description, err)
			}
			rule := rules.Rule{Keyword: keyword, MainCategory: main, SubCategory: sub}
			if err := r.store.Append(rule); err != nil {
				return fmt.Errorf("appending rule for %q: %w", keyword, err)
			}
			t.MainCategory = main
			t.SubCategory = sub

		default:
			return fmt.Errorf("unknown resolver action %d", resp.Action)
		}
	}
	return nil
}
