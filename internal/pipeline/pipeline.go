// Package pipeline wires the import stages end to end: adapt, normalize
// currency, assign identities, categorize, resolve, merge.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tallyhq/tally/internal/adapter"
	"github.com/tallyhq/tally/internal/identity"
	"github.com/tallyhq/tally/internal/ledger"
	"github.com/tallyhq/tally/internal/rates"
	"github.com/tallyhq/tally/internal/resolver"
	"github.com/tallyhq/tally/internal/rules"
)

// Pipeline holds the collaborators of one import run. Prompter may be nil,
// in which case uncategorized rows stay uncategorized.
type Pipeline struct {
	Registry *adapter.Registry
	Oracle   rates.Oracle
	Store    *rules.Store
	Prompter resolver.Prompter
	Ledger   *ledger.Service
	Base     string
}

// Summary reports what one run did.
type Summary struct {
	Parsed     int
	Merged     int
	Duplicates int
	Unresolved int
	Skipped    string // non-empty when the source was skipped (missing file, bad format)
}

// Run imports one statement file into the ledger. A missing file or a
// statement that does not match its adapter's layout degrades to a zero-row
// summary; an unknown bank and any ledger failure are fatal. A failed merge
// leaves the existing ledger untouched.
func (p *Pipeline) Run(path, bank string) (Summary, error) {
	txns, err := p.Registry.Load(path, bank)
	if err != nil {
		var formatErr *adapter.FormatError
		if errors.Is(err, adapter.ErrNotFound) || errors.As(err, &formatErr) {
			return Summary{Skipped: err.Error()}, nil
		}
		return Summary{}, err
	}
	if len(txns) == 0 {
		return Summary{}, nil
	}

	rates.Normalize(txns, p.Oracle, p.Base)
	identity.Assign(txns)
	p.Store.Categorize(txns)

	if p.Prompter != nil {
		res := resolver.New(p.Store, p.Prompter)
		if err := res.Run(txns); err != nil {
			return Summary{}, err
		}
	}

	existing, err := p.Ledger.Load()
	if err != nil {
		return Summary{}, err
	}

	merged, dropped := ledger.Merge(existing, txns)
	if verrs := ledger.ValidateRows(merged); len(verrs) > 0 {
		msgs := make([]string, len(verrs))
		for i, ve := range verrs {
			msgs[i] = ve.Error()
		}
		return Summary{}, fmt.Errorf("ledger validation failed: %s", strings.Join(msgs, "; "))
	}

	if err := p.Ledger.Replace(merged); err != nil {
		return Summary{}, err
	}

	unresolved := 0
	for _, t := range txns {
		if t.Unresolved {
			unresolved++
		}
	}

	return Summary{
		Parsed:     len(txns),
		Merged:     len(txns) - dropped,
		Duplicates: dropped,
		Unresolved: unresolved,
	}, nil
}
