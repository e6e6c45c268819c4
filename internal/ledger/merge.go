package ledger

import "github.com/tallyhq/tally/internal/model"

// Merge unions incoming rows into existing by UniqueID. Existing order is
// preserved, new rows append after; an incoming row whose id is already
// present is dropped, never overwritten. Merging the same rows twice yields
// the same ledger as merging once.
func Merge(existing, incoming []model.Transaction) (merged []model.Transaction, dropped int) {
	seen := make(map[string]struct{}, len(existing))
	for _, t := range existing {
		seen[t.UniqueID] = struct{}{}
	}

	merged = append(merged, existing...)
	for _, t := range incoming {
		if _, dup := seen[t.UniqueID]; dup {
			dropped++
			continue
		}
		seen[t.UniqueID] = struct{}{}
		merged = append(merged, t)
	}
	return merged, dropped
}
