package ledger

import (
	"fmt"

	"github.com/tallyhq/tally/internal/model"
)

// ValidationError describes a single invariant violation in a ledger row set.
type ValidationError struct {
	UniqueID    string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s]: %s", e.UniqueID, e.Description)
}

// ValidateRows checks the invariants a ledger must hold before it is
// persisted: every row carries a UniqueID, and no id appears twice.
func ValidateRows(rows []model.Transaction) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		if row.UniqueID == "" {
			errs = append(errs, ValidationError{
				UniqueID:    "",
				Description: fmt.Sprintf("row %d (%q) has no unique id", i+1, row.Description),
			})
			continue
		}
		if first, dup := seen[row.UniqueID]; dup {
			errs = append(errs, ValidationError{
				UniqueID:    row.UniqueID,
				Description: fmt.Sprintf("duplicate id at rows %d and %d", first+1, i+1),
			})
			continue
		}
		seen[row.UniqueID] = i
	}
	return errs
}
