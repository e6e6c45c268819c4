// Package identity computes stable per-transaction identifiers used for
// deduplication across merge runs.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/tallyhq/tally/internal/model"
)

// idLen is the number of hex digits kept from the digest.
const idLen = 32

// Digest returns the content-derived identifier for a transaction: a sha256
// over date, description, source-currency amount and bank, plus the running
// balance when the source format carries one. The digest uses the fixed
// display date format and a 2-decimal amount so it is independent of how the
// source printed either.
func Digest(t model.Transaction) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%s",
		t.Date.Format(model.DateFormat), t.Description, t.AmountSource.StringFixed(2), t.Bank)
	if t.Balance != "" {
		fmt.Fprintf(h, "|%s", t.Balance)
	}
	return hex.EncodeToString(h.Sum(nil))[:idLen]
}

// Assign fills UniqueID on every row that does not already carry one.
// Adapters whose source format guarantees a globally unique provider id
// pre-fill UniqueID and are left alone. An id, once set, is never recomputed:
// later description edits must not change it or duplicate detection breaks.
func Assign(txns []model.Transaction) {
	for i := range txns {
		if txns[i].UniqueID == "" {
			txns[i].UniqueID = Digest(txns[i])
		}
	}
}
