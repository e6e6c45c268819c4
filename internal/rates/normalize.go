package rates

import (
	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/model"
)

// Normalize fills Amount and CurrencyRate on every row. Rows already in the
// base currency get rate 1 and the source amount verbatim; foreign rows are
// converted with the oracle's rate for the row's date. When the oracle cannot
// resolve a rate the row is marked unresolved and kept: categorization and
// the ledger merge still see it.
func Normalize(txns []model.Transaction, oracle Oracle, base string) {
	one := decimal.NewFromInt(1)

	for i := range txns {
		t := &txns[i]

		if t.Currency == "" {
			t.Currency = base
		}
		if t.Currency == base {
			t.Amount = t.AmountSource
			t.CurrencyRate = one
			continue
		}

		rate, err := oracle.Rate(t.Currency, base, t.Date)
		if err != nil {
			t.Unresolved = true
			continue
		}
		t.Amount = t.AmountSource.Mul(rate).Round(2)
		t.CurrencyRate = rate
	}
}
