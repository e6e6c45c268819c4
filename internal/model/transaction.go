package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the display format (DD-MM-YYYY) every adapter normalizes
// source dates to. Ledger rows and identity digests both use it.
const DateFormat = "02-01-2006"

// Uncategorized is the category assigned when no rule matches.
const Uncategorized = "Uncategorized"

// Transaction is the canonical record shared by all source adapters.
// Negative amounts are outflows, positive are inflows.
type Transaction struct {
	Date         time.Time
	Description  string
	Amount       decimal.Decimal // base currency
	AmountSource decimal.Decimal // original currency; equals Amount when currencies match
	Currency     string
	CurrencyRate decimal.Decimal // source -> base multiplier on Date; 1 when currencies match
	Unresolved   bool            // rate lookup failed; Amount and CurrencyRate carry no value
	Bank         string
	UniqueID     string
	Balance      string // running balance as printed by the source, "" when absent
	MainCategory string
	SubCategory  string
}
