// Package rates provides the exchange-rate oracle boundary and the currency
// normalization step of the import pipeline.
package rates

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable reports that no rate could be resolved for a currency pair
// and date. Rows hit by it proceed through the pipeline marked unresolved,
// never with a silent zero amount.
var ErrUnavailable = errors.New("exchange rate unavailable")

// Oracle resolves exchange rates. Implementations are synchronous and
// side-effect-free.
type Oracle interface {
	// Rate returns the multiplier from one unit of from to to on date.
	Rate(from, to string, date time.Time) (decimal.Decimal, error)
	// Convert converts amount from from to to on date.
	Convert(amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
}
