package adapter

import (
	"fmt"
	"io"
	"time"

	"github.com/tallyhq/tally/internal/model"
)

// TableExtractor pulls tabular rows out of a PDF statement. Extraction itself
// lives outside this package; each row maps source column names to string
// cell values.
type TableExtractor interface {
	ExtractTables(r io.Reader) ([]map[string]string, error)
}

// LunarParser parses Lunar PDF statements through an injected table
// extractor. Lunar prints Danish number format and a running balance.
type LunarParser struct {
	Extractor TableExtractor
}

const (
	lunarDateFormat = "02.01.2006"
	lunarColDate    = "Date"
	lunarColDesc    = "Description"
	lunarColAmount  = "Amount"
	lunarColBalance = "Balance"
)

// Bank returns the adapter name.
func (p *LunarParser) Bank() string { return "lunar" }

// Ext returns the accepted file extension.
func (p *LunarParser) Ext() string { return ".pdf" }

// Parse extracts table rows from a Lunar PDF and returns canonical
// transactions.
func (p *LunarParser) Parse(r io.Reader) ([]model.Transaction, error) {
	rows, err := p.Extractor.ExtractTables(r)
	if err != nil {
		return nil, &FormatError{Bank: p.Bank(), Reason: err.Error()}
	}

	var txns []model.Transaction
	for i, row := range rows {
		for _, col := range []string{lunarColDate, lunarColDesc, lunarColAmount} {
			if _, ok := row[col]; !ok {
				return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: missing column %q", i+1, col)}
			}
		}

		date, err := time.Parse(lunarDateFormat, row[lunarColDate])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad date %q", i+1, row[lunarColDate])}
		}

		amount, err := parseDanishAmount(row[lunarColAmount])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad amount %q", i+1, row[lunarColAmount])}
		}

		txns = append(txns, model.Transaction{
			Date:         date,
			Description:  row[lunarColDesc],
			AmountSource: amount,
			Currency:     "DKK",
			Bank:         p.Bank(),
			Balance:      row[lunarColBalance],
		})
	}
	return txns, nil
}
