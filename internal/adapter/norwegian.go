package adapter

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tallyhq/tally/internal/model"
)

// NorwegianParser parses Bank Norwegian XLSX statements.
type NorwegianParser struct{}

const (
	norwegianDateFormat = "2006-01-02"
	norwegianColDate    = "TransactionDate"
	norwegianColDesc    = "Text"
	norwegianColType    = "Type"
	norwegianColAmount  = "Amount"
)

// Bank returns the adapter name.
func (p *NorwegianParser) Bank() string { return "norwegian" }

// Ext returns the accepted file extension.
func (p *NorwegianParser) Ext() string { return ".xlsx" }

// Parse reads a Bank Norwegian XLSX and returns canonical transactions.
// Reservations and card-load deposits are not booked transactions and are
// dropped.
func (p *NorwegianParser) Parse(r io.Reader) ([]model.Transaction, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &FormatError{Bank: p.Bank(), Reason: err.Error()}
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &FormatError{Bank: p.Bank(), Reason: err.Error()}
	}
	if len(rows) == 0 {
		return nil, &FormatError{Bank: p.Bank(), Reason: "empty sheet"}
	}

	idx := headerIndex(rows[0])
	if missing := requireColumns(idx, norwegianColDate, norwegianColDesc, norwegianColType, norwegianColAmount); missing != "" {
		return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("missing column %q", missing)}
	}

	var txns []model.Transaction
	for i, row := range rows[1:] {
		cell := func(col string) string {
			if idx[col] < len(row) {
				return row[idx[col]]
			}
			return ""
		}

		switch cell(norwegianColType) {
		case "Reservation", "Deposit":
			continue
		}

		date, err := time.Parse(norwegianDateFormat, cell(norwegianColDate))
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad date %q", i+2, cell(norwegianColDate))}
		}

		amount, err := decimal.NewFromString(cell(norwegianColAmount))
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad amount %q", i+2, cell(norwegianColAmount))}
		}

		txns = append(txns, model.Transaction{
			Date:         date,
			Description:  cell(norwegianColDesc),
			AmountSource: amount,
			Currency:     "NOK",
			Bank:         p.Bank(),
		})
	}
	return txns, nil
}
