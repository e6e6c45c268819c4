package adapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"golang.org/x/text/encoding/charmap"

	"github.com/tallyhq/tally/internal/model"
)

// DanskeBankParser parses Danske Bank CSV exports: semicolon-delimited,
// ISO-8859-1 encoded, Danish number format, columns Dato;Tekst;Beløb;Saldo.
type DanskeBankParser struct{}

const (
	danskeDateFormat = "02.01.2006"
	danskeColDate    = "Dato"
	danskeColDesc    = "Tekst"
	danskeColAmount  = "Beløb"
	danskeColBalance = "Saldo"
)

// Bank returns the adapter name.
func (p *DanskeBankParser) Bank() string { return "danskebank" }

// Ext returns the accepted file extension.
func (p *DanskeBankParser) Ext() string { return ".csv" }

// Parse reads a Danske Bank CSV and returns canonical transactions.
// The running balance is kept on each row to disambiguate same-day
// same-amount repeats in identity digests.
func (p *DanskeBankParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &FormatError{Bank: p.Bank(), Reason: err.Error()}
	}
	if len(records) == 0 {
		return nil, &FormatError{Bank: p.Bank(), Reason: "empty file"}
	}

	idx := headerIndex(records[0])
	if missing := requireColumns(idx, danskeColDate, danskeColDesc, danskeColAmount, danskeColBalance); missing != "" {
		return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("missing column %q", missing)}
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		date, err := time.Parse(danskeDateFormat, rec[idx[danskeColDate]])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad date %q", i+2, rec[idx[danskeColDate]])}
		}

		amount, err := parseDanishAmount(rec[idx[danskeColAmount]])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad amount %q", i+2, rec[idx[danskeColAmount]])}
		}

		txns = append(txns, model.Transaction{
			Date:         date,
			Description:  rec[idx[danskeColDesc]],
			AmountSource: amount,
			Currency:     "DKK",
			Bank:         p.Bank(),
			Balance:      rec[idx[danskeColBalance]],
		})
	}
	return txns, nil
}
