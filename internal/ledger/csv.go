package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/model"
)

// Header is the column header for ledger.csv. Fields are semicolon-delimited
// with a decimal point, so amounts from decimal-comma source locales can
// never collide with the delimiter.
const Header = "Date;Description;Amount;Amount_currency;Currency;Currency_Rate;Bank;UniqueID;Main Category;Sub Category"

// unresolvedMark is written in place of Amount and Currency_Rate when the
// rate lookup failed. An unresolved amount must never read back as zero.
const unresolvedMark = "unresolved"

const (
	numFields    = 10
	colDate      = 0
	colDesc      = 1
	colAmount    = 2
	colAmountSrc = 3
	colCurrency  = 4
	colRate      = 5
	colBank      = 6
	colUniqueID  = 7
	colMainCat   = 8
	colSubCat    = 9
)

// ReadRows reads all ledger rows from a reader.
func ReadRows(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var rows []model.Transaction
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteRows writes ledger rows to a writer, including the header.
func WriteRows(w io.Writer, rows []model.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ";")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		if err := cw.Write(MarshalRow(row)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRow converts a transaction to a CSV row.
func MarshalRow(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = t.Date.Format(model.DateFormat)
	row[colDesc] = t.Description
	row[colAmountSrc] = t.AmountSource.StringFixed(2)
	row[colCurrency] = t.Currency
	row[colBank] = t.Bank
	row[colUniqueID] = t.UniqueID
	row[colMainCat] = t.MainCategory
	row[colSubCat] = t.SubCategory

	if t.Unresolved {
		row[colAmount] = unresolvedMark
		row[colRate] = unresolvedMark
	} else {
		row[colAmount] = t.Amount.StringFixed(2)
		row[colRate] = t.CurrencyRate.String()
	}

	return row
}

// UnmarshalRow converts a CSV row to a transaction. UniqueID is always kept
// as a string.
func UnmarshalRow(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(model.DateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amountSrc, err := decimal.NewFromString(record[colAmountSrc])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing source amount %q: %w", record[colAmountSrc], err)
	}

	t := model.Transaction{
		Date:         date,
		Description:  record[colDesc],
		AmountSource: amountSrc,
		Currency:     record[colCurrency],
		Bank:         record[colBank],
		UniqueID:     record[colUniqueID],
		MainCategory: record[colMainCat],
		SubCategory:  record[colSubCat],
	}

	if record[colAmount] == unresolvedMark || record[colRate] == unresolvedMark {
		t.Unresolved = true
		return t, nil
	}

	t.Amount, err = decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}
	t.CurrencyRate, err = decimal.NewFromString(record[colRate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing rate %q: %w", record[colRate], err)
	}
	return t, nil
}
