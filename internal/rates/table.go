package rates

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/model"
)

// lookbackDays bounds the fall-back to a prior rate when the exact date has
// no entry.
const lookbackDays = 7

const (
	tableNumFields = 4
	tableColDate   = 0
	tableColFrom   = 1
	tableColTo     = 2
	tableColRate   = 3
)

type rateEntry struct {
	date time.Time
	rate decimal.Decimal
}

// Table is an in-memory Oracle backed by a rates CSV
// (Date;From;To;Rate, one row per currency pair per day).
type Table struct {
	byPair map[string][]rateEntry // "FROM->TO", entries sorted by date ascending
}

// NewTable creates an empty rate table. Every lookup on it is unavailable.
func NewTable() *Table {
	return &Table{byPair: make(map[string][]rateEntry)}
}

// Load reads a rates CSV from disk. A missing file yields an empty table:
// foreign-currency rows then surface as unresolved rather than failing the
// run.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewTable(), nil
		}
		return nil, fmt.Errorf("opening rates file: %w", err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("reading rates file %s: %w", path, err)
	}
	return t, nil
}

// ReadTable reads rate rows from a semicolon-delimited CSV reader.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = tableNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading rates CSV: %w", err)
	}

	t := NewTable()
	if len(records) == 0 {
		return t, nil
	}

	for i, rec := range records[1:] {
		date, err := time.Parse(model.DateFormat, rec[tableColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[tableColDate], err)
		}
		rate, err := decimal.NewFromString(rec[tableColRate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing rate %q: %w", i+2, rec[tableColRate], err)
		}
		t.add(rec[tableColFrom], rec[tableColTo], date, rate)
	}

	for _, entries := range t.byPair {
		sort.Slice(entries, func(a, b int) bool { return entries[a].date.Before(entries[b].date) })
	}
	return t, nil
}

func (t *Table) add(from, to string, date time.Time, rate decimal.Decimal) {
	key := pairKey(from, to)
	t.byPair[key] = append(t.byPair[key], rateEntry{date: date, rate: rate})
}

func pairKey(from, to string) string { return from + "->" + to }

// Rate returns the rate for the exact date, or the most recent rate at or
// before it within the look-back window. Outside the window, or for an
// unknown pair, the rate is ErrUnavailable.
func (t *Table) Rate(from, to string, date time.Time) (decimal.Decimal, error) {
	entries := t.byPair[pairKey(from, to)]

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.date.After(date) {
			continue
		}
		if date.Sub(e.date) > lookbackDays*24*time.Hour {
			break
		}
		return e.rate, nil
	}
	return decimal.Decimal{}, fmt.Errorf("%w: %s->%s on %s", ErrUnavailable, from, to, date.Format(model.DateFormat))
}

// Convert converts amount between currencies on date, rounded to 2 decimals.
func (t *Table) Convert(amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	rate, err := t.Rate(from, to, date)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return amount.Mul(rate).Round(2), nil
}
