package adapter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallyhq/tally/internal/model"
)

// WiseParser parses Wise transfer-history CSV exports. Wise encodes direction
// in a separate column, so description, sign and currency are derived from a
// three-way selection on it. The provider transfer ID is globally unique and
// becomes the row's UniqueID directly.
type WiseParser struct{}

const (
	wiseDateFormat = "2006-01-02 15:04:05"
	wiseColID      = "ID"
	wiseColStatus  = "Status"
	wiseColDir     = "Direction"
	wiseColDate    = "Finished on"
	wiseColSrcName = "Source name"
	wiseColSrcAmt  = "Source amount (after fees)"
	wiseColSrcCur  = "Source currency"
	wiseColDstName = "Target name"
	wiseColDstAmt  = "Target amount (after fees)"
	wiseColDstCur  = "Target currency"
)

// Bank returns the adapter name.
func (p *WiseParser) Bank() string { return "wise" }

// Ext returns the accepted file extension.
func (p *WiseParser) Ext() string { return ".csv" }

// Parse reads a Wise CSV and returns canonical transactions. Cancelled
// transfers and transfers with a zero source or target amount are dropped.
func (p *WiseParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, &FormatError{Bank: p.Bank(), Reason: err.Error()}
	}
	if len(records) == 0 {
		return nil, &FormatError{Bank: p.Bank(), Reason: "empty file"}
	}

	idx := headerIndex(records[0])
	if missing := requireColumns(idx,
		wiseColID, wiseColStatus, wiseColDir, wiseColDate,
		wiseColSrcName, wiseColSrcAmt, wiseColSrcCur,
		wiseColDstName, wiseColDstAmt, wiseColDstCur); missing != "" {
		return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("missing column %q", missing)}
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		if rec[idx[wiseColStatus]] == "CANCELLED" {
			continue
		}

		srcAmt, err := decimal.NewFromString(rec[idx[wiseColSrcAmt]])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad source amount %q", i+2, rec[idx[wiseColSrcAmt]])}
		}
		dstAmt, err := decimal.NewFromString(rec[idx[wiseColDstAmt]])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad target amount %q", i+2, rec[idx[wiseColDstAmt]])}
		}
		if srcAmt.IsZero() || dstAmt.IsZero() {
			continue
		}

		date, err := time.Parse(wiseDateFormat, rec[idx[wiseColDate]])
		if err != nil {
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: bad date %q", i+2, rec[idx[wiseColDate]])}
		}

		txn := model.Transaction{
			Date:     date,
			Bank:     p.Bank(),
			UniqueID: rec[idx[wiseColID]],
		}

		switch dir := rec[idx[wiseColDir]]; dir {
		case "IN":
			txn.Description = rec[idx[wiseColSrcName]]
			txn.AmountSource = srcAmt
			txn.Currency = rec[idx[wiseColSrcCur]]
		case "OUT":
			txn.Description = rec[idx[wiseColDstName]]
			txn.AmountSource = dstAmt.Neg()
			txn.Currency = rec[idx[wiseColDstCur]]
		case "NEUTRAL":
			txn.Description = "Internal transfer"
			txn.AmountSource = decimal.Zero
			txn.Currency = rec[idx[wiseColDstCur]]
		default:
			return nil, &FormatError{Bank: p.Bank(), Reason: fmt.Sprintf("row %d: unknown direction %q", i+2, dir)}
		}

		txns = append(txns, txn)
	}
	return txns, nil
}
