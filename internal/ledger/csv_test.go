package ledger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/model"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleRow() model.Transaction {
	return model.Transaction{
		Date:         date(2024, 1, 3),
		Description:  "Grocery Store",
		Amount:       dec("-120.00"),
		AmountSource: dec("-120.00"),
		Currency:     "DKK",
		CurrencyRate: dec("1"),
		Bank:         "danskebank",
		UniqueID:     "a1b2c3",
		MainCategory: "Food",
		SubCategory:  "Groceries",
	}
}

func TestWriteRows_ReadRows_RoundTrip(t *testing.T) {
	rows := []model.Transaction{
		sampleRow(),
		{
			Date:         date(2024, 1, 6),
			Description:  "Acme Corp",
			Amount:       dec("74.50"),
			AmountSource: dec("10.00"),
			Currency:     "EUR",
			CurrencyRate: dec("7.45"),
			Bank:         "wise",
			UniqueID:     "TRANSFER-112",
			MainCategory: model.Uncategorized,
			SubCategory:  model.Uncategorized,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, rows))

	got, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Grocery Store", got[0].Description)
	assert.True(t, got[0].Amount.Equal(dec("-120.00")))
	assert.Equal(t, "a1b2c3", got[0].UniqueID)
	assert.Equal(t, "03-01-2024", got[0].Date.Format(model.DateFormat))

	assert.Equal(t, "TRANSFER-112", got[1].UniqueID)
	assert.True(t, got[1].CurrencyRate.Equal(dec("7.45")))
}

func TestMarshalRow_UnresolvedMarker(t *testing.T) {
	row := sampleRow()
	row.Unresolved = true

	rec := MarshalRow(row)
	assert.Equal(t, "unresolved", rec[colAmount])
	assert.Equal(t, "unresolved", rec[colRate])
	assert.Equal(t, "-120.00", rec[colAmountSrc], "source amount is always real")

	back, err := UnmarshalRow(rec)
	require.NoError(t, err)
	assert.True(t, back.Unresolved, "unresolved must never read back as zero")
}

func TestUnmarshalRow_DescriptionWithDelimiterCharacters(t *testing.T) {
	row := sampleRow()
	row.Description = "Café; 1,50 extra"

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, []model.Transaction{row}))

	got, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Café; 1,50 extra", got[0].Description)
}

func TestReadRows_FieldCountMismatch(t *testing.T) {
	_, err := ReadRows(strings.NewReader(Header + "\n03-01-2024;short\n"))
	require.Error(t, err)
}

func TestReadRows_Empty(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, rows)
}
