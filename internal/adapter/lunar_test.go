package adapter

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExtractor returns canned table rows.
type fakeExtractor struct {
	rows []map[string]string
	err  error
}

func (f *fakeExtractor) ExtractTables(io.Reader) ([]map[string]string, error) {
	return f.rows, f.err
}

func TestLunarParser_Parse(t *testing.T) {
	p := &LunarParser{Extractor: &fakeExtractor{rows: []map[string]string{
		{"Date": "15.03.2024", "Description": "Netto", "Amount": "-89,50", "Balance": "1.200,00"},
		{"Date": "16.03.2024", "Description": "MobilePay", "Amount": "150,00", "Balance": "1.350,00"},
	}}}

	txns, err := p.Parse(strings.NewReader("pdf bytes"))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "Netto", txns[0].Description)
	assert.Equal(t, "-89.50", txns[0].AmountSource.StringFixed(2))
	assert.Equal(t, "DKK", txns[0].Currency)
	assert.Equal(t, "1.200,00", txns[0].Balance)
	assert.Equal(t, "15-03-2024", txns[0].Date.Format("02-01-2006"))
}

func TestLunarParser_MissingColumn(t *testing.T) {
	p := &LunarParser{Extractor: &fakeExtractor{rows: []map[string]string{
		{"Date": "15.03.2024", "Amount": "-89,50"},
	}}}

	_, err := p.Parse(strings.NewReader(""))
	require.Error(t, err)

	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, formatErr.Reason, "Description")
}

func TestLunarParser_ExtractorFailure(t *testing.T) {
	p := &LunarParser{Extractor: &fakeExtractor{err: errors.New("no tables found")}}

	_, err := p.Parse(strings.NewReader(""))
	require.Error(t, err)

	var formatErr *FormatError
	assert.ErrorAs(t, err, &formatErr)
}
