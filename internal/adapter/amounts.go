package adapter

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parseDanishAmount parses an amount printed with Danish separators:
// "." for thousands, "," for decimals ("1.234,56" -> 1234.56).
func parseDanishAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}

// headerIndex maps column names to their positions in a header row.
// Lookup is exact on the trimmed cell value.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

// requireColumns returns the first expected column missing from idx, or "".
func requireColumns(idx map[string]int, cols ...string) string {
	for _, c := range cols {
		if _, ok := idx[c]; !ok {
			return c
		}
	}
	return ""
}
