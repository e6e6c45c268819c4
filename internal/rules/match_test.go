package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyhq/tally/internal/model"
)

func TestMatch_PrefixNotSubstring(t *testing.T) {
	store := NewStore(Rule{Keyword: "Net", MainCategory: "Leisure", SubCategory: "Streaming"})

	rule, ok := store.Match("Netflix")
	require.True(t, ok, "keyword \"Net\" prefix-matches \"Netflix\"")
	assert.Equal(t, "Leisure", rule.MainCategory)

	store = NewStore(Rule{Keyword: "flix", MainCategory: "Leisure", SubCategory: "Streaming"})
	_, ok = store.Match("Netflix")
	assert.False(t, ok, "keyword \"flix\" is a substring, not a prefix")
}

func TestMatch_CaseInsensitive(t *testing.T) {
	store := NewStore(Rule{Keyword: "NETFLIX", MainCategory: "Leisure", SubCategory: "Streaming"})

	_, ok := store.Match("netflix.com 8.99")
	assert.True(t, ok)
}

func TestMatch_FirstMatchWins(t *testing.T) {
	store := NewStore(
		Rule{Keyword: "Net", MainCategory: "First", SubCategory: "First"},
		Rule{Keyword: "Netflix", MainCategory: "Second", SubCategory: "Second"},
	)

	rule, ok := store.Match("Netflix")
	require.True(t, ok)
	assert.Equal(t, "First", rule.MainCategory, "earlier rule wins even when a later one also matches")
}

func TestCategorize(t *testing.T) {
	store := NewStore(Rule{Keyword: "Grocery", MainCategory: "Food", SubCategory: "Groceries"})

	txns := []model.Transaction{
		{Description: "Grocery Store"},
		{Description: "Unknown Vendor"},
	}
	store.Categorize(txns)

	assert.Equal(t, "Food", txns[0].MainCategory)
	assert.Equal(t, "Groceries", txns[0].SubCategory)
	assert.Equal(t, model.Uncategorized, txns[1].MainCategory)
	assert.Equal(t, model.Uncategorized, txns[1].SubCategory)
}

func TestCategorize_Deterministic(t *testing.T) {
	store := NewStore(
		Rule{Keyword: "Netto", MainCategory: "Food", SubCategory: "Groceries"},
		Rule{Keyword: "Net", MainCategory: "Leisure", SubCategory: "Streaming"},
	)

	for i := 0; i < 3; i++ {
		txns := []model.Transaction{{Description: "Netflix"}, {Description: "Netto Østerbro"}}
		store.Categorize(txns)
		assert.Equal(t, "Leisure", txns[0].MainCategory)
		assert.Equal(t, "Food", txns[1].MainCategory)
	}
}
