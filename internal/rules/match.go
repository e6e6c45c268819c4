package rules

import (
	"strings"

	"github.com/tallyhq/tally/internal/model"
)

// Match returns the first rule whose keyword is a case-insensitive prefix of
// desc. Prefix, not substring: keyword "Net" matches "Netflix", keyword
// "flix" does not.
func (s *Store) Match(desc string) (Rule, bool) {
	d := strings.ToLower(desc)
	for _, r := range s.rules {
		if strings.HasPrefix(d, strings.ToLower(r.Keyword)) {
			return r, true
		}
	}
	return Rule{}, false
}

// Categorize assigns categories to every row, first-match-wins over the
// stored order. Rows no rule matches get the Uncategorized default in both
// fields. Pure apart from the rows themselves: the same description and rule
// list always classify the same way.
func (s *Store) Categorize(txns []model.Transaction) {
	for i := range txns {
		if r, ok := s.Match(txns[i].Description); ok {
			txns[i].MainCategory = r.MainCategory
			txns[i].SubCategory = r.SubCategory
		} else {
			txns[i].MainCategory = model.Uncategorized
			txns[i].SubCategory = model.Uncategorized
		}
	}
}
