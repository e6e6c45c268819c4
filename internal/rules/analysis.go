package rules

import "strings"

// Category is a (main, sub) pair as mapped by a rule.
type Category struct {
	Main string
	Sub  string
}

// Conflicts returns keywords that map to more than one distinct category.
// Keywords are grouped case-insensitively; each reported key is the first
// stored spelling and its categories appear in stored order.
func (s *Store) Conflicts() map[string][]Category {
	firstSpelling := make(map[string]string)
	byKeyword := make(map[string][]Category)

	for _, r := range s.rules {
		key := strings.ToLower(r.Keyword)
		if _, seen := firstSpelling[key]; !seen {
			firstSpelling[key] = r.Keyword
		}

		cat := Category{Main: r.MainCategory, Sub: r.SubCategory}
		if !containsCategory(byKeyword[key], cat) {
			byKeyword[key] = append(byKeyword[key], cat)
		}
	}

	conflicts := make(map[string][]Category)
	for key, cats := range byKeyword {
		if len(cats) > 1 {
			conflicts[firstSpelling[key]] = cats
		}
	}
	return conflicts
}

// Redundant returns keywords that appear more than once, mapped to the
// stored positions of every occurrence. Identical keywords are redundant
// regardless of whether their categories agree.
func (s *Store) Redundant() map[string][]int {
	positions := make(map[string][]int)
	for i, r := range s.rules {
		positions[r.Keyword] = append(positions[r.Keyword], i)
	}

	redundant := make(map[string][]int)
	for kw, pos := range positions {
		if len(pos) > 1 {
			redundant[kw] = pos
		}
	}
	return redundant
}

func containsCategory(cats []Category, c Category) bool {
	for _, existing := range cats {
		if existing == c {
			return true
		}
	}
	return false
}
