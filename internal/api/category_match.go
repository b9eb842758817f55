package api

import (
	"strings"

	"gitlab.com/yelinaung/fintrack/internal/models"
)

// matchCategory resolves a suggested name against a profile's categories.
// It tries a case-insensitive exact match, then the shortest category that
// contains the suggestion, then the longest category contained in the
// suggestion, and finally any shared significant word. Nil means no match.
func matchCategory(suggested string, categories []models.Category) *models.Category {
	lower := strings.ToLower(strings.TrimSpace(suggested))
	if lower == "" {
		return nil
	}

	for i := range categories {
		if strings.EqualFold(strings.TrimSpace(categories[i].Name), lower) {
			return &categories[i]
		}
	}

	var best *models.Category
	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if strings.Contains(name, lower) && (best == nil || len(name) < len(best.Name)) {
			best = &categories[i]
		}
	}
	if best != nil {
		return best
	}

	for i := range categories {
		name := strings.ToLower(categories[i].Name)
		if strings.Contains(lower, name) && (best == nil || len(name) > len(best.Name)) {
			best = &categories[i]
		}
	}
	if best != nil {
		return best
	}

	words := significantWords(lower)
	for i := range categories {
		for _, cw := range significantWords(categories[i].Name) {
			for _, sw := range words {
				if cw == sw {
					return &categories[i]
				}
			}
		}
	}
	return nil
}

var stopWords = map[string]bool{"and": true, "the": true, "for": true}

// significantWords splits on separators and drops short and stop words.
func significantWords(s string) []string {
	s = strings.NewReplacer("-", " ", "/", " ", "&", " ").Replace(strings.ToLower(s))
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) >= 3 && !stopWords[w] {
			out = append(out, w)
		}
	}
	return out
}
