package source

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// KnownCategories are the canonical labels the dashboard groups on.
var KnownCategories = []string{
	"Fuel",
	"Food",
	"Uber",
	"Swiggy",
	"Zomato",
	"Rent",
	"Maintenance",
	"Insurance",
	"Mobile",
	"Salary Transfer",
	"Gig-Tabby Loan",
}

// maxCategoryDistance is the edit distance tolerated when snapping a label to
// a known category. Labels shorter than minFuzzyLength only match exactly.
const (
	maxCategoryDistance = 1
	minFuzzyLength      = 4
)

// NormalizeCategory snaps a free-text label onto a known category when it is
// a case-insensitive match or a near miss ("feul" -> "Fuel"). Unknown labels
// are returned trimmed.
func NormalizeCategory(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return ""
	}
	lower := strings.ToLower(label)

	for _, known := range KnownCategories {
		if strings.ToLower(known) == lower {
			return known
		}
	}
	if len(label) < minFuzzyLength {
		return label
	}

	best, bestDist := "", maxCategoryDistance+1
	for _, known := range KnownCategories {
		k := strings.ToLower(known)
		d := levenshtein.ComputeDistance(lower, k)
		if d == 2 && isSwap(lower, k) {
			d = 1
		}
		if d < bestDist {
			best, bestDist = known, d
		}
	}
	if best != "" {
		return best
	}
	return label
}

// isSwap reports whether a and b differ only by two adjacent characters
// trading places. Levenshtein counts that as two edits.
func isSwap(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) != len(rb) {
		return false
	}
	for i := 0; i < len(ra)-1; i++ {
		if ra[i] == rb[i] {
			continue
		}
		return ra[i] == rb[i+1] && ra[i+1] == rb[i] && string(ra[i+2:]) == string(rb[i+2:])
	}
	return false
}
