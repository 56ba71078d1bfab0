package filter

import (
	"strings"

	"forgescope/internal/catalog"
)

// Criteria are the plain sidebar filters: exact era and event matches plus a
// case-insensitive name substring. Empty fields match everything.
type Criteria struct {
	Era   string
	Event string
	Name  string
}

// Match reports whether the building satisfies every set criterion.
func (c Criteria) Match(b *catalog.Building) bool {
	if c.Era != "" && b.Era != c.Era {
		return false
	}
	if c.Event != "" && b.Event != c.Event {
		return false
	}
	if c.Name != "" && !strings.Contains(strings.ToLower(b.Name), strings.ToLower(c.Name)) {
		return false
	}
	return true
}

// Apply returns the buildings matching the criteria, preserving input order.
func (c Criteria) Apply(buildings []catalog.Building) []catalog.Building {
	out := make([]catalog.Building, 0, len(buildings))
	for i := range buildings {
		if c.Match(&buildings[i]) {
			out = append(out, buildings[i])
		}
	}
	return out
}
