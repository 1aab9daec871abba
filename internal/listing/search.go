package listing

import (
	"strconv"
	"strings"
)

// SearchQuery holds the browse filters. Empty fields do not filter;
// price bounds that do not parse as numbers are ignored.
type SearchQuery struct {
	Q        string `form:"q"`
	Category string `form:"category"`
	Location string `form:"location"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

// HasText reports whether the query carries a free-text term.
func (q SearchQuery) HasText() bool {
	return strings.TrimSpace(q.Q) != ""
}

// Matches applies every filter except free text.
func (q SearchQuery) Matches(l Listing) bool {
	if q.Category != "" && q.Category != CategoryAll && l.Category != q.Category {
		return false
	}
	if q.Location != "" && q.Location != CategoryAll && l.Location != q.Location {
		return false
	}
	if lo, ok := parseBound(q.MinPrice); ok && l.PricePerUnit < lo {
		return false
	}
	if hi, ok := parseBound(q.MaxPrice); ok && l.PricePerUnit > hi {
		return false
	}
	return true
}

// MatchesText is a case-insensitive substring match over title,
// description and location.
func (q SearchQuery) MatchesText(l Listing) bool {
	if !q.HasText() {
		return true
	}
	term := strings.ToLower(q.Q)
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Description), term) ||
		strings.Contains(strings.ToLower(l.Location), term)
}

// Filter returns the listings matching q, in input order.
func Filter(listings []Listing, q SearchQuery) []Listing {
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if q.MatchesText(l) && q.Matches(l) {
			out = append(out, l)
		}
	}
	return out
}

func parseBound(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
