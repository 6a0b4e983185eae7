package model

import "strings"

// Filter is the set of catalog predicates. Any unset field matches every event.
type Filter struct {
	Search   string `json:"search"`
	Country  string `json:"country"`
	FromDate Date   `json:"fromDate"`
	ToDate   Date   `json:"toDate"`
}

// IsEmpty reports whether no predicate is set.
func (f Filter) IsEmpty() bool {
	return f.Search == "" && f.Country == "" && f.FromDate.IsZero() && f.ToDate.IsZero()
}

// Matches reports whether e satisfies every set predicate.
func (f Filter) Matches(e Event) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !containsFold(e.Title, needle) &&
			!containsFold(e.Description, needle) &&
			!containsFold(e.Location.Country, needle) &&
			!containsFold(e.Location.City, needle) {
			return false
		}
	}
	if f.Country != "" && e.Location.Country != f.Country {
		return false
	}
	if !f.FromDate.IsZero() && e.Date.Before(f.FromDate) {
		return false
	}
	if !f.ToDate.IsZero() && e.Date.After(f.ToDate) {
		return false
	}
	return true
}

func containsFold(haystack, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(haystack), lowerNeedle)
}
