package media

import (
	"strings"
	"time"
)

// Filter is a record of independent predicates combined with logical AND.
// Zero values mean "no constraint".
type Filter struct {
	Status        Status
	Category      Category
	JobID         string
	Search        string
	From          time.Time
	To            time.Time
	ImportantOnly bool
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Category == "" && f.JobID == "" &&
		f.Search == "" && f.From.IsZero() && f.To.IsZero() && !f.ImportantOnly
}

// Matches evaluates all active predicates against the item.
func (f Filter) Matches(item Item) bool {
	if f.Status != "" && item.Status != f.Status {
		return false
	}
	if f.Category != "" && item.Category != f.Category {
		return false
	}
	if f.JobID != "" && item.JobID != f.JobID {
		return false
	}
	if f.ImportantOnly && !item.IsImportant {
		return false
	}
	if !f.From.IsZero() && item.UploadedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && item.UploadedAt.After(f.To) {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(strings.TrimSpace(f.Search))
		if needle != "" && !matchesSearch(item, needle) {
			return false
		}
	}
	return true
}

// Apply returns the items accepted by the filter, preserving order.
func (f Filter) Apply(items []Item) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if f.Matches(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesSearch(item Item, needle string) bool {
	for _, hay := range []string{item.JobTitle, item.Customer, item.Staff} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
