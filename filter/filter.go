package filter

import (
	"strings"

	"github.com/bitmark-inc/community-aid/schema"
)

// All matches every category or urgency
const All = schema.CategoryAll

// Categories are the category options of the search view, "All" first
var Categories = append([]string{All}, schema.Categories...)

// UrgencyLevels are the urgency options of the request search view
var UrgencyLevels = []string{
	All,
	string(schema.UrgencyHigh),
	string(schema.UrgencyMedium),
	string(schema.UrgencyLow),
}

// Criteria selects the visible listings. Empty fields match everything.
type Criteria struct {
	Query    string
	Category string
	Urgency  string
}

// urgent is implemented by listings that carry an urgency
type urgent interface {
	UrgencyLevel() schema.Urgency
}

// owned is implemented by listings that name the person who posted them
type owned interface {
	Owner() string
}

func (c Criteria) match(l *schema.Listing, item interface{}) bool {
	if c.Query != "" {
		q := strings.ToLower(c.Query)
		if !strings.Contains(strings.ToLower(l.Title), q) &&
			!strings.Contains(strings.ToLower(l.Description), q) {
			return false
		}
	}

	if c.Category != "" && c.Category != All && l.Category != c.Category {
		return false
	}

	if c.Urgency != "" && c.Urgency != All {
		u, ok := item.(urgent)
		if ok && string(u.UrgencyLevel()) != c.Urgency {
			return false
		}
	}

	return true
}

// Apply returns the listings matching c in their original order. The input
// is never modified.
func Apply[T any, PT schema.Record[T]](items []T, c Criteria) []T {
	result := make([]T, 0, len(items))
	for i := range items {
		item := items[i]
		if c.match(PT(&item).Common(), item) {
			result = append(result, item)
		}
	}
	return result
}

// OwnedBy returns the listings posted by name, compared case-insensitively
func OwnedBy[T any](items []T, name string) []T {
	name = strings.TrimSpace(name)

	result := make([]T, 0)
	for _, item := range items {
		o, ok := any(item).(owned)
		if ok && strings.EqualFold(strings.TrimSpace(o.Owner()), name) {
			result = append(result, item)
		}
	}
	return result
}

// Count tallies listings per category, e.g. for the admin dashboard
func Count[T any, PT schema.Record[T]](items []T) map[string]int {
	counts := make(map[string]int, len(schema.Categories))
	for i := range items {
		counts[PT(&items[i]).Common().Category]++
	}
	return counts
}
