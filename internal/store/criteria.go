// Package store holds the client-facing collection state: for each entity
// type a canonical list as last fetched, plus a filtered projection derived
// from it. All transitions go through reducer-style methods so the two lists
// are always updated together.
package store

import (
	"strings"

	"educonnect/internal/models"
)

// Criteria is the conjunction of active filter options. The zero value
// matches everything: empty or "all" strings and nil pointers are no-ops.
type Criteria struct {
	Type          string
	Category      string
	IsFree        *bool
	Verified      *bool
	SearchQuery   string
	MaxDistanceKm *float64
}

func matchesString(want, got string) bool {
	return want == "" || want == "all" || want == got
}

func matchesSearch(query, title string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(query))
}

// MatchResource reports whether r satisfies every active criterion.
func (c Criteria) MatchResource(r models.Resource) bool {
	if !matchesString(c.Type, string(r.Type)) {
		return false
	}
	if !matchesString(c.Category, r.Category) {
		return false
	}
	if c.IsFree != nil && r.IsFree != *c.IsFree {
		return false
	}
	return matchesSearch(c.SearchQuery, r.Title)
}

// MatchDeal reports whether d satisfies every active criterion. The
// proximity criterion only admits deals whose distance has already been
// computed and falls strictly below the threshold.
func (c Criteria) MatchDeal(d models.Deal) bool {
	if !matchesString(c.Category, d.Category) {
		return false
	}
	if c.Verified != nil && d.Verified != *c.Verified {
		return false
	}
	if c.MaxDistanceKm != nil {
		if d.Distance == nil || *d.Distance >= *c.MaxDistanceKm {
			return false
		}
	}
	return matchesSearch(c.SearchQuery, d.Title)
}

// MatchPost reports whether p satisfies every active criterion. Posts are
// filtered by category only.
func (c Criteria) MatchPost(p models.Post) bool {
	return matchesString(c.Category, p.Category)
}

// Filter returns the ordered sub-sequence of items matching the criteria.
// It preserves relative order, so filtering an already-filtered list with
// the same criteria is a no-op.
func Filter[T any](items []T, c Criteria, match func(Criteria, T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if match(c, item) {
			out = append(out, item)
		}
	}
	return out
}

// FilterResources applies the criteria to a resource list.
func FilterResources(items []models.Resource, c Criteria) []models.Resource {
	return Filter(items, c, Criteria.MatchResource)
}

// FilterDeals applies the criteria to a deal list.
func FilterDeals(items []models.Deal, c Criteria) []models.Deal {
	return Filter(items, c, Criteria.MatchDeal)
}

// FilterPosts applies the criteria to a post list.
func FilterPosts(items []models.Post, c Criteria) []models.Post {
	return Filter(items, c, Criteria.MatchPost)
}
