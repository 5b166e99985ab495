// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank applies engagement filtering, sorting, and deduplication
// over canonical records. The upstream APIs cannot do any of this
// server-side, so it runs post-hoc. Every function is pure: no I/O, and
// the input slice is never mutated.
package rank

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/feedwatch/pkg/types"
)

// Metrics lists the metric names SortBy accepts.
var Metrics = []string{"likes", "reposts", "replies", "quotes", "impressions", "bookmarks"}

// SortBy returns the records ordered by the named metric, descending.
// The sort is stable: records with equal metric values keep their
// relative input order, so identical input always yields identical
// output. Callers depend on that determinism.
func SortBy(posts []types.Post, metric string) ([]types.Post, error) {
	key, err := metricKey(metric)
	if err != nil {
		return nil, err
	}

	sorted := make([]types.Post, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	return sorted, nil
}

func metricKey(metric string) (func(types.Post) int, error) {
	switch strings.ToLower(metric) {
	case "likes":
		return func(p types.Post) int { return p.Metrics.Likes }, nil
	case "reposts", "reshares":
		return func(p types.Post) int { return p.Metrics.Reposts }, nil
	case "replies":
		return func(p types.Post) int { return p.Metrics.Replies }, nil
	case "quotes":
		return func(p types.Post) int { return p.Metrics.Quotes }, nil
	case "impressions":
		return func(p types.Post) int { return p.Metrics.Impressions }, nil
	case "bookmarks":
		return func(p types.Post) int { return p.Metrics.Bookmarks }, nil
	default:
		return nil, fmt.Errorf("unknown metric %q: use one of %s", metric, strings.Join(Metrics, ", "))
	}
}

// Thresholds are the minimum engagement counts a record must meet. A
// zero threshold is treated as not supplied.
type Thresholds struct {
	MinLikes       int
	MinImpressions int
}

// IsZero reports whether no threshold was supplied.
func (t Thresholds) IsZero() bool {
	return t.MinLikes <= 0 && t.MinImpressions <= 0
}

// FilterEngagement retains records meeting every supplied threshold.
// With no thresholds the input is returned unchanged.
func FilterEngagement(posts []types.Post, t Thresholds) []types.Post {
	if t.IsZero() {
		return posts
	}

	var kept []types.Post
	for _, p := range posts {
		if t.MinLikes > 0 && p.Metrics.Likes < t.MinLikes {
			continue
		}
		if t.MinImpressions > 0 && p.Metrics.Impressions < t.MinImpressions {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// Dedupe removes duplicate records by ID in a single pass, keeping the
// first occurrence and preserving relative order. Records with the same
// ID are identical regardless of which provider produced them, so
// provenance plays no part in the comparison.
func Dedupe(posts []types.Post) []types.Post {
	if len(posts) == 0 {
		return posts
	}

	seen := make(map[string]struct{}, len(posts))
	deduped := make([]types.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		deduped = append(deduped, p)
	}
	return deduped
}
