// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data structures passed between feedwatch
// stages: the canonical post record, author identity, request options, and
// stage configuration.
package types

import "time"

// Post is the canonical, provider-independent representation of one social
// media post. Every provider payload is normalized into this shape before
// any filtering, sorting, caching, or rendering happens.
type Post struct {
	// ID is the opaque stable post identifier, unique per post.
	ID string `json:"id" yaml:"id"`

	// Text is the raw body content.
	Text string `json:"text" yaml:"text"`

	// AuthorID is the provider's identifier for the author. Username and
	// DisplayName may be empty when the provider's identity expansion was
	// absent from the payload.
	AuthorID    string `json:"author_id" yaml:"author_id"`
	Username    string `json:"username,omitempty" yaml:"username,omitempty"`
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty"`

	// CreatedAt is the post timestamp. Zero when the payload carried no
	// parseable timestamp.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// ConversationID groups a post with its thread. Equals ID for a root
	// post or when the provider supplied no threading information.
	ConversationID string `json:"conversation_id" yaml:"conversation_id"`

	Metrics Metrics `json:"metrics" yaml:"metrics"`

	URLs     []string `json:"urls,omitempty" yaml:"urls,omitempty"`
	Mentions []string `json:"mentions,omitempty" yaml:"mentions,omitempty"`
	Hashtags []string `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`

	// Permalink is derived from username and ID. When the username is
	// unresolved it degrades to the provider's placeholder form.
	Permalink string `json:"permalink" yaml:"permalink"`
}

// Metrics holds the engagement counts for a post. Every field defaults to
// zero when absent from the provider payload.
type Metrics struct {
	Likes       int `json:"likes" yaml:"likes"`
	Reposts     int `json:"reposts" yaml:"reposts"`
	Replies     int `json:"replies" yaml:"replies"`
	Quotes      int `json:"quotes" yaml:"quotes"`
	Impressions int `json:"impressions" yaml:"impressions"`
	Bookmarks   int `json:"bookmarks" yaml:"bookmarks"`
}

// Author is a resolved account identity returned by profile lookups.
type Author struct {
	ID          string `json:"id" yaml:"id"`
	Username    string `json:"username" yaml:"username"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Bio         string `json:"bio,omitempty" yaml:"bio,omitempty"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`
	PostCount   int    `json:"post_count" yaml:"post_count"`
}

// SortOrder selects how a provider should order search results.
type SortOrder string

const (
	SortRecency   SortOrder = "recency"
	SortRelevance SortOrder = "relevance"
)

// SearchOptions are the caller-supplied parameters for a search request.
type SearchOptions struct {
	// MaxResultsPerPage caps results per provider page (default 25).
	MaxResultsPerPage int

	// PageBudget bounds the number of pages fetched (1-5, default 1).
	PageBudget int

	// SortOrder is recency or relevance (default recency).
	SortOrder SortOrder

	// Since restricts results to posts newer than now-Since. Zero means
	// no lower time bound.
	Since time.Duration
}

// ThreadOptions are the parameters for a thread expansion request.
type ThreadOptions struct {
	PageBudget int
}

// ProfileOptions are the parameters for a profile timeline request.
type ProfileOptions struct {
	// Count is the number of timeline posts to fetch (default 25).
	Count int

	// IncludeReplies keeps the author's replies in the timeline.
	IncludeReplies bool
}

// ProfileResult pairs a resolved identity with the author's recent posts.
type ProfileResult struct {
	Identity Author `json:"identity" yaml:"identity"`
	Posts    []Post `json:"posts" yaml:"posts"`
}
