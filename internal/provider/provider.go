// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider fetches raw social-media data from upstream sources.
// Each source sits behind the Adapter interface; the Router tries adapters
// in priority order and falls through on failure, so callers see one
// logical fetch regardless of which source served it.
package provider

import (
	"context"
	"time"
)

// Adapter translates logical read operations into requests against one
// upstream provider. Implementations differ in transport (local process
// invocation vs. remote HTTP) and authentication, per the Strategy
// pattern used throughout the pipeline.
//
// Every paged operation takes an opaque cursor from the previous page and
// returns at most one page; the pagination loop in Collect drives the
// multi-page retrieval.
type Adapter interface {
	// Name returns the adapter identifier used in logs and errors.
	Name() string

	// Available reports whether the adapter can serve requests at all.
	// A non-nil error means skip this adapter without counting a failure
	// (missing credential, missing local tool). Transient request errors
	// are reported by the operations themselves, not here.
	Available() error

	// Search fetches one page of recent posts matching query.
	Search(ctx context.Context, query string, c Constraints, cursor string) (*Page, error)

	// Thread fetches one page of the conversation identified by
	// conversationID.
	Thread(ctx context.Context, conversationID string, c Constraints, cursor string) (*Page, error)

	// Timeline fetches one page of a user's recent posts. The returned
	// page's user side-table includes the resolved account identity.
	Timeline(ctx context.Context, username string, c Constraints, cursor string) (*Page, error)

	// Lookup fetches a single post by ID. An absent post yields a page
	// with zero items and a nil error.
	Lookup(ctx context.Context, id string) (*Page, error)
}

// Constraints bound a paged operation.
type Constraints struct {
	// PerPage caps the number of results per page.
	PerPage int

	// SortOrder is "recency" or "relevance". Adapters that cannot sort
	// server-side ignore it; the caller re-sorts post-hoc.
	SortOrder string

	// Since restricts results to posts newer than now-Since. Zero means
	// no lower bound.
	Since time.Duration

	// IncludeReplies keeps replies in timeline results.
	IncludeReplies bool
}

// Page is one page of raw provider output: the items, the author identity
// side-table keyed by author ID, and the continuation token for the next
// page (empty at end of results).
type Page struct {
	Items     []RawItem
	Users     map[string]RawUser
	NextToken string
}

// RawItem is a provider post before normalization. Field names mirror the
// remote API's wire shape; the local tool adapter converts its own output
// into this same shape so a single normalizer serves both.
type RawItem struct {
	ID             string      `json:"id"`
	Text           string      `json:"text"`
	AuthorID       string      `json:"author_id"`
	ConversationID string      `json:"conversation_id"`
	CreatedAt      string      `json:"created_at"`
	Metrics        *RawMetrics  `json:"public_metrics"`
	Entities       *RawEntities `json:"entities"`
}

// RawMetrics carries the engagement counts as the provider reports them.
// A nil RawMetrics on an item means the payload omitted the block.
type RawMetrics struct {
	LikeCount       int `json:"like_count"`
	RetweetCount    int `json:"retweet_count"`
	ReplyCount      int `json:"reply_count"`
	QuoteCount      int `json:"quote_count"`
	ImpressionCount int `json:"impression_count"`
	BookmarkCount   int `json:"bookmark_count"`
}

// RawEntities holds the nested entity structures extracted from the text.
type RawEntities struct {
	URLs     []RawURL     `json:"urls"`
	Mentions []RawMention `json:"mentions"`
	Hashtags []RawHashtag `json:"hashtags"`
}

type RawURL struct {
	ExpandedURL string `json:"expanded_url"`
	URL         string `json:"url"`
}

type RawMention struct {
	Username string `json:"username"`
}

type RawHashtag struct {
	Tag string `json:"tag"`
}

// RawUser is an account identity from the provider's expansion side-table.
type RawUser struct {
	ID          string         `json:"id"`
	Username    string         `json:"username"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Metrics     RawUserMetrics `json:"public_metrics"`
}

// RawUserMetrics carries account-level counts.
type RawUserMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
}
