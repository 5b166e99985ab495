// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package feed orchestrates the fetch pipeline: cache lookup, provider
// routing with fallback, normalization, and deduplication. The CLI layer
// calls into this package and renders whatever comes back.
package feed

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/feedwatch/internal/cache"
	"github.com/pdiddy/feedwatch/internal/normalize"
	"github.com/pdiddy/feedwatch/internal/provider"
	"github.com/pdiddy/feedwatch/internal/rank"
	"github.com/pdiddy/feedwatch/pkg/types"
)

// Service runs logical requests through the cache-router-normalize
// pipeline. A nil cache store disables caching entirely.
type Service struct {
	router *provider.Router
	store  *cache.Store
	warn   io.Writer
}

// New builds a Service. warn receives fallback warnings and cache write
// failures; nil discards them.
func New(router *provider.Router, store *cache.Store, warn io.Writer) *Service {
	if warn == nil {
		warn = io.Discard
	}
	return &Service{router: router, store: store, warn: warn}
}

// envelope is the serialized cache value: the records plus, for profile
// lookups, the resolved identity.
type envelope struct {
	Identity *types.Author `json:"identity,omitempty"`
	Posts    []types.Post  `json:"posts"`
}

// Search returns recent posts matching query, served from cache when a
// live entry exists for the same logical request.
func (s *Service) Search(ctx context.Context, query string, opts types.SearchOptions) ([]types.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query is empty: provide search text")
	}

	sortOrder := string(opts.SortOrder)
	if sortOrder == "" {
		sortOrder = string(types.SortRecency)
	}
	budget := provider.ClampBudget(opts.PageBudget)

	req := cache.Request{
		Op:         "search",
		Query:      query,
		SortOrder:  sortOrder,
		Since:      opts.Since,
		PageBudget: budget,
		PerPage:    opts.MaxResultsPerPage,
	}

	env, err := s.fetch(req, func() ([]*provider.Page, error) {
		return s.router.Search(ctx, query, provider.Constraints{
			PerPage:   opts.MaxResultsPerPage,
			SortOrder: sortOrder,
			Since:     opts.Since,
		}, budget)
	})
	if err != nil {
		return nil, err
	}
	return env.Posts, nil
}

// Thread returns the posts of a conversation.
func (s *Service) Thread(ctx context.Context, conversationID string, opts types.ThreadOptions) ([]types.Post, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" {
		return nil, fmt.Errorf("conversation ID is empty")
	}

	budget := provider.ClampBudget(opts.PageBudget)
	req := cache.Request{
		Op:         "thread",
		Query:      conversationID,
		PageBudget: budget,
	}

	env, err := s.fetch(req, func() ([]*provider.Page, error) {
		return s.router.Thread(ctx, conversationID, provider.Constraints{}, budget)
	})
	if err != nil {
		return nil, err
	}
	return env.Posts, nil
}

// Profile returns an account's identity and recent posts.
func (s *Service) Profile(ctx context.Context, username string, opts types.ProfileOptions) (types.ProfileResult, error) {
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return types.ProfileResult{}, fmt.Errorf("username is empty")
	}

	count := opts.Count
	if count <= 0 {
		count = 25
	}
	perPage := count
	if perPage > 100 {
		perPage = 100
	}
	budget := provider.ClampBudget((count + perPage - 1) / perPage)

	req := cache.Request{
		Op:             "profile",
		Query:          username,
		PerPage:        count,
		IncludeReplies: opts.IncludeReplies,
	}

	var identity types.Author
	env, err := s.fetch(req, func() ([]*provider.Page, error) {
		pages, err := s.router.Timeline(ctx, username, provider.Constraints{
			PerPage:        perPage,
			IncludeReplies: opts.IncludeReplies,
		}, budget)
		if err != nil {
			return nil, err
		}
		var ok bool
		if identity, ok = normalize.Identity(pages, username); !ok {
			// Identity expansion was absent; keep the username the
			// caller asked for as a placeholder.
			identity = types.Author{Username: username}
		}
		return pages, nil
	}, &identity)
	if err != nil {
		return types.ProfileResult{}, err
	}

	posts := env.Posts
	if len(posts) > count {
		posts = posts[:count]
	}
	result := types.ProfileResult{Posts: posts}
	if env.Identity != nil {
		result.Identity = *env.Identity
	}
	return result, nil
}

// Lookup returns a single post by ID, or nil when the post does not
// exist. Absence is cached like any other successful fetch.
func (s *Service) Lookup(ctx context.Context, id string) (*types.Post, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("post ID is empty")
	}

	req := cache.Request{Op: "post", Query: id}
	env, err := s.fetch(req, func() ([]*provider.Page, error) {
		return s.router.Lookup(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if len(env.Posts) == 0 {
		return nil, nil
	}
	return &env.Posts[0], nil
}

// fetch is the shared cache-or-fetch path. identity, when non-nil, points
// at a value the fetch closure fills in; it rides along in the cached
// envelope so profile cache hits restore it too.
func (s *Service) fetch(req cache.Request, fn func() ([]*provider.Page, error), identity ...*types.Author) (envelope, error) {
	fingerprint := req.Fingerprint()

	var env envelope
	if s.store != nil {
		if hit, err := s.store.Get(fingerprint, &env); err == nil && hit {
			return env, nil
		}
	}

	pages, err := fn()
	if err != nil {
		return envelope{}, err
	}

	env = envelope{Posts: rank.Dedupe(normalize.Pages(pages))}
	if len(identity) > 0 && identity[0] != nil {
		env.Identity = identity[0]
	}

	if s.store != nil {
		if err := s.store.Put(fingerprint, env); err != nil {
			fmt.Fprintf(s.warn, "warning: cache write failed: %v\n", err)
		}
	}
	return env, nil
}
