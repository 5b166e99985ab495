// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Router holds adapters in priority order (cheap local tool before the
// metered remote API) and serves each logical operation from the first
// adapter that can complete it. Exactly one adapter's result backs the
// final output; partial pages from a failed adapter are discarded rather
// than mixed with another adapter's pages.
type Router struct {
	adapters []Adapter
	delay    time.Duration
	warn     io.Writer
}

// NewRouter builds a router over adapters in the given priority order.
// delay is the inter-page pacing delay; warnings about skipped or failed
// adapters are written to warn.
func NewRouter(adapters []Adapter, delay time.Duration, warn io.Writer) *Router {
	if warn == nil {
		warn = io.Discard
	}
	return &Router{adapters: adapters, delay: delay, warn: warn}
}

// Search fetches up to budget pages of recent posts matching query.
func (r *Router) Search(ctx context.Context, query string, c Constraints, budget int) ([]*Page, error) {
	return r.attempt("search", func(a Adapter) ([]*Page, error) {
		return Collect(ctx, budget, r.delay, func(ctx context.Context, cursor string) (*Page, error) {
			return a.Search(ctx, query, c, cursor)
		})
	})
}

// Thread fetches up to budget pages of the conversation.
func (r *Router) Thread(ctx context.Context, conversationID string, c Constraints, budget int) ([]*Page, error) {
	return r.attempt("thread", func(a Adapter) ([]*Page, error) {
		return Collect(ctx, budget, r.delay, func(ctx context.Context, cursor string) (*Page, error) {
			return a.Thread(ctx, conversationID, c, cursor)
		})
	})
}

// Timeline fetches up to budget pages of a user's recent posts.
func (r *Router) Timeline(ctx context.Context, username string, c Constraints, budget int) ([]*Page, error) {
	return r.attempt("profile", func(a Adapter) ([]*Page, error) {
		return Collect(ctx, budget, r.delay, func(ctx context.Context, cursor string) (*Page, error) {
			return a.Timeline(ctx, username, c, cursor)
		})
	})
}

// Lookup fetches a single post by ID. An absent post yields zero pages.
func (r *Router) Lookup(ctx context.Context, id string) ([]*Page, error) {
	return r.attempt("post", func(a Adapter) ([]*Page, error) {
		page, err := a.Lookup(ctx, id)
		if err != nil {
			return nil, err
		}
		if page == nil || len(page.Items) == 0 {
			return nil, nil
		}
		return []*Page{page}, nil
	})
}

// attempt tries adapters in order: unavailable adapters are skipped,
// transient failures are logged and the next adapter is tried. When no
// adapter completes the request it returns an ExhaustedError carrying
// both classes of outcome.
func (r *Router) attempt(op string, fn func(Adapter) ([]*Page, error)) ([]*Page, error) {
	exhausted := &ExhaustedError{Op: op}

	for _, a := range r.adapters {
		if err := a.Available(); err != nil {
			exhausted.Skipped = append(exhausted.Skipped, fmt.Sprintf("%s: %v", a.Name(), err))
			continue
		}

		pages, err := fn(a)
		if err != nil {
			fmt.Fprintf(r.warn, "warning: provider %s failed for %s: %v\n", a.Name(), op, err)
			exhausted.Failed = append(exhausted.Failed, fmt.Sprintf("%s: %v", a.Name(), err))
			continue
		}
		return pages, nil
	}

	return nil, exhausted
}
