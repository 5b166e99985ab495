// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

const (
	// MaxPageBudget bounds how many pages one logical request may fetch.
	MaxPageBudget = 5
)

// PageFunc fetches one page for the cursor carried forward from the
// previous page. An empty cursor requests the first page.
type PageFunc func(ctx context.Context, cursor string) (*Page, error)

// ClampBudget normalizes a caller-supplied page budget into [1, MaxPageBudget].
func ClampBudget(budget int) int {
	if budget < 1 {
		return 1
	}
	if budget > MaxPageBudget {
		return MaxPageBudget
	}
	return budget
}

// Collect drives a paged operation against a single adapter. It fetches
// pages until the budget is exhausted, the provider returns no
// continuation token, or a page comes back empty. A pacing delay is
// enforced between pages of the same request, never before the first page.
//
// Any page error aborts the collection and discards pages already
// fetched; the router treats that as one failed attempt for the adapter.
func Collect(ctx context.Context, budget int, delay time.Duration, fetch PageFunc) ([]*Page, error) {
	budget = ClampBudget(budget)

	// Token bucket with one initial token: the first Wait passes
	// immediately, later Waits pace the remaining pages.
	var limiter *rate.Limiter
	if delay > 0 {
		limiter = rate.NewLimiter(rate.Every(delay), 1)
	}

	var pages []*Page
	cursor := ""
	for i := 0; i < budget; i++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		page, err := fetch(ctx, cursor)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		if page == nil || len(page.Items) == 0 {
			break
		}
		pages = append(pages, page)

		if page.NextToken == "" {
			break
		}
		cursor = page.NextToken
	}
	return pages, nil
}
