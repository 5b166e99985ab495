// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tokenPages yields pages with continuation tokens until n pages have
// been served, recording the cursors it was called with.
func tokenPages(n int, cursors *[]string) PageFunc {
	served := 0
	return func(ctx context.Context, cursor string) (*Page, error) {
		*cursors = append(*cursors, cursor)
		served++
		page := &Page{Items: []RawItem{{ID: strconv.Itoa(served)}}}
		if served < n {
			page.NextToken = "t" + strconv.Itoa(served)
		}
		return page, nil
	}
}

func TestCollectStopsAtBudget(t *testing.T) {
	var cursors []string
	pages, err := Collect(context.Background(), 2, 0, tokenPages(10, &cursors))
	require.NoError(t, err)
	assert.Len(t, pages, 2)
	assert.Equal(t, []string{"", "t1"}, cursors, "cursor must carry forward between pages")
}

func TestCollectStopsWhenTokenRunsOut(t *testing.T) {
	var cursors []string
	pages, err := Collect(context.Background(), 5, 0, tokenPages(2, &cursors))
	require.NoError(t, err)
	assert.Len(t, pages, 2, "collection ends early when the provider has no more pages")
}

func TestCollectStopsOnEmptyPage(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (*Page, error) {
		calls++
		if calls == 1 {
			return &Page{Items: []RawItem{{ID: "1"}}, NextToken: "t1"}, nil
		}
		return &Page{NextToken: "t2"}, nil
	}

	pages, err := Collect(context.Background(), 5, 0, fetch)
	require.NoError(t, err)
	assert.Len(t, pages, 1, "a token-bearing but empty page still ends the collection")
	assert.Equal(t, 2, calls)
}

func TestCollectAbortsAndDiscardsOnError(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, cursor string) (*Page, error) {
		calls++
		if calls == 1 {
			return &Page{Items: []RawItem{{ID: "1"}}, NextToken: "t1"}, nil
		}
		return nil, errors.New("429 rate limited")
	}

	pages, err := Collect(context.Background(), 3, 0, fetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2:")
	assert.Nil(t, pages, "a mid-collection failure discards pages already fetched")
}

func TestClampBudget(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{MaxPageBudget, MaxPageBudget},
		{MaxPageBudget + 1, MaxPageBudget},
		{100, MaxPageBudget},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampBudget(tt.in), "ClampBudget(%d)", tt.in)
	}
}

func TestCollectHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, 3, 0, func(ctx context.Context, cursor string) (*Page, error) {
		return nil, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}
