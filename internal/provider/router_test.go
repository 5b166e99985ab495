// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdapter serves every operation from a canned page sequence, or
// fails uniformly when err is set. availErr simulates a missing
// credential or tool.
type fakeAdapter struct {
	name     string
	availErr error
	err      error
	pages    []*Page

	calls int
}

func (f *fakeAdapter) Name() string     { return f.name }
func (f *fakeAdapter) Available() error { return f.availErr }

func (f *fakeAdapter) serve(cursor string) (*Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	idx := 0
	if cursor != "" {
		fmt.Sscanf(cursor, "c%d", &idx)
	}
	if idx >= len(f.pages) {
		return &Page{}, nil
	}
	return f.pages[idx], nil
}

func (f *fakeAdapter) Search(ctx context.Context, query string, c Constraints, cursor string) (*Page, error) {
	return f.serve(cursor)
}

func (f *fakeAdapter) Thread(ctx context.Context, id string, c Constraints, cursor string) (*Page, error) {
	return f.serve(cursor)
}

func (f *fakeAdapter) Timeline(ctx context.Context, username string, c Constraints, cursor string) (*Page, error) {
	return f.serve(cursor)
}

func (f *fakeAdapter) Lookup(ctx context.Context, id string) (*Page, error) {
	return f.serve("")
}

func onePage(ids ...string) []*Page {
	items := make([]RawItem, len(ids))
	for i, id := range ids {
		items[i] = RawItem{ID: id}
	}
	return []*Page{{Items: items}}
}

func TestRouterPrefersFirstAvailableAdapter(t *testing.T) {
	local := &fakeAdapter{name: "local", pages: onePage("1")}
	remote := &fakeAdapter{name: "xapi", pages: onePage("2")}
	r := NewRouter([]Adapter{local, remote}, 0, nil)

	pages, err := r.Search(context.Background(), "golang", Constraints{}, 1)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "1", pages[0].Items[0].ID)
	assert.Zero(t, remote.calls, "fallback adapter must not be consulted on success")
}

func TestRouterSkipsUnavailableAdapter(t *testing.T) {
	local := &fakeAdapter{
		name:     "local",
		availErr: fmt.Errorf("snscrape not on PATH: %w", ErrUnavailable),
	}
	remote := &fakeAdapter{name: "xapi", pages: onePage("2")}
	r := NewRouter([]Adapter{local, remote}, 0, nil)

	pages, err := r.Search(context.Background(), "golang", Constraints{}, 1)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "2", pages[0].Items[0].ID)
	assert.Zero(t, local.calls)
}

func TestRouterFallsThroughOnTransientFailure(t *testing.T) {
	var warn bytes.Buffer
	local := &fakeAdapter{name: "local", err: errors.New("exit status 1")}
	remote := &fakeAdapter{name: "xapi", pages: onePage("2")}
	r := NewRouter([]Adapter{local, remote}, 0, &warn)

	pages, err := r.Search(context.Background(), "golang", Constraints{}, 1)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "2", pages[0].Items[0].ID)
	assert.Contains(t, warn.String(), "warning: provider local failed for search")
}

func TestRouterExhaustedAllFailed(t *testing.T) {
	local := &fakeAdapter{name: "local", err: errors.New("exit status 1")}
	remote := &fakeAdapter{name: "xapi", err: errors.New("503")}
	r := NewRouter([]Adapter{local, remote}, 0, nil)

	_, err := r.Search(context.Background(), "golang", Constraints{}, 1)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "search", exhausted.Op)
	assert.Len(t, exhausted.Failed, 2)
	assert.False(t, exhausted.ConfigurationMissing(),
		"attempted-and-failed adapters are not a configuration problem")
}

func TestRouterExhaustedAllSkipped(t *testing.T) {
	local := &fakeAdapter{name: "local", availErr: ErrUnavailable}
	remote := &fakeAdapter{name: "xapi", availErr: ErrUnavailable}
	r := NewRouter([]Adapter{local, remote}, 0, nil)

	_, err := r.Thread(context.Background(), "42", Constraints{}, 1)
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Len(t, exhausted.Skipped, 2)
	assert.Empty(t, exhausted.Failed)
	assert.True(t, exhausted.ConfigurationMissing())
}

func TestRouterLookupAbsentPost(t *testing.T) {
	local := &fakeAdapter{name: "local", pages: []*Page{{}}}
	r := NewRouter([]Adapter{local}, 0, nil)

	pages, err := r.Lookup(context.Background(), "404")
	require.NoError(t, err)
	assert.Empty(t, pages, "an absent post is a successful empty result, not an error")
}

func TestRouterDiscardsPartialPagesOnFailure(t *testing.T) {
	// First page succeeds, second fails: nothing from this adapter may
	// leak into the fallback adapter's result.
	calls := 0
	flaky := &flakyAdapter{fail: func() error {
		calls++
		if calls > 1 {
			return errors.New("rate limited")
		}
		return nil
	}}
	remote := &fakeAdapter{name: "xapi", pages: onePage("clean")}
	r := NewRouter([]Adapter{flaky, remote}, 0, nil)

	pages, err := r.Search(context.Background(), "golang", Constraints{}, 3)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "clean", pages[0].Items[0].ID)
}

// flakyAdapter returns token-bearing pages until fail trips.
type flakyAdapter struct {
	fail func() error
}

func (f *flakyAdapter) Name() string     { return "flaky" }
func (f *flakyAdapter) Available() error { return nil }

func (f *flakyAdapter) page() (*Page, error) {
	if err := f.fail(); err != nil {
		return nil, err
	}
	return &Page{Items: []RawItem{{ID: "dirty"}}, NextToken: "more"}, nil
}

func (f *flakyAdapter) Search(ctx context.Context, q string, c Constraints, cur string) (*Page, error) {
	return f.page()
}

func (f *flakyAdapter) Thread(ctx context.Context, id string, c Constraints, cur string) (*Page, error) {
	return f.page()
}

func (f *flakyAdapter) Timeline(ctx context.Context, u string, c Constraints, cur string) (*Page, error) {
	return f.page()
}

func (f *flakyAdapter) Lookup(ctx context.Context, id string) (*Page, error) {
	return f.page()
}
