// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/feedwatch/pkg/types"
)

func TestQueryFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "query.yaml")

	posts := []types.Post{
		{ID: "1", Text: "hello", Username: "ada", Metrics: types.Metrics{Likes: 3}},
		{ID: "2", Text: "world"},
	}
	opts := types.SearchOptions{
		MaxResultsPerPage: 50,
		PageBudget:        2,
		SortOrder:         types.SortRecency,
		Since:             24 * time.Hour,
	}
	require.NoError(t, WriteQueryFile(path, "golang", opts, posts))

	qf, err := ReadQueryFile(path)
	require.NoError(t, err)

	assert.Equal(t, "golang", qf.Query.Text)
	assert.Equal(t, "recency", qf.Query.SortOrder)
	assert.Equal(t, "24h0m0s", qf.Query.Since)
	assert.Equal(t, 2, qf.Query.Pages)
	assert.Equal(t, 50, qf.Query.PerPage)
	assert.Equal(t, 2, qf.Summary.Total)
	require.Len(t, qf.Results, 2)
	assert.Equal(t, "hello", qf.Results[0].Text)
	assert.Equal(t, 3, qf.Results[0].Metrics.Likes)
}

func TestReadQueryFileMissing(t *testing.T) {
	_, err := ReadQueryFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestReadQueryFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("query: [not: valid"), 0o644))

	_, err := ReadQueryFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing query file")
}
