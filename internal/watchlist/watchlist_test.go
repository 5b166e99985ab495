// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCanonicalizesUsername(t *testing.T) {
	wl := &Watchlist{}

	require.NoError(t, wl.Add("  @ada ", "first programmer"))
	require.Len(t, wl.Entries, 1)
	assert.Equal(t, "ada", wl.Entries[0].Username)
	assert.Equal(t, "first programmer", wl.Entries[0].Note)
	assert.False(t, wl.Entries[0].AddedAt.IsZero())
}

func TestAddRejectsDuplicates(t *testing.T) {
	wl := &Watchlist{}
	require.NoError(t, wl.Add("ada", ""))

	err := wl.Add("@Ada", "")
	require.Error(t, err, "duplicate check ignores case and the @ prefix")
	assert.Contains(t, err.Error(), "already on the watchlist")
}

func TestAddRejectsEmptyUsername(t *testing.T) {
	wl := &Watchlist{}
	assert.Error(t, wl.Add("  @ ", ""))
}

func TestRemove(t *testing.T) {
	wl := &Watchlist{}
	require.NoError(t, wl.Add("ada", ""))
	require.NoError(t, wl.Add("grace", ""))

	assert.True(t, wl.Remove("@ADA"))
	assert.Len(t, wl.Entries, 1)
	assert.Equal(t, "grace", wl.Entries[0].Username)

	assert.False(t, wl.Remove("ada"), "removing an absent entry reports false")
}

func TestFind(t *testing.T) {
	wl := &Watchlist{}
	require.NoError(t, wl.Add("ada", "note"))

	e := wl.Find("@Ada")
	require.NotNil(t, e)
	assert.Equal(t, "note", e.Note)

	assert.Nil(t, wl.Find("grace"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	wl, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, wl.Entries)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(Path(dir), []byte("entries: [not: valid"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	wl := &Watchlist{}
	require.NoError(t, wl.Add("ada", "first programmer"))
	require.NoError(t, wl.Add("grace", ""))
	require.NoError(t, wl.Save(dir), "Save creates the data directory as needed")

	loaded, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 2)
	assert.Equal(t, "ada", loaded.Entries[0].Username)
	assert.Equal(t, "first programmer", loaded.Entries[0].Note)
	assert.Equal(t, wl.Entries[0].AddedAt.Unix(), loaded.Entries[0].AddedAt.Unix())
}
