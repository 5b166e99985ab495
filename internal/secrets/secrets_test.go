// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverFirstSourceWins(t *testing.T) {
	r := NewResolver(
		StaticSource{"bearer-token": "from-first"},
		StaticSource{"bearer-token": "from-second", "local-tool": "snscrape"},
	)

	v, ok := r.Lookup("bearer-token")
	require.True(t, ok)
	assert.Equal(t, "from-first", v)

	v, ok = r.Lookup("local-tool")
	require.True(t, ok)
	assert.Equal(t, "snscrape", v, "later sources fill keys earlier ones miss")
}

func TestResolverGetFallback(t *testing.T) {
	r := NewResolver(StaticSource{})

	assert.Equal(t, "default", r.Get("bearer-token", "default"))
}

func TestStaticSourceEmptyValueIsMiss(t *testing.T) {
	r := NewResolver(StaticSource{"bearer-token": ""}, StaticSource{"bearer-token": "real"})

	assert.Equal(t, "real", r.Get("bearer-token", ""))
}

func TestEnvSourceKeyMapping(t *testing.T) {
	t.Setenv("FEEDWATCH_BEARER_TOKEN", "  env-token  ")

	v, ok := EnvSource{Prefix: "FEEDWATCH"}.Lookup("bearer-token")
	require.True(t, ok)
	assert.Equal(t, "env-token", v, "values are trimmed")
}

func TestEnvSourceMissingVariable(t *testing.T) {
	_, ok := EnvSource{Prefix: "FEEDWATCH"}.Lookup("definitely-not-set")
	assert.False(t, ok)
}

func TestFileSourceReadsAndTrims(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bearer-token"), []byte("file-token\n"), 0o600))

	v, ok := FileSource{Dir: dir}.Lookup("bearer-token")
	require.True(t, ok)
	assert.Equal(t, "file-token", v)
}

func TestFileSourceRejectsTraversal(t *testing.T) {
	fs := FileSource{Dir: t.TempDir()}

	_, ok := fs.Lookup("../passwd")
	assert.False(t, ok)
	_, ok = fs.Lookup(".hidden")
	assert.False(t, ok)
}

func TestFileSourceMissingDirIsMiss(t *testing.T) {
	_, ok := FileSource{Dir: filepath.Join(t.TempDir(), "nope")}.Lookup("bearer-token")
	assert.False(t, ok)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bearer-token"), []byte("tok\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty"), []byte("   \n"), 0o600))

	values, err := LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bearer-token": "tok"}, values,
		"hidden files and empty values are skipped")
}

func TestLoadDirMissingDirectory(t *testing.T) {
	values, err := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, values)
}
