// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves provider credentials from an explicit, ordered
// chain of sources: the process environment first, then a directory of
// plain-text files where the filename is the key name and the trimmed
// contents are the value.
//
// Supported key files: bearer-token, local-tool.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source supplies credential values by key. Implementations must treat a
// missing key as (value "", found false), never as an error.
type Source interface {
	Lookup(key string) (string, bool)
}

// Resolver walks its sources in order and returns the first hit. The
// chain is built once at process start and injected into whatever needs
// credentials, so tests can substitute fake sources.
type Resolver struct {
	sources []Source
}

// NewResolver builds a resolver over sources in lookup priority order.
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{sources: sources}
}

// Lookup returns the first value any source supplies for key.
func (r *Resolver) Lookup(key string) (string, bool) {
	for _, s := range r.sources {
		if v, ok := s.Lookup(key); ok {
			return v, true
		}
	}
	return "", false
}

// Get returns the value for key or fallback when no source has it.
func (r *Resolver) Get(key, fallback string) string {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	return fallback
}

// EnvSource reads keys from the process environment. A key like
// "bearer-token" maps to the variable <Prefix>_BEARER_TOKEN.
type EnvSource struct {
	Prefix string
}

// Lookup implements Source.
func (e EnvSource) Lookup(key string) (string, bool) {
	name := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
	if e.Prefix != "" {
		name = e.Prefix + "_" + name
	}
	v := strings.TrimSpace(os.Getenv(name))
	return v, v != ""
}

// FileSource reads keys from a directory of one-file-per-key secrets.
// A missing directory or missing file is simply a miss.
type FileSource struct {
	Dir string
}

// Lookup implements Source.
func (f FileSource) Lookup(key string) (string, bool) {
	if strings.Contains(key, string(os.PathSeparator)) || strings.HasPrefix(key, ".") {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(f.Dir, key))
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(string(data))
	return v, v != ""
}

// StaticSource serves a fixed map. Tests use it in place of real files
// or environment variables.
type StaticSource map[string]string

// Lookup implements Source.
func (s StaticSource) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok && v != ""
}

// LoadDir reads every non-hidden file in dir and returns a map of
// filename to trimmed contents. A missing directory is not an error.
// Unreadable files produce a warning on stderr but do not abort.
func LoadDir(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			values[entry.Name()] = v
		}
	}
	return values, nil
}
