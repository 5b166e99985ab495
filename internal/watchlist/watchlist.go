// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watchlist persists the accounts a researcher is tracking as a
// YAML file under the data directory. The core pipeline consumes the
// usernames; it does not own the file format.
package watchlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const fileName = "watchlist.yaml"

// Entry is one tracked account.
type Entry struct {
	Username string    `yaml:"username"`
	Note     string    `yaml:"note,omitempty"`
	AddedAt  time.Time `yaml:"added_at"`
}

// Watchlist is the full on-disk document.
type Watchlist struct {
	Entries []Entry `yaml:"entries"`
}

// Path returns the watchlist file location under dir.
func Path(dir string) string {
	return filepath.Join(dir, fileName)
}

// Load reads the watchlist from dir. A missing file yields an empty
// watchlist; a malformed file is an error the caller surfaces.
func Load(dir string) (*Watchlist, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return &Watchlist{}, nil
		}
		return nil, fmt.Errorf("reading watchlist: %w", err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parsing watchlist: %w", err)
	}
	return &wl, nil
}

// Save writes the watchlist back to dir, creating the directory as
// needed.
func (wl *Watchlist) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := yaml.Marshal(wl)
	if err != nil {
		return fmt.Errorf("marshaling watchlist: %w", err)
	}
	return os.WriteFile(Path(dir), data, 0o644)
}

// Add appends a new entry. Duplicate usernames (case-insensitive, with
// or without a leading @) are rejected here at the caller level.
func (wl *Watchlist) Add(username, note string) error {
	username = Canonical(username)
	if username == "" {
		return fmt.Errorf("username is empty")
	}
	if wl.Find(username) != nil {
		return fmt.Errorf("@%s is already on the watchlist", username)
	}
	wl.Entries = append(wl.Entries, Entry{
		Username: username,
		Note:     note,
		AddedAt:  time.Now().UTC(),
	})
	return nil
}

// Remove deletes the entry for username. It reports whether an entry was
// removed.
func (wl *Watchlist) Remove(username string) bool {
	username = Canonical(username)
	for i, e := range wl.Entries {
		if strings.EqualFold(e.Username, username) {
			wl.Entries = append(wl.Entries[:i], wl.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the entry for username, or nil.
func (wl *Watchlist) Find(username string) *Entry {
	username = Canonical(username)
	for i := range wl.Entries {
		if strings.EqualFold(wl.Entries[i].Username, username) {
			return &wl.Entries[i]
		}
	}
	return nil
}

// Canonical strips a leading @ and surrounding whitespace.
func Canonical(username string) string {
	return strings.TrimPrefix(strings.TrimSpace(username), "@")
}
