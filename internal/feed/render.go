// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/feedwatch/pkg/types"
)

// FormatTable writes posts as a human-readable table to w.
func FormatTable(posts []types.Post, w io.Writer) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-16s  %-52s  %-16s  %7s  %9s\n",
		"Rank", "Author", "Text", "Posted", "Likes", "Views")
	fmt.Fprintln(w, strings.Repeat("-", 116))

	for i, p := range posts {
		author := p.Username
		if author == "" {
			author = "(unknown)"
		}
		posted := ""
		if !p.CreatedAt.IsZero() {
			posted = p.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%-4d  %-16s  %-52s  %-16s  %7d  %9d\n",
			i+1, truncate(author, 16), truncate(flatten(p.Text), 52), posted,
			p.Metrics.Likes, p.Metrics.Impressions)
	}

	fmt.Fprintf(w, "\n%d posts\n", len(posts))
}

// FormatProfile writes a profile header followed by the post table.
func FormatProfile(result types.ProfileResult, w io.Writer) {
	id := result.Identity
	name := id.Username
	if name == "" {
		name = "(unknown)"
	}
	fmt.Fprintf(w, "@%s", name)
	if id.DisplayName != "" {
		fmt.Fprintf(w, " (%s)", id.DisplayName)
	}
	fmt.Fprintln(w)
	if id.Bio != "" {
		fmt.Fprintln(w, id.Bio)
	}
	fmt.Fprintf(w, "%d followers, %d following, %d posts\n\n",
		id.Followers, id.Following, id.PostCount)

	FormatTable(result.Posts, w)
}

// FormatPost writes one post in full detail.
func FormatPost(p types.Post, w io.Writer) {
	author := p.Username
	if author == "" {
		author = "(unknown)"
	}
	fmt.Fprintf(w, "@%s", author)
	if p.DisplayName != "" {
		fmt.Fprintf(w, " (%s)", p.DisplayName)
	}
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, " - %s", p.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, p.Text)
	fmt.Fprintf(w, "\n%d likes, %d reposts, %d replies, %d quotes, %d views\n",
		p.Metrics.Likes, p.Metrics.Reposts, p.Metrics.Replies,
		p.Metrics.Quotes, p.Metrics.Impressions)
	fmt.Fprintln(w, p.Permalink)
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// flatten collapses newlines so a post stays on one table row.
func flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
