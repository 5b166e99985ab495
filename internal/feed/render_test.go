// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/feedwatch/pkg/types"
)

func TestFormatTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Contains(t, buf.String(), "No posts found.")
}

func TestFormatTable(t *testing.T) {
	posts := []types.Post{
		{
			ID: "1", Username: "ada",
			Text:      "line one\nline two",
			CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			Metrics:   types.Metrics{Likes: 7, Impressions: 900},
		},
		{ID: "2", Text: "anonymous post"},
	}

	var buf bytes.Buffer
	FormatTable(posts, &buf)
	out := buf.String()

	assert.Contains(t, out, "ada")
	assert.Contains(t, out, "line one line two", "newlines collapse to keep one row per post")
	assert.Contains(t, out, "(unknown)", "a post without identity gets a placeholder author")
	assert.Contains(t, out, "2 posts")
}

func TestFormatTableTruncatesLongText(t *testing.T) {
	posts := []types.Post{{ID: "1", Text: strings.Repeat("x", 200)}}

	var buf bytes.Buffer
	FormatTable(posts, &buf)
	assert.Contains(t, buf.String(), "xxx...")
}

func TestFormatPost(t *testing.T) {
	p := types.Post{
		ID: "1", Username: "ada", DisplayName: "Ada Lovelace",
		Text:      "hello",
		Metrics:   types.Metrics{Likes: 3, Reposts: 1},
		Permalink: "https://x.com/ada/status/1",
	}

	var buf bytes.Buffer
	FormatPost(p, &buf)
	out := buf.String()

	assert.Contains(t, out, "@ada")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "3 likes")
	assert.Contains(t, out, "https://x.com/ada/status/1")
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, FormatJSON([]types.Post{{ID: "1"}}, &buf))
	assert.Contains(t, buf.String(), `"id": "1"`)
}
