// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize converts raw provider payloads into canonical post
// records. All provider divergence ends here: downstream code only ever
// sees types.Post.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/feedwatch/internal/provider"
	"github.com/pdiddy/feedwatch/pkg/types"
)

// permalinkBase is the public post URL root.
const permalinkBase = "https://x.com"

// placeholderPath is the permalink path segment used when the author's
// username could not be resolved from the identity side-table.
const placeholderPath = "i/web"

// Pages flattens raw pages into canonical records in page order.
// Structurally absent or empty input produces an empty slice, never an
// error: a malformed page contributes zero records and pagination
// progress from the other pages is kept.
func Pages(pages []*provider.Page) []types.Post {
	var posts []types.Post
	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, item := range page.Items {
			if item.ID == "" {
				continue
			}
			posts = append(posts, Item(item, page.Users))
		}
	}
	return posts
}

// Item maps one raw item and its author side-table into a canonical
// record. Every absent metric defaults to zero, empty entity values are
// dropped, and the permalink is constructed deterministically from
// username and ID.
func Item(item provider.RawItem, users map[string]provider.RawUser) types.Post {
	post := types.Post{
		ID:             item.ID,
		Text:           item.Text,
		AuthorID:       item.AuthorID,
		ConversationID: item.ConversationID,
	}

	// A post with no threading info is its own conversation root.
	if post.ConversationID == "" {
		post.ConversationID = post.ID
	}

	if t, err := time.Parse(time.RFC3339, item.CreatedAt); err == nil {
		post.CreatedAt = t.UTC()
	}

	if u, ok := users[item.AuthorID]; ok {
		post.Username = u.Username
		post.DisplayName = u.Name
	}

	if m := item.Metrics; m != nil {
		post.Metrics = types.Metrics{
			Likes:       m.LikeCount,
			Reposts:     m.RetweetCount,
			Replies:     m.ReplyCount,
			Quotes:      m.QuoteCount,
			Impressions: m.ImpressionCount,
			Bookmarks:   m.BookmarkCount,
		}
	}

	if e := item.Entities; e != nil {
		for _, u := range e.URLs {
			v := u.ExpandedURL
			if v == "" {
				v = u.URL
			}
			if v != "" {
				post.URLs = append(post.URLs, v)
			}
		}
		for _, m := range e.Mentions {
			if m.Username != "" {
				post.Mentions = append(post.Mentions, m.Username)
			}
		}
		for _, h := range e.Hashtags {
			if h.Tag != "" {
				post.Hashtags = append(post.Hashtags, h.Tag)
			}
		}
	}

	post.Permalink = Permalink(post.Username, post.ID)
	return post
}

// Permalink builds the public URL for a post. An unresolved username
// degrades to the provider's placeholder link form.
func Permalink(username, id string) string {
	if username == "" {
		return fmt.Sprintf("%s/%s/status/%s", permalinkBase, placeholderPath, id)
	}
	return fmt.Sprintf("%s/%s/status/%s", permalinkBase, username, id)
}

// Identity extracts the resolved account matching username from the raw
// pages' side-tables. The boolean reports whether a match was found; the
// caller substitutes a placeholder identity otherwise.
func Identity(pages []*provider.Page, username string) (types.Author, bool) {
	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, u := range page.Users {
			if strings.EqualFold(u.Username, username) {
				return types.Author{
					ID:          u.ID,
					Username:    u.Username,
					DisplayName: u.Name,
					Bio:         u.Description,
					Followers:   u.Metrics.FollowersCount,
					Following:   u.Metrics.FollowingCount,
					PostCount:   u.Metrics.TweetCount,
				}, true
			}
		}
	}
	return types.Author{}, false
}
