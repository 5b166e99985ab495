// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

const defaultLocalTool = "snscrape"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// LocalToolAdapter shells out to an snscrape-style scraping tool installed
// on the host. It is free and therefore ordered before the metered remote
// API. The tool has no pagination: each operation returns a single page
// with no continuation token, sized by its --max-results flag.
type LocalToolAdapter struct {
	bin  string
	exec executor
}

// NewLocalToolAdapter builds the local adapter. An empty bin selects the
// default tool name.
func NewLocalToolAdapter(bin string) *LocalToolAdapter {
	if bin == "" {
		bin = defaultLocalTool
	}
	return &LocalToolAdapter{bin: bin, exec: &osExecutor{}}
}

// Name returns the adapter identifier.
func (l *LocalToolAdapter) Name() string { return l.bin }

// Available reports whether the tool binary exists on PATH.
func (l *LocalToolAdapter) Available() error {
	if _, err := l.exec.LookPath(l.bin); err != nil {
		return fmt.Errorf("%s not found on PATH: %w", l.bin, ErrUnavailable)
	}
	return nil
}

// Search scrapes recent posts matching query. The tool orders by recency;
// a relevance preference is left to post-hoc sorting.
func (l *LocalToolAdapter) Search(ctx context.Context, query string, c Constraints, cursor string) (*Page, error) {
	return l.scrape(ctx, c, "twitter-search", searchQuery(query, c))
}

// Thread scrapes a conversation via the tool's search filter syntax.
func (l *LocalToolAdapter) Thread(ctx context.Context, conversationID string, c Constraints, cursor string) (*Page, error) {
	return l.scrape(ctx, c, "twitter-search", "conversation_id:"+conversationID)
}

// Timeline scrapes a user's posts. Identity comes from the per-item user
// objects the tool embeds, so no separate profile call is needed.
func (l *LocalToolAdapter) Timeline(ctx context.Context, username string, c Constraints, cursor string) (*Page, error) {
	q := "from:" + username
	if !c.IncludeReplies {
		q += " -filter:replies"
	}
	return l.scrape(ctx, c, "twitter-search", q)
}

// Lookup scrapes a single post by ID. A missing post yields an empty page.
func (l *LocalToolAdapter) Lookup(ctx context.Context, id string) (*Page, error) {
	out, err := l.exec.Output(ctx, l.bin, "--jsonl", "--max-results", "1", "twitter-tweet", id)
	if err != nil {
		// The tool exits non-zero for unknown IDs; with no output that is
		// an absent post, not a transport failure.
		if len(bytes.TrimSpace(out)) == 0 {
			return &Page{}, nil
		}
		return nil, fmt.Errorf("running %s: %w", l.bin, err)
	}
	return parseJSONL(out), nil
}

func (l *LocalToolAdapter) scrape(ctx context.Context, c Constraints, module, query string) (*Page, error) {
	args := []string{
		"--jsonl",
		"--max-results", strconv.Itoa(clampPerPage(c.PerPage)),
		module, query,
	}
	out, err := l.exec.Output(ctx, l.bin, args...)
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", l.bin, err)
	}
	return parseJSONL(out), nil
}

func searchQuery(query string, c Constraints) string {
	if c.Since > 0 {
		since := timeNow().Add(-c.Since).UTC().Format("2006-01-02")
		return query + " since:" + since
	}
	return query
}

// parseJSONL converts the tool's line-delimited JSON into a raw page.
// Lines that fail to decode are dropped rather than failing the page.
func parseJSONL(out []byte) *Page {
	page := &Page{Users: make(map[string]RawUser)}

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var t scrapedTweet
		if err := json.Unmarshal(line, &t); err != nil || t.ID == 0 {
			continue
		}
		item, user := t.toRaw()
		page.Items = append(page.Items, item)
		if user.ID != "" {
			page.Users[user.ID] = user
		}
	}
	return page
}

// scrapedTweet mirrors the tool's JSONL tweet shape.
type scrapedTweet struct {
	ID             int64        `json:"id"`
	RawContent     string       `json:"rawContent"`
	Date           string       `json:"date"`
	ConversationID int64        `json:"conversationId"`
	User           scrapedUser  `json:"user"`
	ReplyCount     int          `json:"replyCount"`
	RetweetCount   int          `json:"retweetCount"`
	LikeCount      int          `json:"likeCount"`
	QuoteCount     int          `json:"quoteCount"`
	ViewCount      int          `json:"viewCount"`
	BookmarkCount  int          `json:"bookmarkCount"`
	Hashtags       []string     `json:"hashtags"`
	MentionedUsers []scrapedRef `json:"mentionedUsers"`
	Links          []scrapedURL `json:"links"`
}

type scrapedUser struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	DisplayName    string `json:"displayname"`
	RawDescription string `json:"rawDescription"`
	FollowersCount int    `json:"followersCount"`
	FriendsCount   int    `json:"friendsCount"`
	StatusesCount  int    `json:"statusesCount"`
}

type scrapedRef struct {
	Username string `json:"username"`
}

type scrapedURL struct {
	URL string `json:"url"`
}

// toRaw converts a scraped tweet into the shared raw shape the normalizer
// consumes, so both transports feed one code path.
func (t scrapedTweet) toRaw() (RawItem, RawUser) {
	item := RawItem{
		ID:        strconv.FormatInt(t.ID, 10),
		Text:      t.RawContent,
		CreatedAt: normalizeDate(t.Date),
		Metrics: &RawMetrics{
			LikeCount:       t.LikeCount,
			RetweetCount:    t.RetweetCount,
			ReplyCount:      t.ReplyCount,
			QuoteCount:      t.QuoteCount,
			ImpressionCount: t.ViewCount,
			BookmarkCount:   t.BookmarkCount,
		},
	}
	if t.ConversationID != 0 {
		item.ConversationID = strconv.FormatInt(t.ConversationID, 10)
	}

	var user RawUser
	if t.User.ID != 0 {
		user = RawUser{
			ID:          strconv.FormatInt(t.User.ID, 10),
			Username:    t.User.Username,
			Name:        t.User.DisplayName,
			Description: t.User.RawDescription,
			Metrics: RawUserMetrics{
				FollowersCount: t.User.FollowersCount,
				FollowingCount: t.User.FriendsCount,
				TweetCount:     t.User.StatusesCount,
			},
		}
		item.AuthorID = user.ID
	}

	if len(t.Hashtags) > 0 || len(t.MentionedUsers) > 0 || len(t.Links) > 0 {
		ent := &RawEntities{}
		for _, h := range t.Hashtags {
			ent.Hashtags = append(ent.Hashtags, RawHashtag{Tag: h})
		}
		for _, m := range t.MentionedUsers {
			ent.Mentions = append(ent.Mentions, RawMention{Username: m.Username})
		}
		for _, u := range t.Links {
			ent.URLs = append(ent.URLs, RawURL{ExpandedURL: u.URL})
		}
		item.Entities = ent
	}

	return item, user
}

// normalizeDate rewrites the tool's "+00:00" offsets into RFC 3339 the
// normalizer parses directly; anything unparseable passes through and is
// dropped there.
func normalizeDate(s string) string {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse("2006-01-02 15:04:05 -0700 MST", s); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return strings.TrimSpace(s)
}
