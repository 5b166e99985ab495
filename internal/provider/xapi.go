// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/feedwatch/internal/httputil"
	"github.com/pdiddy/feedwatch/pkg/types"
)

// xapiBase is the remote API root. Declared as a var so tests can
// substitute an httptest server.
var xapiBase = "https://api.x.com/2"

const (
	xapiTweetFields = "created_at,author_id,conversation_id,public_metrics,entities"
	xapiUserFields  = "username,name,description,public_metrics"
)

// XAPIAdapter reaches the hosted search API over HTTPS with bearer-token
// authentication. It is the metered fallback behind the free local tool.
type XAPIAdapter struct {
	Client *http.Client
	Token  string
	Config types.HTTPConfig

	// users caches username → resolved account within one process
	// invocation so timeline pagination resolves the ID only once.
	users map[string]RawUser
}

// NewXAPIAdapter builds the remote adapter. A nil client gets a default
// with the configured timeout.
func NewXAPIAdapter(token string, cfg types.HTTPConfig) *XAPIAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &XAPIAdapter{
		Client: &http.Client{Timeout: timeout},
		Token:  token,
		Config: cfg,
		users:  make(map[string]RawUser),
	}
}

// Name returns the adapter identifier.
func (x *XAPIAdapter) Name() string { return "xapi" }

// Available reports whether a bearer token is configured.
func (x *XAPIAdapter) Available() error {
	if x.Token == "" {
		return fmt.Errorf("no bearer token configured: %w", ErrUnavailable)
	}
	return nil
}

// Search fetches one page of recent posts matching query.
func (x *XAPIAdapter) Search(ctx context.Context, query string, c Constraints, cursor string) (*Page, error) {
	params := x.searchParams(query, c, cursor)
	return x.searchPage(ctx, params)
}

// Thread fetches one page of a conversation by searching on its ID.
func (x *XAPIAdapter) Thread(ctx context.Context, conversationID string, c Constraints, cursor string) (*Page, error) {
	params := x.searchParams("conversation_id:"+conversationID, c, cursor)
	return x.searchPage(ctx, params)
}

// Timeline fetches one page of a user's posts. The username is resolved
// to an account ID on the first page and cached for the rest.
func (x *XAPIAdapter) Timeline(ctx context.Context, username string, c Constraints, cursor string) (*Page, error) {
	user, err := x.resolveUser(ctx, username)
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"max_results":  {fmt.Sprintf("%d", clampPerPage(c.PerPage))},
		"tweet.fields": {xapiTweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {xapiUserFields},
	}
	if !c.IncludeReplies {
		params.Set("exclude", "replies")
	}
	if cursor != "" {
		params.Set("pagination_token", cursor)
	}

	page, err := x.fetchPage(ctx, fmt.Sprintf("%s/users/%s/tweets", xapiBase, user.ID), params)
	if err != nil {
		return nil, err
	}
	// Timeline payloads sometimes omit the author expansion; the resolved
	// identity is the side-table entry callers need either way.
	if page.Users == nil {
		page.Users = make(map[string]RawUser)
	}
	page.Users[user.ID] = user
	return page, nil
}

// Lookup fetches a single post by ID. A missing post yields an empty page.
func (x *XAPIAdapter) Lookup(ctx context.Context, id string) (*Page, error) {
	params := url.Values{
		"tweet.fields": {xapiTweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {xapiUserFields},
	}

	body, status, err := x.get(ctx, fmt.Sprintf("%s/tweets/%s", xapiBase, url.PathEscape(id)), params)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return &Page{}, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("API returned HTTP %d", status)
	}

	var sr xapiSingleResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}
	// The API reports an unknown ID as a 200 with an errors block and no
	// data object.
	if sr.Data == nil {
		return &Page{}, nil
	}

	return &Page{
		Items: []RawItem{*sr.Data},
		Users: usersByID(sr.Includes.Users),
	}, nil
}

func (x *XAPIAdapter) searchParams(query string, c Constraints, cursor string) url.Values {
	params := url.Values{
		"query":        {query},
		"max_results":  {fmt.Sprintf("%d", clampPerPage(c.PerPage))},
		"tweet.fields": {xapiTweetFields},
		"expansions":   {"author_id"},
		"user.fields":  {xapiUserFields},
	}
	if c.SortOrder == "relevance" {
		params.Set("sort_order", "relevancy")
	} else {
		params.Set("sort_order", "recency")
	}
	if c.Since > 0 {
		params.Set("start_time", timeNow().Add(-c.Since).UTC().Format(time.RFC3339))
	}
	if cursor != "" {
		params.Set("next_token", cursor)
	}
	return params
}

func (x *XAPIAdapter) searchPage(ctx context.Context, params url.Values) (*Page, error) {
	return x.fetchPage(ctx, xapiBase+"/tweets/search/recent", params)
}

func (x *XAPIAdapter) fetchPage(ctx context.Context, endpoint string, params url.Values) (*Page, error) {
	body, status, err := x.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("API returned HTTP %d", status)
	}

	var pr xapiPageResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &Page{
		Items:     pr.Data,
		Users:     usersByID(pr.Includes.Users),
		NextToken: pr.Meta.NextToken,
	}, nil
}

// resolveUser looks up an account by username, caching the result.
func (x *XAPIAdapter) resolveUser(ctx context.Context, username string) (RawUser, error) {
	key := strings.ToLower(username)
	if u, ok := x.users[key]; ok {
		return u, nil
	}

	params := url.Values{"user.fields": {xapiUserFields}}
	endpoint := fmt.Sprintf("%s/users/by/username/%s", xapiBase, url.PathEscape(username))

	body, status, err := x.get(ctx, endpoint, params)
	if err != nil {
		return RawUser{}, err
	}
	if status == http.StatusNotFound {
		return RawUser{}, fmt.Errorf("user %q not found", username)
	}
	if status != http.StatusOK {
		return RawUser{}, fmt.Errorf("API returned HTTP %d", status)
	}

	var ur xapiUserResponse
	if err := json.Unmarshal(body, &ur); err != nil {
		return RawUser{}, fmt.Errorf("parsing user response: %w", err)
	}
	if ur.Data.ID == "" {
		return RawUser{}, fmt.Errorf("user %q not found", username)
	}

	x.users[key] = ur.Data
	return ur.Data, nil
}

// get issues an authenticated GET and returns the body and status. Rate
// limiting (HTTP 429) is retried with backoff inside DoWithRetry.
func (x *XAPIAdapter) get(ctx context.Context, endpoint string, params url.Values) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+x.Token)
	if x.Config.UserAgent != "" {
		req.Header.Set("User-Agent", x.Config.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, x.Client, req, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readBody(resp)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	return io.ReadAll(io.LimitReader(resp.Body, 10<<20))
}

func clampPerPage(perPage int) int {
	if perPage <= 0 {
		return 25
	}
	if perPage > 100 {
		return 100
	}
	return perPage
}

func usersByID(users []RawUser) map[string]RawUser {
	if len(users) == 0 {
		return nil
	}
	m := make(map[string]RawUser, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return m
}

// timeNow is swapped out in tests that pin the start_time filter.
var timeNow = time.Now

// Remote API JSON structures.
type xapiPageResponse struct {
	Data     []RawItem    `json:"data"`
	Includes xapiIncludes `json:"includes"`
	Meta     xapiMeta     `json:"meta"`
}

type xapiSingleResponse struct {
	Data     *RawItem     `json:"data"`
	Includes xapiIncludes `json:"includes"`
}

type xapiUserResponse struct {
	Data RawUser `json:"data"`
}

type xapiIncludes struct {
	Users []RawUser `json:"users"`
}

type xapiMeta struct {
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}
