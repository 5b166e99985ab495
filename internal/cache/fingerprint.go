// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Request captures the semantically meaningful parameters of one logical
// request: the parameters that affect the result set, and nothing else.
// Display-only options never belong here.
type Request struct {
	// Op is the operation kind: search, thread, profile, or post.
	Op string

	// Query is the search text, conversation ID, username, or post ID,
	// depending on Op.
	Query string

	// SortOrder is the provider-side ordering (search only).
	SortOrder string

	// Since is the lower time bound (search only).
	Since time.Duration

	// PageBudget bounds the pages fetched.
	PageBudget int

	// PerPage caps results per page.
	PerPage int

	// IncludeReplies keeps replies in timelines (profile only).
	IncludeReplies bool
}

// Fingerprint derives the deterministic cache key for the request. It is
// a pure function: identical semantic parameters always produce an
// identical key. The operation kind stays in clear text as a prefix so
// Clear can scope deletions by operation.
func (r Request) Fingerprint() string {
	canonical := strings.Join([]string{
		"op=" + r.Op,
		"q=" + strings.ToLower(strings.TrimSpace(r.Query)),
		"sort=" + r.SortOrder,
		fmt.Sprintf("since=%d", int64(r.Since/time.Second)),
		fmt.Sprintf("pages=%d", r.PageBudget),
		fmt.Sprintf("per=%d", r.PerPage),
		fmt.Sprintf("replies=%t", r.IncludeReplies),
	}, "&")

	sum := sha256.Sum256([]byte(canonical))
	return r.Op + ":" + hex.EncodeToString(sum[:16])
}
