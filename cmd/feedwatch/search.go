// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/feed"
	"github.com/pdiddy/feedwatch/internal/rank"
	"github.com/pdiddy/feedwatch/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search recent posts matching a query",
	Long: `Search queries the configured providers for recent posts matching the
given text. Results are cached for 15 minutes, deduplicated, and can be
filtered and re-sorted by engagement after fetching.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	fromFile, _ := cmd.Flags().GetString("from-file")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	// Reload a saved query file instead of hitting providers.
	if fromFile != "" {
		qf, err := feed.ReadQueryFile(fromFile)
		if err != nil {
			return err
		}
		posts, err := applyEngagementFlags(cmd, qf.Results)
		if err != nil {
			return err
		}
		return renderPosts(posts, jsonOutput)
	}

	query := strings.Join(args, " ")
	if q, _ := cmd.Flags().GetString("query"); q != "" {
		query = q
	}

	opts, err := searchOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	noCache, _ := cmd.Flags().GetBool("no-cache")
	svc, cleanup, err := newService(cmd, noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	posts, err := svc.Search(context.Background(), query, opts)
	if err != nil {
		return describeErr(err)
	}

	if savePath, _ := cmd.Flags().GetString("save"); savePath != "" {
		if err := feed.WriteQueryFile(savePath, query, opts, posts); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved query to %s\n", savePath)
	}

	posts, err = applyEngagementFlags(cmd, posts)
	if err != nil {
		return err
	}
	return renderPosts(posts, jsonOutput)
}

func searchOptsFromFlags(cmd *cobra.Command) (types.SearchOptions, error) {
	maxResults, _ := cmd.Flags().GetInt("max-results")
	pages, _ := cmd.Flags().GetInt("pages")
	sortOrder, _ := cmd.Flags().GetString("sort")
	since, _ := cmd.Flags().GetDuration("since")

	switch sortOrder {
	case "recency", "relevance":
	default:
		return types.SearchOptions{}, fmt.Errorf("invalid --sort %q: use recency or relevance", sortOrder)
	}

	return types.SearchOptions{
		MaxResultsPerPage: maxResults,
		PageBudget:        pages,
		SortOrder:         types.SortOrder(sortOrder),
		Since:             since,
	}, nil
}

// applyEngagementFlags runs the post-hoc filter and sort shared by the
// search and thread commands.
func applyEngagementFlags(cmd *cobra.Command, posts []types.Post) ([]types.Post, error) {
	minLikes, _ := cmd.Flags().GetInt("min-likes")
	minImpressions, _ := cmd.Flags().GetInt("min-impressions")
	posts = rank.FilterEngagement(posts, rank.Thresholds{
		MinLikes:       minLikes,
		MinImpressions: minImpressions,
	})

	if metric, _ := cmd.Flags().GetString("sort-by"); metric != "" {
		sorted, err := rank.SortBy(posts, metric)
		if err != nil {
			return nil, err
		}
		posts = sorted
	}
	return posts, nil
}

func renderPosts(posts []types.Post, jsonOutput bool) error {
	if jsonOutput {
		return feed.FormatJSON(posts, os.Stdout)
	}
	feed.FormatTable(posts, os.Stdout)
	return nil
}

// addEngagementFlags registers the shared post-hoc filter/sort flags.
func addEngagementFlags(cmd *cobra.Command) {
	cmd.Flags().Int("min-likes", 0, "drop posts with fewer likes")
	cmd.Flags().Int("min-impressions", 0, "drop posts with fewer impressions")
	cmd.Flags().String("sort-by", "", "re-sort by metric: likes, reposts, replies, quotes, impressions, bookmarks")
	cmd.Flags().Bool("json", false, "output results as JSON")
}

func init() {
	searchCmd.Flags().String("query", "", "search text (alternative to positional args)")
	searchCmd.Flags().Int("max-results", 25, "maximum results per page")
	searchCmd.Flags().Int("pages", 1, "pages to fetch (1-5)")
	searchCmd.Flags().String("sort", "recency", "provider sort order: recency or relevance")
	searchCmd.Flags().Duration("since", 0, "only posts newer than this (e.g. 24h)")
	searchCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	searchCmd.Flags().String("save", "", "save query and results to a YAML file")
	searchCmd.Flags().String("from-file", "", "load results from a saved query file")
	addEngagementFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}
