// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/pkg/types"
)

var threadCmd = &cobra.Command{
	Use:   "thread [conversation-id]",
	Short: "Expand a conversation into its posts",
	Long: `Thread fetches the posts of a conversation by its ID. The root post's
ID doubles as the conversation ID on this platform, so passing a post ID
expands the thread it belongs to.`,
	Args: cobra.ExactArgs(1),
	RunE: runThread,
}

func runThread(cmd *cobra.Command, args []string) error {
	pages, _ := cmd.Flags().GetInt("pages")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, cleanup, err := newService(cmd, noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	posts, err := svc.Thread(context.Background(), args[0], types.ThreadOptions{PageBudget: pages})
	if err != nil {
		return describeErr(err)
	}
	if len(posts) == 0 {
		return fmt.Errorf("no posts found for conversation %s", args[0])
	}

	posts, err = applyEngagementFlags(cmd, posts)
	if err != nil {
		return err
	}
	return renderPosts(posts, jsonOutput)
}

func init() {
	threadCmd.Flags().Int("pages", 1, "pages to fetch (1-5)")
	threadCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	addEngagementFlags(threadCmd)

	rootCmd.AddCommand(threadCmd)
}
