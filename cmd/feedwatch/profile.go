// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/feed"
	"github.com/pdiddy/feedwatch/pkg/types"
)

var profileCmd = &cobra.Command{
	Use:   "profile [username]",
	Short: "Fetch an account's identity and recent posts",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfile,
}

func runProfile(cmd *cobra.Command, args []string) error {
	count, _ := cmd.Flags().GetInt("count")
	includeReplies, _ := cmd.Flags().GetBool("include-replies")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, cleanup, err := newService(cmd, noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := svc.Profile(context.Background(), args[0], types.ProfileOptions{
		Count:          count,
		IncludeReplies: includeReplies,
	})
	if err != nil {
		return describeErr(err)
	}

	if jsonOutput {
		return feed.FormatJSON(result, os.Stdout)
	}
	feed.FormatProfile(result, os.Stdout)
	return nil
}

func init() {
	profileCmd.Flags().Int("count", 25, "number of timeline posts to fetch")
	profileCmd.Flags().Bool("include-replies", false, "keep the account's replies in the timeline")
	profileCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	profileCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(profileCmd)
}
