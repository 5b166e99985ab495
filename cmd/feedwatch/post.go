// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/feed"
)

var postCmd = &cobra.Command{
	Use:   "post [id]",
	Short: "Look up a single post by ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runPost,
}

func runPost(cmd *cobra.Command, args []string) error {
	noCache, _ := cmd.Flags().GetBool("no-cache")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, cleanup, err := newService(cmd, noCache)
	if err != nil {
		return err
	}
	defer cleanup()

	post, err := svc.Lookup(context.Background(), args[0])
	if err != nil {
		return describeErr(err)
	}
	if post == nil {
		return fmt.Errorf("post %s not found", args[0])
	}

	if jsonOutput {
		return feed.FormatJSON(post, os.Stdout)
	}
	feed.FormatPost(*post, os.Stdout)
	return nil
}

func init() {
	postCmd.Flags().Bool("no-cache", false, "bypass the result cache")
	postCmd.Flags().Bool("json", false, "output the post as JSON")

	rootCmd.AddCommand(postCmd)
}
