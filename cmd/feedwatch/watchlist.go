// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/feed"
	"github.com/pdiddy/feedwatch/internal/watchlist"
	"github.com/pdiddy/feedwatch/pkg/types"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Manage the accounts you are tracking",
	Long: `Watchlist keeps a list of usernames worth revisiting, stored as a YAML
file under the data directory. Use fetch to pull every tracked account's
recent posts through the cached pipeline in one run.`,
}

// --- add subcommand ---

var watchlistAddCmd = &cobra.Command{
	Use:   "add [username]",
	Short: "Add an account to the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		wl, err := watchlist.Load(dir)
		if err != nil {
			return err
		}

		note, _ := cmd.Flags().GetString("note")
		if err := wl.Add(args[0], note); err != nil {
			return err
		}
		if err := wl.Save(dir); err != nil {
			return err
		}
		fmt.Printf("Added @%s to the watchlist.\n", watchlist.Canonical(args[0]))
		return nil
	},
}

// --- remove subcommand ---

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove [username]",
	Short: "Remove an account from the watchlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		wl, err := watchlist.Load(dir)
		if err != nil {
			return err
		}

		if !wl.Remove(args[0]) {
			return fmt.Errorf("@%s is not on the watchlist", watchlist.Canonical(args[0]))
		}
		if err := wl.Save(dir); err != nil {
			return err
		}
		fmt.Printf("Removed @%s from the watchlist.\n", watchlist.Canonical(args[0]))
		return nil
	},
}

// --- list subcommand ---

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the tracked accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		wl, err := watchlist.Load(dataDir(cmd))
		if err != nil {
			return err
		}
		if len(wl.Entries) == 0 {
			fmt.Println("Watchlist is empty.")
			return nil
		}

		fmt.Printf("%-20s  %-12s  %s\n", "Username", "Added", "Note")
		fmt.Println(strings.Repeat("-", 60))
		for _, e := range wl.Entries {
			fmt.Printf("@%-19s  %-12s  %s\n", e.Username, e.AddedAt.Format("2006-01-02"), e.Note)
		}
		return nil
	},
}

// --- fetch subcommand ---

var watchlistFetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Pull recent posts for every tracked account",
	RunE:  runWatchlistFetch,
}

func runWatchlistFetch(cmd *cobra.Command, args []string) error {
	wl, err := watchlist.Load(dataDir(cmd))
	if err != nil {
		return err
	}
	if len(wl.Entries) == 0 {
		fmt.Println("Watchlist is empty.")
		return nil
	}

	count, _ := cmd.Flags().GetInt("count")
	delay, _ := cmd.Flags().GetDuration("delay")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	svc, cleanup, err := newService(cmd, false)
	if err != nil {
		return err
	}
	defer cleanup()

	var all []types.Post
	failed := 0
	for i, e := range wl.Entries {
		if i > 0 && delay > 0 {
			time.Sleep(delay)
		}
		result, err := svc.Profile(context.Background(), e.Username, types.ProfileOptions{Count: count})
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  @%s (%v)\n", e.Username, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "fetched: @%s (%d posts)\n", e.Username, len(result.Posts))
		all = append(all, result.Posts...)
	}

	if jsonOutput {
		if err := feed.FormatJSON(all, os.Stdout); err != nil {
			return err
		}
	} else {
		feed.FormatTable(all, os.Stdout)
	}

	if failed > 0 {
		return fmt.Errorf("%d account(s) failed", failed)
	}
	return nil
}

// dataDir resolves the data directory shared by the cache and watchlist.
func dataDir(cmd *cobra.Command) string {
	return pipelineConfig(cmd).Cache.Dir
}

func init() {
	watchlistAddCmd.Flags().String("note", "", "why this account is worth tracking")

	watchlistFetchCmd.Flags().Int("count", 10, "posts to fetch per account")
	watchlistFetchCmd.Flags().Duration("delay", time.Second, "delay between accounts")
	watchlistFetchCmd.Flags().Bool("json", false, "output results as JSON")

	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistFetchCmd)

	rootCmd.AddCommand(watchlistCmd)
}
