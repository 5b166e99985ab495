// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the local result cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached results",
	Long: `Clear removes cached entries. Without flags everything goes; --op limits
removal to one operation kind (search, thread, profile, post).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig(cmd)
		store, err := cache.Open(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			return err
		}
		defer store.Close()

		op, _ := cmd.Flags().GetString("op")
		n, err := store.Clear(op)
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d cached entr%s.\n", n, plural(n, "y", "ies"))
		return nil
	},
}

var cachePathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the cache database location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(cache.Path(pipelineConfig(cmd).Cache.Dir))
	},
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	cacheClearCmd.Flags().String("op", "", "limit to one operation kind: search, thread, profile, post")

	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cachePathCmd)

	rootCmd.AddCommand(cacheCmd)
}
