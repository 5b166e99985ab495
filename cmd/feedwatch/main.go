// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the feedwatch CLI: a research
// assistant over social-media posts with provider fallback, a local
// result cache, and post-hoc engagement filtering.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/feedwatch/internal/secrets"
	"github.com/pdiddy/feedwatch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// resolver is the credential resolution chain built at startup:
// environment variables first, then .secrets/ files.
var resolver *secrets.Resolver

// rootCmd is the base command for the feedwatch CLI.
var rootCmd = &cobra.Command{
	Use:   "feedwatch",
	Short: "Research assistant for social-media posts",
	Long: `feedwatch queries social-media search providers, caches results locally,
and filters or sorts them by engagement. A free local scraping tool is
preferred when installed; the hosted API serves as fallback when a bearer
token is configured.

Each operation is a subcommand: search, thread, profile, post, watchlist,
and cache.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env values become environment variables before the env
		// source is consulted; existing variables win.
		_ = godotenv.Load()

		resolver = secrets.NewResolver(
			secrets.EnvSource{Prefix: "FEEDWATCH"},
			secrets.FileSource{Dir: ".secrets"},
		)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./feedwatch.yaml or ~/.config/feedwatch/config.yaml)")
	rootCmd.PersistentFlags().String("data-dir", "", "directory for the cache database and watchlist (default: ./data)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("feedwatch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "feedwatch"))
		}
	}

	viper.SetEnvPrefix("FEEDWATCH")
	viper.AutomaticEnv()

	viper.SetDefault("cache.dir", "data")
	viper.SetDefault("cache.ttl", "15m")
	viper.SetDefault("provider.local_tool", "snscrape")
	viper.SetDefault("provider.page_delay", "1s")
	viper.SetDefault("provider.timeout", "30s")
	viper.SetDefault("provider.user_agent", "feedwatch/"+version)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles the stage configuration from viper and the
// credential resolver.
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("provider.timeout"),
				UserAgent: viper.GetString("provider.user_agent"),
			},
			BearerToken: resolver.Get("bearer-token", viper.GetString("provider.bearer_token")),
			LocalTool:   resolver.Get("local-tool", viper.GetString("provider.local_tool")),
			PageDelay:   viper.GetDuration("provider.page_delay"),
		},
		Cache: types.CacheConfig{
			Dir: viper.GetString("cache.dir"),
			TTL: viper.GetDuration("cache.ttl"),
		},
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if cfg.Cache.TTL <= 0 {
		cfg.Cache.TTL = 15 * time.Minute
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
