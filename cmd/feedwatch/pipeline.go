// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/feedwatch/internal/cache"
	"github.com/pdiddy/feedwatch/internal/feed"
	"github.com/pdiddy/feedwatch/internal/provider"
)

// newService wires the full pipeline for one command invocation: adapters
// in priority order behind the router, the cache in front, warnings to
// stderr. The returned cleanup closes the cache store.
func newService(cmd *cobra.Command, noCache bool) (*feed.Service, func(), error) {
	cfg := pipelineConfig(cmd)

	adapters := []provider.Adapter{
		provider.NewLocalToolAdapter(cfg.Provider.LocalTool),
		provider.NewXAPIAdapter(cfg.Provider.BearerToken, cfg.Provider.HTTPConfig),
	}
	router := provider.NewRouter(adapters, cfg.Provider.PageDelay, os.Stderr)

	var store *cache.Store
	if !noCache {
		var err error
		store, err = cache.Open(cfg.Cache.Dir, cfg.Cache.TTL)
		if err != nil {
			// A broken cache is a cold cache, not a fatal error.
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
			store = nil
		}
	}

	cleanup := func() {
		if store != nil {
			store.Close()
		}
	}
	return feed.New(router, store, os.Stderr), cleanup, nil
}

// describeErr adds remediation guidance when the pipeline failed because
// no provider is configured at all.
func describeErr(err error) error {
	var exhausted *provider.ExhaustedError
	if errors.As(err, &exhausted) && exhausted.ConfigurationMissing() {
		return fmt.Errorf("%w\ninstall the local scraping tool, or set FEEDWATCH_BEARER_TOKEN (or .secrets/bearer-token) to use the hosted API", err)
	}
	return err
}
