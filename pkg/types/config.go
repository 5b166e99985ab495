package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "feedwatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for the upstream data providers.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// BearerToken authenticates against the remote API. When empty the
	// remote adapter reports itself unavailable.
	BearerToken string `json:"bearer_token,omitempty" yaml:"bearer_token,omitempty"`

	// LocalTool is the binary name of the local scraping tool preferred
	// over the metered remote API (default "snscrape").
	LocalTool string `json:"local_tool" yaml:"local_tool"`

	// PageDelay is the pacing delay between consecutive pages of one
	// logical request (default 1s). Never applied before the first page.
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay"`
}

// CacheConfig holds settings for the local result cache.
type CacheConfig struct {
	// Dir is the directory holding the cache database and watchlist
	// (default "data").
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached result stays fresh (default 15m).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
}
