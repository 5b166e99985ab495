// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/feedwatch/pkg/types"
)

// QueryFile is the on-disk representation of a search and its results.
// A researcher can save a search to a file and reload it later without
// touching the providers again.
type QueryFile struct {
	Query   QueryParams  `yaml:"query"`
	Results []types.Post `yaml:"results"`
	Summary QuerySummary `yaml:"summary"`
}

// QueryParams stores the search parameters in a serializable form.
type QueryParams struct {
	Text      string `yaml:"text"`
	SortOrder string `yaml:"sort_order,omitempty"`
	Since     string `yaml:"since,omitempty"`
	Pages     int    `yaml:"pages,omitempty"`
	PerPage   int    `yaml:"per_page,omitempty"`
}

// QuerySummary stores result statistics and a timestamp.
type QuerySummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

// WriteQueryFile saves search parameters and results to a YAML file.
func WriteQueryFile(path, query string, opts types.SearchOptions, posts []types.Post) error {
	qf := QueryFile{
		Query: QueryParams{
			Text:      query,
			SortOrder: string(opts.SortOrder),
			Pages:     opts.PageBudget,
			PerPage:   opts.MaxResultsPerPage,
		},
		Results: posts,
		Summary: QuerySummary{
			Total:     len(posts),
			Timestamp: time.Now(),
		},
	}
	if opts.Since > 0 {
		qf.Query.Since = opts.Since.String()
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}
