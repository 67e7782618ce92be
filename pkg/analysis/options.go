package analysis

import (
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/scanner"
)

// SortField specifies how to sort analysis results.
type SortField string

const (
	// SortByCount sorts by decoration count (descending by default).
	SortByCount SortField = "count"
	// SortByAlpha sorts alphabetically.
	SortByAlpha SortField = "alpha"
	// SortByFallbacks sorts by math fallbacks first, then by count.
	SortByFallbacks SortField = "fallbacks"
)

// IsValid returns true if the sort field is valid.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCount, SortByAlpha, SortByFallbacks:
		return true
	default:
		return false
	}
}

// Options configures the Analyze function.
type Options struct {
	// IncludeEntries includes the flat decoration list.
	IncludeEntries bool

	// IncludeByFile includes the per-file analysis.
	IncludeByFile bool

	// IncludeBySource includes the per-matcher analysis.
	IncludeBySource bool

	// SortBy specifies how to sort ByFile and BySource.
	SortBy SortField

	// SortDesc sorts in descending order (highest first).
	SortDesc bool

	// MatcherFormat controls how matcher identifiers appear.
	MatcherFormat config.MatcherFormat

	// Registry resolves matcher IDs to names. Defaults to scanner.DefaultRegistry.
	Registry *scanner.Registry

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		IncludeEntries:  true,
		IncludeByFile:   true,
		IncludeBySource: true,
		SortBy:          SortByCount,
		SortDesc:        true,
		MatcherFormat:   config.MatcherFormatName,
	}
}
