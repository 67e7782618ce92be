// Package config defines core configuration types for grim.
// These types are pure data structures with no dependency on the loader.
package config

// MatcherConfig holds per-matcher configuration. Nil fields inherit.
type MatcherConfig struct {
	Enabled  *bool `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Priority *int  `mapstructure:"priority" yaml:"priority,omitempty"`
}

// DecorateConfig controls how documents are decorated.
type DecorateConfig struct {
	// SkipCode keeps inline decorations out of code blocks and code spans.
	SkipCode *bool `mapstructure:"skip_code" yaml:"skip_code,omitempty"`

	// FenceLabels detects the language of fenced blocks without an info string.
	FenceLabels *bool `mapstructure:"fence_labels" yaml:"fence_labels,omitempty"`

	// ViewportLines limits the simulated viewport to this many lines
	// from the top of the document. Zero shows the whole document.
	ViewportLines int `mapstructure:"viewport_lines" yaml:"viewport_lines,omitempty"`

	// Flavor selects the markdown flavor used to locate code.
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor,omitempty"`
}

// MathConfig controls math typesetting.
type MathConfig struct {
	// Strict rejects non-ASCII input inside math.
	Strict *bool `mapstructure:"strict" yaml:"strict,omitempty"`
}

// OutputFormat specifies the output format for decoration reports.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatSummary OutputFormat = "summary"
)

// MatcherFormat controls how matcher identifiers appear in output.
type MatcherFormat string

const (
	MatcherFormatName     MatcherFormat = "name"     // "emphasis"
	MatcherFormatID       MatcherFormat = "id"       // "GM001"
	MatcherFormatCombined MatcherFormat = "combined" // "GM001/emphasis"
)

// SummaryOrder controls the order of tables in summary output.
type SummaryOrder string

const (
	// SummaryOrderMatchers shows the matchers table first (default).
	SummaryOrderMatchers SummaryOrder = "matchers"
	// SummaryOrderFiles shows the files table first.
	SummaryOrderFiles SummaryOrder = "files"
)

// IsValid returns true if the summary order is valid.
func (s SummaryOrder) IsValid() bool {
	switch s {
	case SummaryOrderMatchers, SummaryOrderFiles:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// Config is the root configuration structure for grim.
type Config struct {
	// LogLevel is the default log level: debug, info, warn or error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	// Matchers contains per-matcher configuration keyed by matcher ID.
	Matchers map[string]MatcherConfig `mapstructure:"matchers" yaml:"matchers,omitempty"`

	Decorate DecorateConfig `mapstructure:"decorate" yaml:"decorate,omitempty"`

	Math MathConfig `mapstructure:"math" yaml:"math,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the report format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// MatcherFormat controls how matcher identifiers appear in output.
	MatcherFormat MatcherFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// EnableMatchers contains matcher IDs to explicitly enable.
	EnableMatchers []string `mapstructure:"-" yaml:"-"`

	// DisableMatchers contains matcher IDs to explicitly disable.
	DisableMatchers []string `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel: "info",
		Matchers: make(map[string]MatcherConfig),
		Decorate: DecorateConfig{
			SkipCode:    Bool(false),
			FenceLabels: Bool(true),
			Flavor:      FlavorGFM,
		},
		Math: MathConfig{
			Strict: Bool(false),
		},
		Format:        FormatText,
		MatcherFormat: MatcherFormatName,
		Jobs:          0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// SkipCode reports whether inline decoration skips code.
func (c *Config) SkipCode() bool {
	return c.Decorate.SkipCode != nil && *c.Decorate.SkipCode
}

// FenceLabels reports whether unlabeled fences get a detected language.
func (c *Config) FenceLabels() bool {
	return c.Decorate.FenceLabels == nil || *c.Decorate.FenceLabels
}

// StrictMath reports whether math is typeset in strict mode.
func (c *Config) StrictMath() bool {
	return c.Math.Strict != nil && *c.Math.Strict
}

// MatcherOverrides returns the enablement and priority overrides keyed by
// matcher ID. EnableMatchers and DisableMatchers win over the Matchers map,
// and disabling wins over enabling.
func (c *Config) MatcherOverrides() (map[string]bool, map[string]int) {
	enabled := make(map[string]bool)
	priorities := make(map[string]int)

	for id, mc := range c.Matchers {
		if mc.Enabled != nil {
			enabled[id] = *mc.Enabled
		}
		if mc.Priority != nil {
			priorities[id] = *mc.Priority
		}
	}
	for _, id := range c.EnableMatchers {
		enabled[id] = true
	}
	for _, id := range c.DisableMatchers {
		enabled[id] = false
	}

	return enabled, priorities
}
