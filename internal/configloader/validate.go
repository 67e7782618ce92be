package configloader

import (
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/grim/internal/logging"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/scanner"
)

// ValidationError describes one invalid configuration field.
type ValidationError struct {
	Field   string // dotted path, e.g. "decorate.flavor"
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidationResult collects the findings of a validation pass.
// Errors prevent loading; warnings are reported and the value is ignored.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err joins every error, or returns nil when the config is valid.
func (r *ValidationResult) Err() error {
	errs := make([]error, 0, len(r.Errors))
	for i := range r.Errors {
		errs = append(errs, &r.Errors[i])
	}
	return errors.Join(errs...)
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// enumField is a string-valued setting restricted to a fixed set of values.
type enumField struct {
	field   string
	value   string
	allowed []string
}

func enumFields(cfg *config.Config) []enumField {
	return []enumField{
		{
			field:   "decorate.flavor",
			value:   string(cfg.Decorate.Flavor),
			allowed: []string{string(config.FlavorCommonMark), string(config.FlavorGFM)},
		},
		{
			field: "format",
			value: string(cfg.Format),
			allowed: []string{
				string(config.FormatText), string(config.FormatTable),
				string(config.FormatJSON), string(config.FormatSummary),
			},
		},
		{
			field: "matcher_format",
			value: string(cfg.MatcherFormat),
			allowed: []string{
				string(config.MatcherFormatName), string(config.MatcherFormatID),
				string(config.MatcherFormatCombined),
			},
		},
	}
}

// Validate checks a configuration against the default matcher registry.
func Validate(cfg *config.Config) *ValidationResult {
	return ValidateWith(cfg, scanner.DefaultRegistry)
}

// ValidateWith checks a configuration for errors and warnings.
// Matcher keys are looked up in registry.
func ValidateWith(cfg *config.Config, registry *scanner.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if _, ok := logging.ParseLevel(cfg.LogLevel); cfg.LogLevel != "" && !ok {
		result.fail("log_level", cfg.LogLevel, "invalid log level %q; must be one of: debug, info, warn, error", cfg.LogLevel)
	}

	for _, f := range enumFields(cfg) {
		if f.value == "" || slices.Contains(f.allowed, f.value) {
			continue
		}
		result.fail(f.field, f.value, "invalid value %q; must be one of: %s", f.value, strings.Join(f.allowed, ", "))
	}

	if cfg.Decorate.ViewportLines < 0 {
		result.fail("decorate.viewport_lines", cfg.Decorate.ViewportLines, "must be >= 0 (0 means the whole document)")
	}
	if cfg.Jobs < 0 {
		result.fail("jobs", cfg.Jobs, "must be >= 0 (0 means one per CPU)")
	}

	validateMatchers(cfg, registry, result)
	validateIgnorePatterns(cfg, result)

	return result
}

// validateMatchers warns about matcher references the registry does not know.
func validateMatchers(cfg *config.Config, registry *scanner.Registry, result *ValidationResult) {
	for _, id := range slices.Sorted(maps.Keys(cfg.Matchers)) {
		if _, ok := registry.Get(id); !ok {
			result.warn("matchers."+id, id, "unknown matcher %q; it will be ignored", id)
		}
	}

	for _, id := range slices.Concat(cfg.EnableMatchers, cfg.DisableMatchers) {
		if _, ok := registry.Get(id); !ok {
			result.warn("matchers", id, "unknown matcher %q; it will be ignored", id)
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}
