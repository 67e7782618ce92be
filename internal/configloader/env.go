package configloader

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/grim/pkg/config"
)

// envVarPrefix prefixes every grim environment variable.
const envVarPrefix = "GRIM_"

// EnvVar is one environment override. Field is the dotted config key it
// shadows; Apply parses the raw value into cfg.
type EnvVar struct {
	Name        string
	Field       string
	Description string
	Apply       func(cfg *config.Config, raw string) error
}

func stringVar(set func(*config.Config, string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, raw)
		return nil
	}
}

func boolVar(set func(*config.Config, *bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("want true or false, got %q", raw)
		}
		set(cfg, config.Bool(b))
		return nil
	}
}

func intVar(set func(*config.Config, int)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("want an integer, got %q", raw)
		}
		set(cfg, n)
		return nil
	}
}

func listVar(set func(*config.Config, []string)) func(*config.Config, string) error {
	return func(cfg *config.Config, raw string) error {
		set(cfg, splitList(raw))
		return nil
	}
}

//nolint:gochecknoglobals // Read-only lookup table.
var envVars = []EnvVar{
	{"LOG_LEVEL", "log_level", "log level: debug, info, warn or error",
		stringVar(func(c *config.Config, v string) { c.LogLevel = v })},
	{"FORMAT", "format", "decorate report format: text, table, json or summary",
		stringVar(func(c *config.Config, v string) { c.Format = config.OutputFormat(v) })},
	{"MATCHER_FORMAT", "matcher_format", "matcher labels in reports: name, id or combined",
		stringVar(func(c *config.Config, v string) { c.MatcherFormat = config.MatcherFormat(v) })},
	{"FLAVOR", "decorate.flavor", "markdown flavor used to find code: commonmark or gfm",
		stringVar(func(c *config.Config, v string) { c.Decorate.Flavor = config.Flavor(v) })},
	{"SKIP_CODE", "decorate.skip_code", "keep inline decorations out of code",
		boolVar(func(c *config.Config, b *bool) { c.Decorate.SkipCode = b })},
	{"FENCE_LABELS", "decorate.fence_labels", "detect the language of unlabelled fences",
		boolVar(func(c *config.Config, b *bool) { c.Decorate.FenceLabels = b })},
	{"VIEWPORT_LINES", "decorate.viewport_lines", "lines in the simulated viewport, 0 for all",
		intVar(func(c *config.Config, n int) { c.Decorate.ViewportLines = n })},
	{"MATH_STRICT", "math.strict", "reject non-ASCII characters in math",
		boolVar(func(c *config.Config, b *bool) { c.Math.Strict = b })},
	{"JOBS", "jobs", "parallel workers, 0 for one per CPU",
		intVar(func(c *config.Config, n int) { c.Jobs = n })},
	{"IGNORE", "ignore", "comma-separated ignore globs",
		listVar(func(c *config.Config, v []string) { c.Ignore = v })},
	{"ENABLE", "enable", "comma-separated matchers to enable",
		listVar(func(c *config.Config, v []string) { c.EnableMatchers = v })},
	{"DISABLE", "disable", "comma-separated matchers to disable",
		listVar(func(c *config.Config, v []string) { c.DisableMatchers = v })},
}

// LoadFromEnv applies GRIM_* overrides to cfg. Empty variables are skipped.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for _, v := range envVars {
		name := envVarPrefix + v.Name
		raw := os.Getenv(name)
		if raw == "" {
			continue
		}
		if err := v.Apply(cfg, raw); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// splitList splits a comma-separated value, dropping blank items.
func splitList(raw string) []string {
	var out []string
	for item := range strings.SplitSeq(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// GetEnvVarName returns the variable that overrides a dotted config field,
// or "" if none does.
func GetEnvVarName(field string) string {
	i := slices.IndexFunc(envVars, func(v EnvVar) bool { return v.Field == field })
	if i < 0 {
		return ""
	}
	return envVarPrefix + envVars[i].Name
}

// ListEnvVars returns every supported variable with its full name, in a
// stable order for help output.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, len(envVars))
	for i, v := range envVars {
		v.Name = envVarPrefix + v.Name
		out[i] = v
	}
	return out
}
