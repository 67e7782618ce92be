package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// commentWrapWidth is the maximum width for wrapped comments in templates.
const commentWrapWidth = 70

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full includes all matchers with their documentation.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// IncludeMatchers is a list of matcher IDs to include.
	// If empty, all matchers are included.
	IncludeMatchers []string
}

// MatcherInfo contains matcher metadata for template generation.
type MatcherInfo struct {
	ID          string
	Name        string
	Description string
	Priority    int
	Enabled     bool
}

// MatcherInfoProvider returns matcher information.
// This decouples config from the scanner packages.
type MatcherInfoProvider func() []MatcherInfo

// DefaultMatcherInfoProvider is set by the matchers package during init.
//
//nolint:gochecknoglobals // Intentional extension point for matcher info.
var DefaultMatcherInfoProvider MatcherInfoProvider

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts), nil
	}
	return generateMinimalTemplate(), nil
}

func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Log level: debug, info, warn, or error
log_level: info

decorate:
  # Keep inline decorations out of fenced code and code spans
  skip_code: false
  # Detect the language of fenced blocks without an info string
  fence_labels: true
  # Markdown flavor used to locate code: commonmark or gfm
  flavor: gfm
  # Lines shown by the simulated viewport (0 = whole document)
  # viewport_lines: 40

math:
  # Reject non-ASCII characters inside math
  strict: false

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"

# Matcher-specific configuration, keyed by ID or name
# matchers:
#   emphasis:
#     enabled: true
#   GM005:
#     priority: 0
`)

	return buf.Bytes()
}

func generateFullTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer
	buf.Write(generateMinimalTemplate())
	buf.WriteString("\nmatchers:\n")

	for _, m := range matcherInfos(opts.IncludeMatchers) {
		buf.WriteString(fmt.Sprintf("\n  # %s: %s\n", m.ID, m.Name))
		buf.WriteString(fmt.Sprintf("  # %s\n", wrapComment(m.Description, commentWrapWidth)))
		buf.WriteString(fmt.Sprintf("  %s:\n", m.ID))
		buf.WriteString(fmt.Sprintf("    enabled: %t\n", m.Enabled))
		buf.WriteString(fmt.Sprintf("    priority: %d\n", m.Priority))
	}

	return buf.Bytes()
}

// matcherInfos returns registered matchers sorted by ID, filtered by include.
func matcherInfos(include []string) []MatcherInfo {
	if DefaultMatcherInfoProvider == nil {
		return nil
	}
	infos := DefaultMatcherInfoProvider()

	if len(include) > 0 {
		keep := make(map[string]bool, len(include))
		for _, id := range include {
			keep[id] = true
		}
		filtered := make([]MatcherInfo, 0, len(include))
		for _, m := range infos {
			if keep[m.ID] {
				filtered = append(filtered, m)
			}
		}
		infos = filtered
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// wrapComment wraps a comment to fit within maxWidth characters.
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	currentLine := ""

	for _, word := range strings.Fields(text) {
		switch {
		case currentLine == "":
			currentLine = word
		case len(currentLine)+1+len(word) <= maxWidth:
			currentLine += " " + word
		default:
			lines = append(lines, currentLine)
			currentLine = word
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return strings.Join(lines, "\n  # ")
}

// templateToJSON renders the defaults, plus matchers when Full is set, as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	defaults := NewConfig()
	cfg := map[string]any{
		"log_level": defaults.LogLevel,
		"decorate": map[string]any{
			"skip_code":    defaults.SkipCode(),
			"fence_labels": defaults.FenceLabels(),
			"flavor":       defaults.Decorate.Flavor,
		},
		"math": map[string]any{
			"strict": defaults.StrictMath(),
		},
		"ignore": []string{},
	}

	if opts.Full {
		matchers := make(map[string]any)
		for _, m := range matcherInfos(opts.IncludeMatchers) {
			matchers[m.ID] = map[string]any{
				"enabled":  m.Enabled,
				"priority": m.Priority,
			}
		}
		cfg["matchers"] = matchers
	}

	jsonBytes, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# grim configuration
# See: https://github.com/yaklabco/grim`
}
