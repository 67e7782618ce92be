package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/grim/internal/ui/pretty"
	"github.com/yaklabco/grim/pkg/analysis"
)

func sampleEntry() analysis.Entry {
	return analysis.Entry{
		FilePath:    "docs/a.md",
		Source:      "GM001",
		Label:       "emphasis",
		Kind:        "replace",
		StartLine:   3,
		StartColumn: 5,
		EndLine:     3,
		EndColumn:   13,
		Content:     "**bold**",
	}
}

func TestFormatEntry(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	entry := sampleEntry()

	out := styles.FormatEntry(&entry, false, "")
	assert.Equal(t, "  docs/a.md:3:5  replace  \"**bold**\"  (emphasis)\n", out)

	entry.Fallback = true
	assert.Contains(t, styles.FormatEntry(&entry, false, ""), "[math fallback]")
}

func TestFormatEntry_Context(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	entry := sampleEntry()

	out := styles.FormatEntry(&entry, true, "see **bold** here")
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, "        see **bold** here", lines[1])
	assert.Equal(t, "            ^~~~~~~", lines[2])
}

func TestFormatSourceContext_MultiLineFallsBackToCaret(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "        abc\n          ^\n", styles.FormatSourceContext("abc", 3, 1))
	assert.Equal(t, "        abc\n", styles.FormatSourceContext("abc", 0, 1))
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md (1 decoration)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (4 decorations)", styles.FormatFileHeader("a.md", 4))
	assert.Equal(t, "a.md", styles.FormatFileHeader("a.md", 0))
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		maxLen  int
		want    string
	}{
		{"empty", "", 10, `""`},
		{"short", "ab", 10, `"ab"`},
		{"newline escaped", "a\nb", 10, `"a\nb"`},
		{"truncated", "abcdefghij", 6, `"abcd…`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, pretty.Excerpt(tt.content, tt.maxLen))
		})
	}
}
