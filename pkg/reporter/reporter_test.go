package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/grim/pkg/analysis"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/reporter"
	"github.com/yaklabco/grim/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "table", input: "table", want: reporter.FormatTable},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "summary", input: "summary", want: reporter.FormatSummary},
		{name: "case insensitive", input: "JSON", want: reporter.FormatJSON},
		{name: "unknown format", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				assert.Contains(t, err.Error(), "text, table, json, summary")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "table reporter", format: reporter.FormatTable},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "summary reporter", format: reporter.FormatSummary},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format, Color: "never"})
			if tt.wantErr {
				require.ErrorIs(t, err, reporter.ErrUnknownFormat)
				require.Nil(t, rep)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

func TestReporters_ReturnDecorationCount(t *testing.T) {
	t.Parallel()

	for _, format := range []reporter.Format{
		reporter.FormatText, reporter.FormatTable, reporter.FormatJSON, reporter.FormatSummary,
	} {
		t.Run(string(format), func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: format, Color: "never", WorkingDir: "/work"})
			require.NoError(t, err)

			count, err := rep.Report(context.Background(), createTestResult())
			require.NoError(t, err)
			assert.Equal(t, 4, count)
			assert.NotEmpty(t, buf.String())
		})
	}
}

func TestTextReporter_NilResult(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	count, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Contains(t, buf.String(), "No files to decorate")
}

func TestTextReporter_Grouped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:        &buf,
		Color:         "never",
		ShowSummary:   true,
		ShowContext:   true,
		GroupByFile:   true,
		MatcherFormat: config.MatcherFormatName,
		WorkingDir:    "/work",
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "gone.md: error: file not found")
	assert.Contains(t, output, "a.md (3 decorations)")
	assert.Contains(t, output, "b.md (1 decoration)")
	assert.Contains(t, output, "a.md:3:1  replace")
	assert.Contains(t, output, "(emphasis)")
	assert.Contains(t, output, "[math fallback]")
	assert.Contains(t, output, "        **bold** $\\nope$\n")
	assert.NotContains(t, output, "plain.md")
	assert.Contains(t, output, "4 decorations (1 mark, 3 replace) in 2 files, 1 math fallback, 1 failed")
}

func TestTextReporter_Flat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:        &buf,
		Color:         "never",
		MatcherFormat: config.MatcherFormatID,
		WorkingDir:    "/work",
	})

	_, err := rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	output := buf.String()
	assert.NotContains(t, output, "decorations)")
	assert.Contains(t, output, "(GM001)")
	assert.Equal(t, 5, strings.Count(output, "\n"), output)
}

func TestTableReporter(t *testing.T) {
	t.Parallel()

	t.Run("combined", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true, WorkingDir: "/work"})
		_, err := rep.Report(context.Background(), createTestResult())
		require.NoError(t, err)

		output := buf.String()
		assert.Contains(t, output, "FILE")
		assert.Contains(t, output, "code-fence")
		assert.Contains(t, output, "4 files checked | 4 decorations | 1 math fallbacks | 1 failed")
	})

	t.Run("per file", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		rep := reporter.NewTableReporter(reporter.Options{
			Writer: &buf, Color: "never", ShowSummary: true, PerFile: true, WorkingDir: "/work",
		})
		_, err := rep.Report(context.Background(), createTestResult())
		require.NoError(t, err)

		output := buf.String()
		assert.Equal(t, 2, strings.Count(output, "LOC"))
		assert.Contains(t, output, "Overall Summary")
	})

	t.Run("nothing decorated", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		rep := reporter.NewTableReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})
		count, err := rep.Report(context.Background(), runner.NewResult(outcome("p.md", "plain\n")))
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Contains(t, buf.String(), "No decorations (1 files checked)")
	})
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, WorkingDir: "/work"})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), createTestResult())
	require.NoError(t, err)

	var output analysis.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, analysis.ReportVersion, output.Version)
	assert.Len(t, output.Entries, 4)
	assert.Equal(t, 4, output.Totals.Decorations)
	assert.Equal(t, 1, output.Totals.Fallbacks)
	require.Len(t, output.Errors, 1)
	assert.Equal(t, "gone.md", output.Errors[0].Path)
	assert.Contains(t, buf.String(), `"widget": "<h1`, "HTML is not escaped")
}

func TestJSONRenderer_CompactEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := reporter.New(reporter.Options{Writer: &buf, Format: reporter.FormatJSON, Compact: true})
	require.NoError(t, err)

	_, err = rep.Report(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"decorations":[]`)
}
