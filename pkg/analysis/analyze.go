package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/runner"
	"github.com/yaklabco/grim/pkg/scanner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return relPath
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	opts        Options
	sourceMap   map[string]*SourceAnalysis
	fileMap     map[string]*FileAnalysis
	sourceFiles map[string]map[string]bool
	fileSources map[string]map[string]bool
}

// newAnalysisContext creates a new analysis context.
func newAnalysisContext(opts Options) *analysisContext {
	if opts.Registry == nil {
		opts.Registry = scanner.DefaultRegistry
	}
	return &analysisContext{
		opts:        opts,
		sourceMap:   make(map[string]*SourceAnalysis),
		fileMap:     make(map[string]*FileAnalysis),
		sourceFiles: make(map[string]map[string]bool),
		fileSources: make(map[string]map[string]bool),
	}
}

// add counts one decoration.
func (c *Counts) add(deco decoration.Decoration, fallback bool) {
	c.Decorations++
	switch deco.Kind {
	case decoration.KindWidget:
		c.Widgets++
	case decoration.KindMark:
		c.Marks++
	case decoration.KindReplace:
		c.Replaces++
	}
	if fallback {
		c.Fallbacks++
	}
}

func (t *Totals) add(deco decoration.Decoration, fallback bool) {
	var c Counts
	c.add(deco, fallback)
	t.Decorations += c.Decorations
	t.Widgets += c.Widgets
	t.Marks += c.Marks
	t.Replaces += c.Replaces
	t.Fallbacks += c.Fallbacks
}

// sourceName resolves a matcher ID to its name. Field sources such as
// "block-math" are their own name.
func (ctx *analysisContext) sourceName(source string) string {
	if m, ok := ctx.opts.Registry.Get(source); ok {
		return m.Name()
	}
	return source
}

// label formats a source according to the configured matcher format.
func (ctx *analysisContext) label(source string) string {
	name := ctx.sourceName(source)
	if name == source {
		return source
	}
	return config.FormatMatcherID(ctx.opts.MatcherFormat, source, name)
}

// getOrCreateFileAnalysis returns existing or creates new FileAnalysis.
func (ctx *analysisContext) getOrCreateFileAnalysis(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileSources[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

// getOrCreateSourceAnalysis returns existing or creates new SourceAnalysis.
func (ctx *analysisContext) getOrCreateSourceAnalysis(source string) *SourceAnalysis {
	if _, ok := ctx.sourceMap[source]; !ok {
		ctx.sourceMap[source] = &SourceAnalysis{
			Source: source,
			Name:   ctx.sourceName(source),
			Label:  ctx.label(source),
		}
		ctx.sourceFiles[source] = make(map[string]bool)
	}
	return ctx.sourceMap[source]
}

// createEntry builds an Entry from a decoration.
func (ctx *analysisContext) createEntry(path string, doc *document.Document, deco decoration.Decoration, fallback bool) Entry {
	start := doc.Position(deco.From)
	end := doc.Position(deco.To)

	entry := Entry{
		FilePath:    path,
		Source:      deco.Source,
		Label:       ctx.label(deco.Source),
		Kind:        deco.Kind.String(),
		From:        deco.From,
		To:          deco.To,
		StartLine:   start.Line,
		StartColumn: start.Column,
		EndLine:     end.Line,
		EndColumn:   end.Column,
		Block:       deco.Block,
		Class:       deco.Class,
		Attrs:       deco.Attrs,
		Content:     deco.Content,
		Fallback:    fallback,
		SourceLine:  doc.LineContent(start.Line),
	}
	if deco.Widget != nil {
		entry.Widget = deco.Widget.HTML()
	}
	return entry
}

// buildBySource constructs the BySource slice from accumulated data.
func (ctx *analysisContext) buildBySource() []SourceAnalysis {
	result := make([]SourceAnalysis, 0, len(ctx.sourceMap))
	for source, sa := range ctx.sourceMap {
		for f := range ctx.sourceFiles[source] {
			sa.Files = append(sa.Files, f)
		}
		slices.Sort(sa.Files)
		result = append(result, *sa)
	}
	sortBy(result, ctx.opts, func(s SourceAnalysis) (string, Counts) { return s.Source, s.Counts })
	return result
}

// buildByFile constructs the ByFile slice from accumulated data.
func (ctx *analysisContext) buildByFile() []FileAnalysis {
	var result []FileAnalysis
	for path, fa := range ctx.fileMap {
		if fa.Decorations == 0 {
			continue
		}
		for s := range ctx.fileSources[path] {
			fa.Sources = append(fa.Sources, s)
		}
		slices.Sort(fa.Sources)
		result = append(result, *fa)
	}
	sortBy(result, ctx.opts, func(f FileAnalysis) (string, Counts) { return f.Path, f.Counts })
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through decorations to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
	}

	if result == nil {
		return report
	}

	ctx := newAnalysisContext(opts)

	for _, file := range result.Files {
		report.Totals.Files++
		displayPath := makeRelativePath(file.Path, opts.WorkingDir)

		if file.Error != nil {
			report.Totals.FilesErrored++
			report.Errors = append(report.Errors, FileError{Path: displayPath, Message: file.Error.Error()})
			continue
		}
		if file.Result == nil {
			continue
		}

		decos := file.Result.All()
		if len(decos) > 0 {
			report.Totals.FilesDecorated++
		}

		fa := ctx.getOrCreateFileAnalysis(displayPath)

		for _, deco := range decos {
			fallback := runner.IsMathFallback(deco)
			report.Totals.add(deco, fallback)
			fa.add(deco, fallback)
			ctx.fileSources[displayPath][deco.Source] = true

			sa := ctx.getOrCreateSourceAnalysis(deco.Source)
			sa.add(deco, fallback)
			ctx.sourceFiles[deco.Source][displayPath] = true

			if opts.IncludeEntries && file.Document != nil {
				report.Entries = append(report.Entries, ctx.createEntry(displayPath, file.Document, deco, fallback))
			}
		}
	}

	if opts.IncludeBySource {
		report.BySource = ctx.buildBySource()
	}
	if opts.IncludeByFile {
		report.ByFile = ctx.buildByFile()
	}

	return report
}

// sortBy orders items by opts.SortBy. Ties fall back to the key so output
// is stable across runs.
func sortBy[T any](items []T, opts Options, key func(T) (string, Counts)) {
	slices.SortFunc(items, func(left, right T) int {
		leftKey, leftCounts := key(left)
		rightKey, rightCounts := key(right)

		var result int
		switch opts.SortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z)
			return cmp.Compare(leftKey, rightKey)
		case SortByFallbacks:
			result = cmp.Compare(rightCounts.Fallbacks, leftCounts.Fallbacks)
			if result == 0 {
				result = cmp.Compare(rightCounts.Decorations, leftCounts.Decorations)
			}
		default: // SortByCount
			result = cmp.Compare(leftCounts.Decorations, rightCounts.Decorations)
			if opts.SortDesc {
				result = -result
			}
		}
		if result == 0 {
			result = cmp.Compare(leftKey, rightKey)
		}
		return result
	})
}
