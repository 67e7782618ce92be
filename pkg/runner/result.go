package runner

import (
	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/render"
)

// FileOutcome pairs a decorated document with its path.
type FileOutcome struct {
	// Path is the file path that was processed.
	Path string

	// Document is the document built from the file content.
	// Nil if the file could not be read.
	Document *document.Document

	// Result contains the decorations for this file.
	// Nil if the file encountered an error during processing.
	Result *compositor.Result

	// Error is set if the file could not be processed.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesProcessed is the number of files successfully processed.
	FilesProcessed int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// FilesDecorated is the number of files with at least one decoration.
	FilesDecorated int

	// DecorationsTotal is the total number of decorations across all files.
	DecorationsTotal int

	// DecorationsByKind maps decoration kinds (widget, mark, replace) to counts.
	DecorationsByKind map[string]int

	// DecorationsBySource maps matcher IDs and field sources to counts.
	DecorationsBySource map[string]int

	// MathFallbacks counts math widgets that show literal source because
	// typesetting failed.
	MathFallbacks int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file.
	// Files are ordered deterministically (by path).
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasFailures reports whether any file could not be processed.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// HasDecorations reports whether any decorations were produced.
func (r *Result) HasDecorations() bool {
	if r == nil {
		return false
	}
	return r.Stats.DecorationsTotal > 0
}

// NewResult builds a Result from outcomes that were produced outside Run,
// such as a single watched file.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{
		Files: make([]FileOutcome, 0, len(outcomes)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
	}
	return result
}

// newStats creates a new Stats with initialized maps.
func newStats() Stats {
	return Stats{
		DecorationsByKind:   make(map[string]int),
		DecorationsBySource: make(map[string]int),
	}
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	decos := outcome.Result.All()
	r.Stats.DecorationsTotal += len(decos)
	if len(decos) > 0 {
		r.Stats.FilesDecorated++
	}

	for _, deco := range decos {
		r.Stats.DecorationsByKind[deco.Kind.String()]++

		source := deco.Source
		if source == "" {
			source = "unknown"
		}
		r.Stats.DecorationsBySource[source]++

		if IsMathFallback(deco) {
			r.Stats.MathFallbacks++
		}
	}
}

// IsMathFallback reports whether deco carries a math widget that failed to
// typeset, either as the literal-source fallback or a typesetter error node.
func IsMathFallback(deco decoration.Decoration) bool {
	return deco.Widget.Any(func(n *render.Node) bool {
		return n.HasClass(render.FallbackClass) || n.HasClass("katex-error")
	})
}
