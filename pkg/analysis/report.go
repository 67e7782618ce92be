package analysis

import "time"

// Report contains pre-computed views of decoration results.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// Entries is the flat list for detailed output.
	Entries []Entry `json:"decorations"`

	// ByFile groups decorations by file path.
	ByFile []FileAnalysis `json:"byFile,omitempty"`

	// BySource groups decorations by the matcher or field that produced them.
	BySource []SourceAnalysis `json:"bySource,omitempty"`

	// Errors lists files that could not be decorated.
	Errors []FileError `json:"errors,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Entry represents a single decoration in the report.
// Lines and columns are 1-based; offsets are byte offsets.
type Entry struct {
	FilePath    string            `json:"filePath"`
	Source      string            `json:"source"`
	Label       string            `json:"label"`
	Kind        string            `json:"kind"`
	From        int               `json:"from"`
	To          int               `json:"to"`
	StartLine   int               `json:"startLine"`
	StartColumn int               `json:"startColumn"`
	EndLine     int               `json:"endLine"`
	EndColumn   int               `json:"endColumn"`
	Block       bool              `json:"block,omitempty"`
	Class       string            `json:"class,omitempty"`
	Attrs       map[string]string `json:"attrs,omitempty"`
	Content     string            `json:"content,omitempty"`
	Widget      string            `json:"widget,omitempty"`
	Fallback    bool              `json:"fallback,omitempty"`

	// SourceLine is the text of StartLine, kept for context display.
	SourceLine string `json:"-"`
}

// FileError records a file that failed to load.
type FileError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files          int `json:"filesChecked"`
	FilesDecorated int `json:"filesDecorated"`
	FilesErrored   int `json:"filesErrored"`
	Decorations    int `json:"decorations"`
	Widgets        int `json:"widgets"`
	Marks          int `json:"marks"`
	Replaces       int `json:"replaces"`
	Fallbacks      int `json:"mathFallbacks"`
}

// HasDecorations returns true if there are any decorations.
func (t Totals) HasDecorations() bool {
	return t.Decorations > 0
}

// HasErrors returns true if any file failed.
func (t Totals) HasErrors() bool {
	return t.FilesErrored > 0
}

// Counts holds per-kind decoration counts.
type Counts struct {
	Decorations int `json:"decorations"`
	Widgets     int `json:"widgets"`
	Marks       int `json:"marks"`
	Replaces    int `json:"replaces"`
	Fallbacks   int `json:"mathFallbacks"`
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path string `json:"path"`
	Counts
	Sources []string `json:"sources,omitempty"`
}

// SourceAnalysis contains aggregated data for a single matcher or field.
type SourceAnalysis struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	Label  string `json:"label"`
	Counts
	Files []string `json:"files,omitempty"`
}
