// Package runner provides multi-file decoration orchestration.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/grim/pkg/compositor"
	"github.com/yaklabco/grim/pkg/config"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/selection"
)

// Options controls multi-file decoration behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to [".md", ".markdown"] via DefaultExtensions().
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.GOMAXPROCS).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config

	// Selection is applied to every document, as if the caret were there.
	Selection selection.Selection

	// Viewport lists the visible ranges applied to every document.
	// When empty, Config.Decorate.ViewportLines lines from the top are
	// visible, or the whole document when that is zero.
	Viewport []document.Range

	// Logger receives per-file debug output. Defaults to the logger carried
	// by the context passed to Run, or a discarding logger.
	Logger *log.Logger

	// Compositor overrides the options each worker builds its compositor
	// with. When nil, CompositorOptions(Config, Logger) is used.
	Compositor []compositor.Option
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions returns the extensions to use, defaulting if empty.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

// State returns the editor state a document is decorated under.
func (o Options) State(doc *document.Document) compositor.State {
	state := compositor.State{Doc: doc, Selection: o.Selection}

	switch {
	case len(o.Viewport) > 0:
		state.Viewport = o.Viewport
	case o.Config != nil && o.Config.Decorate.ViewportLines > 0:
		state.Viewport = []document.Range{compositor.Visible(doc, 1, o.Config.Decorate.ViewportLines)}
	}

	return state
}
