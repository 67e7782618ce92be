// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldFormat     = "format"

	// Configuration fields.
	FieldJobs     = "jobs"
	FieldSkipCode = "skip_code"
	FieldConfig   = "config"

	// Engine fields.
	FieldRevision = "revision"
	FieldSpans    = "spans"
	FieldBlocks   = "blocks"
	FieldFences   = "fences"
	FieldMatcher  = "matcher"
	FieldSource   = "source"
	FieldRanges   = "ranges"
	FieldEvent    = "event"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldDecorationsTotal = "decorations_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Matcher fields.
	FieldName        = "name"
	FieldPriority    = "priority"
	FieldEnabled     = "enabled"
	FieldDescription = "description"
)
