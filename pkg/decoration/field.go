package decoration

import (
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/selection"
)

// FieldUpdate is the part of a host transaction a document-scoped field reacts to.
type FieldUpdate struct {
	// Doc and Selection describe the state after the transaction.
	Doc       *document.Document
	Selection selection.Selection

	// Changes maps offsets from the previous document into Doc.
	Changes ChangeSet

	DocChanged   bool
	SelectionSet bool
}

// Field produces decorations from the whole document rather than the viewport.
type Field interface {
	// Build computes the field's decorations from scratch.
	Build(doc *document.Document, sel selection.Selection) *Set

	// Update returns the field's decorations after a transaction.
	Update(prev *Set, u FieldUpdate) *Set
}

// RebuildOrMap implements the usual field update rule: rebuild when the
// document or selection changed, otherwise carry prev through the changes.
func RebuildOrMap(f Field, prev *Set, u FieldUpdate) *Set {
	if prev == nil || u.DocChanged || u.SelectionSet {
		return f.Build(u.Doc, u.Selection)
	}
	return prev.Map(u.Changes)
}
