package compositor

import (
	"slices"

	"github.com/yaklabco/grim/pkg/decoration"
	"github.com/yaklabco/grim/pkg/document"
	"github.com/yaklabco/grim/pkg/selection"
)

// State is everything a rebuild depends on. It is passed explicitly to
// every call; the compositor keeps no reference to it.
type State struct {
	Doc       *document.Document
	Selection selection.Selection

	// Viewport lists the ranges the host currently renders.
	// Empty means the whole document is visible.
	Viewport []document.Range
}

// Visible returns the viewport, or the whole document when none is set.
func (s State) Visible() []document.Range {
	if len(s.Viewport) > 0 {
		return s.Viewport
	}
	return []document.Range{s.doc().Full()}
}

func (s State) doc() *document.Document {
	if s.Doc == nil {
		return document.New(0, nil)
	}
	return s.Doc
}

// Transaction describes one host event: a document edit, a selection move,
// a viewport scroll, or any combination.
type Transaction struct {
	Before State
	After  State

	// Changes maps offsets in Before.Doc to offsets in After.Doc.
	Changes decoration.ChangeSet

	DocChanged      bool
	SelectionSet    bool
	ViewportChanged bool
}

// NewTransaction derives the change flags by comparing before and after.
// The document counts as changed when its revision or content differs or
// changes is not empty.
func NewTransaction(before, after State, changes decoration.ChangeSet) Transaction {
	prevDoc, nextDoc := before.doc(), after.doc()

	return Transaction{
		Before:  before,
		After:   after,
		Changes: changes,
		DocChanged: !changes.Empty() ||
			prevDoc.Revision != nextDoc.Revision ||
			!prevDoc.SameContent(nextDoc),
		SelectionSet:    !before.Selection.Equal(after.Selection),
		ViewportChanged: !slices.Equal(before.Viewport, after.Viewport),
	}
}

// Edit builds the transaction for replacing before's document with next.
// The change set is derived from the two contents.
func Edit(before State, next *document.Document) Transaction {
	after := before
	after.Doc = next
	return NewTransaction(before, after, decoration.Diff(before.doc().Bytes(), next.Bytes()))
}

// Select builds the transaction for a selection change alone.
func Select(before State, sel selection.Selection) Transaction {
	after := before
	after.Selection = sel
	return NewTransaction(before, after, decoration.ChangeSet{})
}

// Scroll builds the transaction for a viewport change alone.
func Scroll(before State, viewport ...document.Range) Transaction {
	after := before
	after.Viewport = viewport
	return NewTransaction(before, after, decoration.ChangeSet{})
}

// FieldUpdate returns the view of the transaction document-scoped fields consume.
func (tr Transaction) FieldUpdate() decoration.FieldUpdate {
	return decoration.FieldUpdate{
		Doc:          tr.After.doc(),
		Selection:    tr.After.Selection,
		Changes:      tr.Changes,
		DocChanged:   tr.DocChanged,
		SelectionSet: tr.SelectionSet,
	}
}
