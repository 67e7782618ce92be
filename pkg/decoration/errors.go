package decoration

import "fmt"

// OrderError reports a decoration added out of order or with an inverted range.
// Prev is nil when the decoration is invalid on its own.
type OrderError struct {
	Prev    *Decoration
	Next    Decoration
	Message string
}

func (e *OrderError) Error() string {
	if e.Prev == nil {
		return fmt.Sprintf("invalid decoration %s: %s", e.Next, e.Message)
	}
	return fmt.Sprintf("decoration %s after %s: %s", e.Next, *e.Prev, e.Message)
}

// OverlapError reports two replace decorations covering the same text.
type OverlapError struct {
	First  Decoration
	Second Decoration
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("overlapping decorations: %s and %s", e.First, e.Second)
}

// ChangeError describes an invalid change.
type ChangeError struct {
	Change  Change
	Message string
}

func (e *ChangeError) Error() string {
	return fmt.Sprintf("invalid change [%d:%d]: %s", e.Change.From, e.Change.To, e.Message)
}

// ConflictError describes overlapping changes.
type ConflictError struct {
	First  Change
	Second Change
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping changes: [%d:%d] and [%d:%d]",
		e.First.From, e.First.To, e.Second.From, e.Second.To)
}
