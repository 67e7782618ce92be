package decoration

import (
	"bytes"
	"slices"
)

// Change replaces bytes [From, To) of the old document with Insert.
type Change struct {
	From   int
	To     int
	Insert string
}

// ChangeSet is an ordered list of non-overlapping changes in old-document coordinates.
// The zero value is the identity change.
type ChangeSet struct {
	Changes []Change
}

// NewChangeSet validates, sorts and conflict-checks changes against a document of docLen bytes.
func NewChangeSet(docLen int, changes ...Change) (ChangeSet, error) {
	if len(changes) == 0 {
		return ChangeSet{}, nil
	}

	for _, c := range changes {
		if err := validateChange(c, docLen); err != nil {
			return ChangeSet{}, err
		}
	}

	sorted := slices.Clone(changes)
	slices.SortStableFunc(sorted, func(a, b Change) int {
		if a.From != b.From {
			return a.From - b.From
		}
		return a.To - b.To
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].From < sorted[i-1].To {
			return ChangeSet{}, &ConflictError{First: sorted[i-1], Second: sorted[i]}
		}
	}

	return ChangeSet{Changes: sorted}, nil
}

func validateChange(c Change, docLen int) error {
	switch {
	case c.From < 0:
		return &ChangeError{Change: c, Message: "start offset is negative"}
	case c.To < c.From:
		return &ChangeError{Change: c, Message: "end offset is before start offset"}
	case c.To > docLen:
		return &ChangeError{Change: c, Message: "end offset exceeds document length"}
	}
	return nil
}

// Diff returns the single change that turns before into after,
// found by trimming their common prefix and suffix.
func Diff(before, after []byte) ChangeSet {
	if bytes.Equal(before, after) {
		return ChangeSet{}
	}

	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	return ChangeSet{Changes: []Change{{
		From:   prefix,
		To:     len(before) - suffix,
		Insert: string(after[prefix : len(after)-suffix]),
	}}}
}

// Empty reports whether the change set leaves the document unchanged.
func (cs ChangeSet) Empty() bool {
	for _, c := range cs.Changes {
		if c.From != c.To || c.Insert != "" {
			return false
		}
	}
	return true
}

// MapPos maps an old-document offset into the new document.
// assoc decides which side a position sticks to when text is inserted
// exactly there or the position sits inside replaced text: negative keeps
// it before the insertion, otherwise it moves after.
func (cs ChangeSet) MapPos(pos, assoc int) int {
	delta := 0
	for _, c := range cs.Changes {
		if pos < c.From {
			break
		}

		inserted := len(c.Insert)
		if pos > c.To || (c.From < c.To && pos == c.To) {
			delta += inserted - (c.To - c.From)
			continue
		}

		// pos lies within [c.From, c.To).
		switch {
		case c.From < c.To && pos == c.From:
			return pos + delta
		case assoc < 0:
			return c.From + delta
		default:
			return c.From + delta + inserted
		}
	}
	return pos + delta
}

// Apply returns content with the changes applied.
func (cs ChangeSet) Apply(content []byte) ([]byte, error) {
	if cs.Empty() {
		return content, nil
	}

	prepared, err := NewChangeSet(len(content), cs.Changes...)
	if err != nil {
		return nil, err
	}

	// Estimate result size.
	delta := 0
	for _, c := range prepared.Changes {
		delta += len(c.Insert) - (c.To - c.From)
	}

	var out bytes.Buffer
	out.Grow(len(content) + delta)

	cursor := 0
	for _, c := range prepared.Changes {
		// Copy content before this change.
		out.Write(content[cursor:c.From])
		out.WriteString(c.Insert)
		cursor = c.To
	}
	// Copy remaining content.
	out.Write(content[cursor:])

	return out.Bytes(), nil
}
