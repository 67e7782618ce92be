package decoration

// Builder accumulates decorations in document order and produces a Set.
// Decorations must arrive sorted by Compare; the builder rejects anything
// else so stale or unsorted offsets surface as errors instead of corrupt sets.
type Builder struct {
	revision uint64
	decos    []Decoration
	err      error
}

// NewBuilder creates a builder for a set at the given document revision.
func NewBuilder(revision uint64) *Builder {
	return &Builder{
		revision: revision,
		decos:    make([]Decoration, 0),
	}
}

// Add appends a decoration. It returns an *OrderError when the decoration
// has an inverted or negative range or sorts before the previous one.
// After the first error, Add keeps returning it and Finish fails.
func (b *Builder) Add(deco Decoration) error {
	if b.err != nil {
		return b.err
	}

	if err := validateOne(deco); err != nil {
		b.err = err
		return err
	}

	if n := len(b.decos); n > 0 {
		prev := b.decos[n-1]
		if Compare(prev, deco) > 0 {
			b.err = &OrderError{Prev: &prev, Next: deco, Message: "added out of order"}
			return b.err
		}
	}

	b.decos = append(b.decos, deco)
	return nil
}

// Len returns the number of decorations added so far.
func (b *Builder) Len() int {
	return len(b.decos)
}

// Finish returns the built set. The builder must not be reused.
func (b *Builder) Finish() (*Set, error) {
	if b.err != nil {
		return nil, b.err
	}
	set := &Set{revision: b.revision, decos: b.decos}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	b.decos = nil
	return set, nil
}

func validateOne(deco Decoration) error {
	switch {
	case deco.From < 0:
		return &OrderError{Next: deco, Message: "start offset is negative"}
	case deco.To < deco.From:
		return &OrderError{Next: deco, Message: "end offset is before start offset"}
	case deco.Kind == KindWidget && deco.To != deco.From:
		return &OrderError{Next: deco, Message: "widget must be zero-width"}
	case deco.Kind != KindWidget && deco.To == deco.From:
		return &OrderError{Next: deco, Message: "range decoration must not be empty"}
	}
	return nil
}
