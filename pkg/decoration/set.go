package decoration

import (
	"slices"
)

// Set is an immutable, ordered collection of decorations for one document revision.
// Replace decorations never overlap each other. Marks and widgets may share
// positions with other decorations.
type Set struct {
	revision uint64
	decos    []Decoration
}

// Empty returns a set with no decorations.
func Empty(revision uint64) *Set {
	return &Set{revision: revision}
}

// NewSet sorts decorations and returns them as a validated set.
func NewSet(revision uint64, decos ...Decoration) (*Set, error) {
	sorted := slices.Clone(decos)
	slices.SortStableFunc(sorted, Compare)

	b := NewBuilder(revision)
	for _, d := range sorted {
		if err := b.Add(d); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// Merge combines sets into one at the given revision, ordered by Compare.
// Ties keep the order of the input sets.
func Merge(revision uint64, sets ...*Set) *Set {
	var all []Decoration
	for _, s := range sets {
		if s != nil {
			all = append(all, s.decos...)
		}
	}
	slices.SortStableFunc(all, Compare)
	return &Set{revision: revision, decos: all}
}

// Revision returns the document revision the set was built for.
func (s *Set) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}

// WithRevision returns the same decorations stamped with another revision.
func (s *Set) WithRevision(revision uint64) *Set {
	return &Set{revision: revision, decos: s.decos}
}

// Len returns the number of decorations.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.decos)
}

// At returns the i-th decoration.
func (s *Set) At(i int) Decoration {
	return s.decos[i]
}

// All returns a copy of the decorations in order.
func (s *Set) All() []Decoration {
	if s == nil {
		return nil
	}
	return slices.Clone(s.decos)
}

// Each calls fn for every decoration in order until fn returns false.
func (s *Set) Each(fn func(Decoration) bool) {
	if s == nil {
		return
	}
	for _, d := range s.decos {
		if !fn(d) {
			return
		}
	}
}

// Filter returns the decorations of the given kind.
func (s *Set) Filter(kind Kind) []Decoration {
	var out []Decoration
	s.Each(func(d Decoration) bool {
		if d.Kind == kind {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Between returns decorations that touch [from, to].
func (s *Set) Between(from, to int) []Decoration {
	var out []Decoration
	s.Each(func(d Decoration) bool {
		if d.From > to {
			return false
		}
		if d.To >= from {
			out = append(out, d)
		}
		return true
	})
	return out
}

// Equal reports whether two sets hold identical decorations at the same revision.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() || s.Revision() != other.Revision() {
		return false
	}
	for i := range s.Len() {
		if !s.decos[i].Equal(other.decos[i]) {
			return false
		}
	}
	return true
}

// Validate checks ordering and that no two replace decorations overlap.
func (s *Set) Validate() error {
	var lastReplace *Decoration
	for i := range s.Len() {
		d := s.decos[i]
		if err := validateOne(d); err != nil {
			return err
		}
		if i > 0 && Compare(s.decos[i-1], d) > 0 {
			prev := s.decos[i-1]
			return &OrderError{Prev: &prev, Next: d, Message: "out of order"}
		}
		if d.Kind != KindReplace {
			continue
		}
		if lastReplace != nil && d.From < lastReplace.To {
			return &OverlapError{First: *lastReplace, Second: d}
		}
		lastReplace = &s.decos[i]
	}
	return nil
}

// Map carries the set through changes. Range decorations that collapse are
// dropped; widgets follow their side. An empty change set returns s itself.
func (s *Set) Map(changes ChangeSet) *Set {
	if s == nil || changes.Empty() {
		return s
	}

	out := make([]Decoration, 0, len(s.decos))
	for _, d := range s.decos {
		switch d.Kind {
		case KindWidget:
			assoc := 1
			if d.Side < 0 {
				assoc = -1
			}
			pos := changes.MapPos(d.From, assoc)
			d.From, d.To = pos, pos
		default:
			d.From = changes.MapPos(d.From, 1)
			d.To = changes.MapPos(d.To, -1)
			if d.To <= d.From {
				continue
			}
		}
		out = append(out, d)
	}
	slices.SortStableFunc(out, Compare)

	return &Set{revision: s.revision, decos: out}
}
