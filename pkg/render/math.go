package render

import (
	"errors"
	"fmt"
)

// ErrTypesetPanic is reported to failure hooks when a typesetter panics.
var ErrTypesetPanic = errors.New("typesetter panicked")

// FallbackClass marks nodes that show literal math source after a failure.
const FallbackClass = "cm-math-fallback"

// MathOptions controls a single typesetting call.
type MathOptions struct {
	// DisplayMode selects block layout instead of inline.
	DisplayMode bool

	// ThrowOnError makes parse errors return an error instead of an error node.
	ThrowOnError bool

	// Strict rejects input the typesetter would otherwise tolerate.
	Strict bool
}

// Typesetter converts math source into a render tree.
type Typesetter interface {
	Typeset(source string, opts MathOptions) (*Node, error)
}

// TypesetterFunc adapts a function to the Typesetter interface.
type TypesetterFunc func(source string, opts MathOptions) (*Node, error)

// Typeset calls f.
func (f TypesetterFunc) Typeset(source string, opts MathOptions) (*Node, error) {
	return f(source, opts)
}

// Math typesets source and never fails: returned errors, nil results and
// panics all degrade to a node showing the literal source.
func Math(ts Typesetter, source string, opts MathOptions) (node *Node) {
	defer func() {
		if r := recover(); r != nil {
			node = Fallback(source, opts.DisplayMode)
		}
	}()

	if ts == nil {
		return Fallback(source, opts.DisplayMode)
	}

	out, err := ts.Typeset(source, opts)
	if err != nil || out == nil {
		return Fallback(source, opts.DisplayMode)
	}
	return out
}

// Fallback returns the literal-source node used when typesetting fails.
func Fallback(source string, display bool) *Node {
	tag := "span"
	if display {
		tag = "div"
	}
	return El(tag, source).WithClass(FallbackClass)
}

// FailureHook observes typesetting failures. It must not panic.
type FailureHook func(source string, err error)

type hookedTypesetter struct {
	inner Typesetter
	hook  FailureHook
}

// WithFailureHook wraps ts so every failure is reported to hook before the
// boundary in Math replaces it with the fallback node.
func WithFailureHook(ts Typesetter, hook FailureHook) Typesetter {
	if ts == nil || hook == nil {
		return ts
	}
	return &hookedTypesetter{inner: ts, hook: hook}
}

func (h *hookedTypesetter) Typeset(source string, opts MathOptions) (node *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			node = nil
			err = fmt.Errorf("%w: %v", ErrTypesetPanic, r)
			h.hook(source, err)
		}
	}()

	node, err = h.inner.Typeset(source, opts)
	if err != nil {
		h.hook(source, err)
	}
	return node, err
}
