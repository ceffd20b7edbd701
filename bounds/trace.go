package bounds

import (
	"fmt"

	"github.com/tetramorph/overrun/loc"
)

// TraceKind identifies what a trace node attributes imprecision to.
type TraceKind uint8

const (
	TraceLoop TraceKind = iota
	TraceModeledCall
	TraceInterCall
)

// A Trace explains why a bound became symbolic or infinite: which loop,
// which modeled call, or which call site introduced it. Traces are
// immutable, append-only chains; combining bounds combines traces, never
// reconstructs them after the fact.
type Trace struct {
	kind  TraceKind
	name  string
	at    loc.Loc
	inner *Trace
}

// OfLoop attributes unknown-ness to the loop at l.
func OfLoop(l loc.Loc) *Trace {
	return &Trace{kind: TraceLoop, at: l}
}

// OfModeledCall attributes unknown-ness to a call to the modeled function
// name at l.
func OfModeledCall(name string, l loc.Loc) *Trace {
	return &Trace{kind: TraceModeledCall, name: name, at: l}
}

// InterCall wraps a callee's trace with the call site responsible for
// translating it into the caller's context. inner may be nil when the
// callee contributed no trace of its own.
func InterCall(proc string, l loc.Loc, inner *Trace) *Trace {
	return &Trace{kind: TraceInterCall, name: proc, at: l, inner: inner}
}

// Kind returns what this node attributes imprecision to.
func (t *Trace) Kind() TraceKind { return t.kind }

// Name is the procedure or modeled-function name; empty for loop nodes.
func (t *Trace) Name() string { return t.name }

// At is the program location of this node.
func (t *Trace) At() loc.Loc { return t.at }

// Inner is the wrapped callee trace, nil for leaves.
func (t *Trace) Inner() *Trace { return t.inner }

// Length is the depth of the explanation chain.
func (t *Trace) Length() int {
	n := 0
	for ; t != nil; t = t.inner {
		n++
	}
	return n
}

func (t *Trace) message() string {
	switch t.kind {
	case TraceLoop:
		return "bound of the loop here"
	case TraceModeledCall:
		return fmt.Sprintf("return value of the modeled function %q", t.name)
	case TraceInterCall:
		return fmt.Sprintf("call to %q", t.name)
	default:
		panic(fmt.Sprintf("unhandled trace kind %d", t.kind))
	}
}

// ErrTrace renders the chain, outermost step first, truncated to depth
// steps. A truncated rendering is annotated so a reader knows steps were
// dropped.
func (t *Trace) ErrTrace(depth int) []loc.Step {
	var steps []loc.Step
	for ; t != nil; t = t.inner {
		if len(steps) >= depth {
			steps = append(steps, loc.Step{Loc: t.at, Msg: "remaining trace truncated"})
			return steps
		}
		steps = append(steps, loc.Step{Loc: t.at, Msg: t.message()})
	}
	return steps
}

func (t *Trace) String() string {
	if t == nil {
		return "<none>"
	}
	s := fmt.Sprintf("%s at %s", t.message(), t.at)
	if t.inner != nil {
		return s + " ← " + t.inner.String()
	}
	return s
}

// longerTrace keeps the more informative of two provenance chains when a
// combination has to pick one.
func longerTrace(a, b *Trace) *Trace {
	if b.Length() > a.Length() {
		return b
	}
	return a
}
