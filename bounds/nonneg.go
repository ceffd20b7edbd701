package bounds

import (
	"fmt"
	"math/big"

	"github.com/tetramorph/overrun/loc"
)

// DefaultWideningDelay is the number of fixpoint iterations during which
// NonNegativeBound widening keeps joining before it gives up and jumps to
// ∞. Bounds that stabilize quickly keep their precision at the cost of a
// few extra iterations.
const DefaultWideningDelay = 3

// A NonNegativeBound is a bound known to satisfy value ≥ 0, used for
// loop iteration counts and cost estimates, together with the provenance
// of its imprecision. These are the values persisted into per-procedure
// summaries.
type NonNegativeBound struct {
	b     Bound
	trace *Trace
}

// OfLoopBound wraps the bound of the loop at l, clamping it into the
// non-negative range.
func OfLoopBound(l loc.Loc, b Bound) NonNegativeBound {
	return NonNegativeBound{b: MaxOf(Zero(), b), trace: OfLoop(l)}
}

// OfModeledFunction wraps the bound contributed by a call to the modeled
// function name at l.
func OfModeledFunction(name string, l loc.Loc, b Bound) NonNegativeBound {
	return NonNegativeBound{b: MaxOf(Zero(), b), trace: OfModeledCall(name, l)}
}

// NonNegOfBig wraps a known-non-negative concrete integer with a
// caller-supplied trace. A negative argument is a defect, not a
// representable state.
func NonNegOfBig(trace *Trace, z *big.Int) NonNegativeBound {
	if z.Sign() < 0 {
		panic(fmt.Sprintf("non-negative bound of %s", z))
	}
	return NonNegativeBound{b: OfBig(z), trace: trace}
}

// NonNegOf wraps an arbitrary bound with a caller-supplied trace, clamping
// it into the non-negative range.
func NonNegOf(trace *Trace, b Bound) NonNegativeBound {
	return NonNegativeBound{b: MaxOf(Zero(), b), trace: trace}
}

// NonNegZero is the canonical zero with a trivial trace rooted at l.
func NonNegZero(l loc.Loc) NonNegativeBound {
	return NonNegativeBound{b: Zero(), trace: OfLoop(l)}
}

func (n NonNegativeBound) Bound() Bound  { return n.b }
func (n NonNegativeBound) Trace() *Trace { return n.trace }

func (n NonNegativeBound) String() string {
	return n.b.String()
}

// ClassKind classifies a non-negative bound for downstream processing.
type ClassKind uint8

const (
	// ClassConstant is an exact non-negative integer.
	ClassConstant ClassKind = iota
	// ClassSymbolic still contains a symbol and needs further processing.
	ClassSymbolic
	// ClassTop has collapsed to unknown; only the trace explaining the
	// precision loss remains.
	ClassTop
)

// Class is the result of classification. Exactly one payload is
// meaningful: Const for ClassConstant, Sym for ClassSymbolic, Trace for
// ClassTop.
type Class struct {
	Kind  ClassKind
	Const Z
	Sym   NonNegativeBound
	Trace *Trace
}

// Classify inspects the wrapped bound. The decision table is fixed:
// concrete constants are Constant, anything containing a symbol is
// Symbolic, everything else has lost all information and is Top.
func (n NonNegativeBound) Classify() Class {
	if c, ok := n.b.AsConst(); ok {
		return Class{Kind: ClassConstant, Const: c}
	}
	if n.b.IsSymbolic() {
		return Class{Kind: ClassSymbolic, Sym: n}
	}
	return Class{Kind: ClassTop, Trace: n.trace}
}

// LeqNonNeg is the lattice order on non-negative bounds.
func LeqNonNeg(lhs, rhs NonNegativeBound) bool {
	return Le(lhs.b, rhs.b)
}

// Join is the lattice join. The result must still be non-negative; a join
// that provably is not indicates a caller fed in a value that lost the
// invariant, which is a defect.
func (n NonNegativeBound) Join(o NonNegativeBound) NonNegativeBound {
	nb := OverMax(n.b, o.b)
	if Lt(nb, Zero()) {
		panic(fmt.Sprintf("join of non-negative bounds is negative: %s ∨ %s = %s", n.b, o.b, nb))
	}
	return NonNegativeBound{b: nb, trace: longerTrace(n.trace, o.trace)}
}

// Widen applies upper-bound widening, deferred for the first
// DefaultWideningDelay iterations so bounds that stabilize quickly keep
// their precision.
func (n NonNegativeBound) Widen(next NonNegativeBound, numIters int) NonNegativeBound {
	return n.WidenDelayed(next, numIters, DefaultWideningDelay)
}

// WidenDelayed is Widen with an explicit delay, for callers that configure
// the trade-off.
func (n NonNegativeBound) WidenDelayed(next NonNegativeBound, numIters, delay int) NonNegativeBound {
	if numIters <= delay {
		return n.Join(next)
	}
	nb := WidenU(n.b, next.b)
	return NonNegativeBound{b: nb, trace: longerTrace(n.trace, next.trace)}
}

// MaskMinMaxConstant collapses a min/max composition down to a plain
// constant when doing so cannot decrease soundness of an upper estimate: a
// min is dominated by its constant branch, and a max with concretely
// bounded branches by the larger of their upper ends. A readability
// simplification for downstream reporting.
func (n NonNegativeBound) MaskMinMaxConstant() NonNegativeBound {
	b := n.b
	if b.kind != kindMinMax {
		return n
	}
	if b.mm == Min {
		if c, ok := b.lhs.AsConst(); ok {
			return NonNegativeBound{b: OfZ(c), trace: n.trace}
		}
		if c, ok := b.rhs.AsConst(); ok {
			return NonNegativeBound{b: OfZ(c), trace: n.trace}
		}
		return n
	}
	if u := bigUpper(b); !u.Infinite() {
		return NonNegativeBound{b: OfZ(u), trace: n.trace}
	}
	return n
}

// IntLB is the best concrete lower bound, clamped into the non-negative
// range. It is always finite.
func (n NonNegativeBound) IntLB() *big.Int {
	l := bigLower(n.b)
	if l.Infinite() {
		return new(big.Int)
	}
	return MaxZ(NewZ(0), l).Big()
}

// IntUB is the best concrete upper bound; ok is false when no finite upper
// bound is known.
func (n NonNegativeBound) IntUB() (*big.Int, bool) {
	u := bigUpper(n.b)
	if u.Infinite() {
		return nil, false
	}
	return u.Big(), true
}

// SubstNonNeg translates a callee's non-negative bound into the caller's
// context: every symbol is evaluated through eval, the result is clamped
// back into the non-negative range, and the trace gains an entry naming
// the call site responsible. ok is false when the evaluation discovered an
// infeasible region; the caller must prune it rather than report a bound.
func SubstNonNeg(n NonNegativeBound, proc string, l loc.Loc, eval Eval) (NonNegativeBound, bool) {
	lifted := SubstUB(n.b, eval)
	nb, ok := lifted.Bound()
	if !ok {
		return NonNegativeBound{}, false
	}
	return NonNegativeBound{
		b:     MaxOf(Zero(), nb),
		trace: InterCall(proc, l, n.trace),
	}, true
}
