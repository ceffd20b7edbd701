package bounds

import (
	"fmt"

	"github.com/tetramorph/overrun/symb"
)

// BoundEnd selects which end of a symbol's range an evaluation should
// produce.
type BoundEnd uint8

const (
	LowerEnd BoundEnd = iota
	UpperEnd
)

func (e BoundEnd) flip() BoundEnd {
	if e == LowerEnd {
		return UpperEnd
	}
	return LowerEnd
}

func (e BoundEnd) String() string {
	if e == LowerEnd {
		return "lb"
	}
	return "ub"
}

// Lifted is a bound lifted into a bottom-or-value domain. Bottom means the
// substitution discovered an infeasible region; it is distinct from an
// unknown value, which stays in the non-bottom case as ±∞. The type forces
// callers to decide what to do with infeasibility instead of silently
// reading a value.
type Lifted struct {
	b      Bound
	bottom bool
}

func Bottom() Lifted {
	return Lifted{bottom: true}
}

func NonBottom(b Bound) Lifted {
	return Lifted{b: b}
}

func (l Lifted) IsBottom() bool {
	return l.bottom
}

// Bound returns the carried bound; ok is false for bottom.
func (l Lifted) Bound() (Bound, bool) {
	if l.bottom {
		return Bound{}, false
	}
	return l.b, true
}

func (l Lifted) String() string {
	if l.bottom {
		return "⊥"
	}
	return l.b.String()
}

// Eval resolves a symbol at a call site to the requested end of its range
// in the caller's context, typically derived from actual-argument bounds.
// It returns bottom when the symbol's range is known to be empty.
type Eval func(s symb.Symbol, end BoundEnd) Lifted

// SubstLB replaces every symbol in b with its evaluation, producing a
// lower bound of the result. Substitution yields bottom when the evaluated
// symbols make the expression infeasible: a symbol whose evaluated range is
// empty (lower end provably above the upper end) has no inhabitant.
func SubstLB(b Bound, eval Eval) Lifted {
	return subst(dirLower, b, eval)
}

// SubstUB is the upper-bound counterpart of SubstLB.
func SubstUB(b Bound, eval Eval) Lifted {
	return subst(dirUpper, b, eval)
}

func subst(d direction, b Bound, eval Eval) Lifted {
	switch b.kind {
	case kindMInf, kindPInf, kindConst:
		return NonBottom(b)
	case kindSymbolic:
		lb := eval(b.sym, LowerEnd)
		ub := eval(b.sym, UpperEnd)
		if lb.IsBottom() || ub.IsBottom() {
			return Bottom()
		}
		if Lt(ub.b, lb.b) {
			// The symbol's evaluated range is empty: the region is
			// unreachable, not merely unknown.
			return Bottom()
		}
		end := LowerEnd
		if d == dirUpper {
			end = UpperEnd
		}
		if b.sign < 0 {
			end = end.flip()
		}
		v := lb.b
		if end == UpperEnd {
			v = ub.b
		}
		if b.sign < 0 {
			v = v.Neg()
		}
		return NonBottom(plus(d, false, v, OfZ(b.offset)))
	case kindMinMax:
		l := subst(d, *b.lhs, eval)
		if l.IsBottom() {
			return Bottom()
		}
		r := subst(d, *b.rhs, eval)
		if r.IsBottom() {
			return Bottom()
		}
		var nb Bound
		switch {
		case b.mm == Min && d == dirLower:
			nb = UnderMin(l.b, r.b)
		case b.mm == Min && d == dirUpper:
			nb = OverMin(l.b, r.b)
		case b.mm == Max && d == dirLower:
			nb = UnderMax(l.b, r.b)
		default:
			nb = OverMax(l.b, r.b)
		}
		return NonBottom(nb)
	default:
		panic(fmt.Sprintf("unhandled bound kind %d", b.kind))
	}
}
