package bounds

// bigLower returns the best concrete lower bound of b, NInfinity when none
// is known. Unsigned symbols contribute their offset: s + o ≥ o when s ≥ 0.
func bigLower(b Bound) Z {
	switch b.kind {
	case kindMInf:
		return NInfinity
	case kindPInf:
		return PInfinity
	case kindConst:
		return b.offset
	case kindSymbolic:
		if b.sign > 0 && b.sym.Unsigned {
			return b.offset
		}
		return NInfinity
	case kindMinMax:
		l1, l2 := bigLower(*b.lhs), bigLower(*b.rhs)
		if b.mm == Min {
			return MinZ(l1, l2)
		}
		return MaxZ(l1, l2)
	default:
		panic("unreachable")
	}
}

// bigUpper is the upper counterpart of bigLower.
func bigUpper(b Bound) Z {
	switch b.kind {
	case kindMInf:
		return NInfinity
	case kindPInf:
		return PInfinity
	case kindConst:
		return b.offset
	case kindSymbolic:
		if b.sign < 0 && b.sym.Unsigned {
			return b.offset
		}
		return PInfinity
	case kindMinMax:
		u1, u2 := bigUpper(*b.lhs), bigUpper(*b.rhs)
		if b.mm == Min {
			return MinZ(u1, u2)
		}
		return MaxZ(u1, u2)
	default:
		panic("unreachable")
	}
}

// Le reports whether a ≤ b is provable. A false result means "not
// provable", not "provably greater": callers must never read false as a
// semantic fact.
func Le(a, b Bound) bool {
	if a.Equal(b) {
		return true
	}
	if a.IsMInf() || b.IsPInf() {
		return true
	}
	if a.IsPInf() || b.IsMInf() {
		return false
	}
	if a.kind == kindMinMax {
		if a.mm == Min {
			if Le(*a.lhs, b) || Le(*a.rhs, b) {
				return true
			}
		} else {
			if Le(*a.lhs, b) && Le(*a.rhs, b) {
				return true
			}
		}
	}
	if b.kind == kindMinMax {
		if b.mm == Min {
			if Le(a, *b.lhs) && Le(a, *b.rhs) {
				return true
			}
		} else {
			if Le(a, *b.lhs) || Le(a, *b.rhs) {
				return true
			}
		}
	}
	if a.kind == kindSymbolic && b.kind == kindSymbolic && a.sym == b.sym {
		if a.sign == b.sign {
			return a.offset.Cmp(b.offset) <= 0
		}
		// -s + o1 ≤ s + o2 when s ≥ 0 and o1 ≤ o2
		if a.sign < 0 && a.sym.Unsigned && a.offset.Cmp(b.offset) <= 0 {
			return true
		}
	}
	return bigUpper(a).Cmp(bigLower(b)) <= 0
}

// Lt reports whether a < b is provable.
func Lt(a, b Bound) bool {
	if a.Equal(b) {
		return false
	}
	if allIntegral(a) && allIntegral(b) {
		return Le(a.addConst(NewZ(1)), b)
	}
	return bigUpper(a).Cmp(bigLower(b)) < 0
}

// Gt reports whether a > b is provable.
func Gt(a, b Bound) bool {
	return Lt(b, a)
}

// Eq reports whether a = b is provable.
func Eq(a, b Bound) bool {
	return Le(a, b) && Le(b, a)
}

func allIntegral(b Bound) bool {
	switch b.kind {
	case kindSymbolic:
		return !b.sym.NonInt
	case kindMinMax:
		return allIntegral(*b.lhs) && allIntegral(*b.rhs)
	default:
		return true
	}
}

// addConst adds a finite constant to b. Exact for every shape.
func (b Bound) addConst(c Z) Bound {
	switch b.kind {
	case kindMInf, kindPInf:
		return b
	case kindConst, kindSymbolic:
		nb := b
		nb.offset = b.offset.Add(c)
		return nb
	case kindMinMax:
		return minMaxOf(b.mm, b.lhs.addConst(c), b.rhs.addConst(c))
	default:
		panic("unreachable")
	}
}

// Cmp is the result of a three-valued comparison.
type Cmp uint8

const (
	CmpUnknown Cmp = iota
	CmpEqual
	CmpNotEqual
)

func (c Cmp) String() string {
	switch c {
	case CmpEqual:
		return "="
	case CmpNotEqual:
		return "≠"
	default:
		return "?"
	}
}

// XCompare distinguishes provable equality, provable disequality, and
// ignorance. Use it where incomparability must not be conflated with
// disequality.
func XCompare(a, b Bound) Cmp {
	if a.Equal(b) {
		return CmpEqual
	}
	if Lt(a, b) || Lt(b, a) {
		return CmpNotEqual
	}
	return CmpUnknown
}

// UnderMin returns a bound that is never larger than min(a, b). When the
// operands are comparable the result is exact. Incomparable operands that
// are both free of min/max nodes combine into the exact MinMax composition;
// otherwise the result falls back to the concrete parts, or to -∞ when even
// those are unknown.
func UnderMin(a, b Bound) Bound {
	if Le(a, b) {
		return a
	}
	if Le(b, a) {
		return b
	}
	if a.kind != kindMinMax && b.kind != kindMinMax {
		return minMaxOf(Min, a, b)
	}
	return OfZ(MinZ(bigLower(a), bigLower(b)))
}

// OverMin returns a bound that is never smaller than min(a, b). Either
// operand over-approximates the min, so for incomparable nested operands
// the one with the smaller concrete upper part is kept.
func OverMin(a, b Bound) Bound {
	if Le(a, b) {
		return a
	}
	if Le(b, a) {
		return b
	}
	if a.kind != kindMinMax && b.kind != kindMinMax {
		return minMaxOf(Min, a, b)
	}
	if bigUpper(a).Cmp(bigUpper(b)) <= 0 {
		return a
	}
	return b
}

// UnderMax returns a bound that is never larger than max(a, b). Either
// operand under-approximates the max.
func UnderMax(a, b Bound) Bound {
	if Le(a, b) {
		return b
	}
	if Le(b, a) {
		return a
	}
	if a.kind != kindMinMax && b.kind != kindMinMax {
		return minMaxOf(Max, a, b)
	}
	if bigLower(a).Cmp(bigLower(b)) >= 0 {
		return a
	}
	return b
}

// OverMax returns a bound that is never smaller than max(a, b), widening
// towards ∞ when the operands are incomparable and too complex to compose.
func OverMax(a, b Bound) Bound {
	if Le(a, b) {
		return b
	}
	if Le(b, a) {
		return a
	}
	if a.kind != kindMinMax && b.kind != kindMinMax {
		return minMaxOf(Max, a, b)
	}
	return OfZ(MaxZ(bigUpper(a), bigUpper(b)))
}
