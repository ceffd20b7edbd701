package bounds

import "fmt"

type direction uint8

const (
	dirLower direction = iota
	dirUpper
)

// PlusL computes an addition contributing to a result's lower bound. weak
// marks additions performed at join/widen points of the fixpoint, where a
// cheaper, monotone approximation is preferred over distributing into
// min/max compositions. With weak=false the result is exact whenever both
// operands are exact.
func PlusL(weak bool, x, y Bound) Bound {
	return plus(dirLower, weak, x, y)
}

// PlusU is the upper-bound counterpart of PlusL.
func PlusU(weak bool, x, y Bound) Bound {
	return plus(dirUpper, weak, x, y)
}

func plus(d direction, weak bool, x, y Bound) Bound {
	if x.IsZero() {
		return y
	}
	if y.IsZero() {
		return x
	}
	if d == dirLower {
		if x.IsMInf() || y.IsMInf() {
			return MInf()
		}
		if x.IsPInf() || y.IsPInf() {
			return PInf()
		}
	} else {
		if x.IsPInf() || y.IsPInf() {
			return PInf()
		}
		if x.IsMInf() || y.IsMInf() {
			return MInf()
		}
	}
	if x.kind == kindConst {
		return y.addConst(x.offset)
	}
	if y.kind == kindConst {
		return x.addConst(y.offset)
	}
	if x.kind == kindSymbolic && y.kind == kindSymbolic &&
		x.sym == y.sym && x.sign == -y.sign {
		return OfZ(x.offset.Add(y.offset))
	}
	if !weak {
		// Distribute into a min/max composition; exact modulo the
		// per-branch recursion, which stays in the same direction.
		if x.kind == kindMinMax {
			return minMaxOf(x.mm, plus(d, weak, *x.lhs, y), plus(d, weak, *x.rhs, y))
		}
		if y.kind == kindMinMax {
			return minMaxOf(y.mm, plus(d, weak, x, *y.lhs), plus(d, weak, x, *y.rhs))
		}
	}
	// Two symbol-carrying operands that cannot be reassociated: keep one
	// operand and fold the other down to its concrete part.
	if d == dirLower {
		if l := bigLower(y); !l.Infinite() {
			return x.addConst(l)
		}
		if l := bigLower(x); !l.Infinite() {
			return y.addConst(l)
		}
		return MInf()
	}
	if u := bigUpper(y); !u.Infinite() {
		return x.addConst(u)
	}
	if u := bigUpper(x); !u.Infinite() {
		return y.addConst(u)
	}
	return PInf()
}

// Neg returns -b. Negation flips min into max and the sign of any symbolic
// term; it is exact for every shape.
func (b Bound) Neg() Bound {
	switch b.kind {
	case kindMInf:
		return PInf()
	case kindPInf:
		return MInf()
	case kindConst:
		return OfZ(b.offset.Negate())
	case kindSymbolic:
		nb := b
		nb.sign = -b.sign
		nb.offset = b.offset.Negate()
		return nb
	case kindMinMax:
		return minMaxOf(b.mm.flip(), b.lhs.Neg(), b.rhs.Neg())
	default:
		panic(fmt.Sprintf("unhandled bound kind %d", b.kind))
	}
}

// MultConstL multiplies b by a nonzero concrete k, rounding conservatively
// for a lower-bound result. Only ±1 preserve symbolic terms; any other
// multiplier folds the bound to its concrete part first.
func MultConstL(k Z, b Bound) Bound {
	return multConst(dirLower, k, b)
}

// MultConstU is the upper-bound counterpart of MultConstL.
func MultConstU(k Z, b Bound) Bound {
	return multConst(dirUpper, k, b)
}

func multConst(d direction, k Z, b Bound) Bound {
	if k.Infinite() || k.IsZero() {
		panic(fmt.Sprintf("multiplication by %s", k))
	}
	if k.Cmp(NewZ(1)) == 0 {
		return b
	}
	if k.Cmp(NewZ(-1)) == 0 {
		return b.Neg()
	}
	switch b.kind {
	case kindMInf, kindPInf:
		if k.Sign() < 0 {
			return b.Neg()
		}
		return b
	case kindConst:
		return OfZ(b.offset.Mul(k))
	default:
		// k·(s + o) has no representation with a unit coefficient; fold to
		// the concrete end that keeps the result sound for this direction.
		var c Z
		if (d == dirLower) == (k.Sign() > 0) {
			c = bigLower(b)
		} else {
			c = bigUpper(b)
		}
		return OfZ(c.Mul(k))
	}
}

// DivConstL divides b by a nonzero concrete k, rounding towards -∞ where
// rounding is needed. ok is false when the quotient has no sound
// representation in the algebra; callers must fall back to an unknown
// value, never to zero.
func DivConstL(b Bound, k Z) (Bound, bool) {
	return divConst(dirLower, b, k)
}

// DivConstU is the upper-bound counterpart of DivConstL, rounding towards ∞.
func DivConstU(b Bound, k Z) (Bound, bool) {
	return divConst(dirUpper, b, k)
}

func divConst(d direction, b Bound, k Z) (Bound, bool) {
	if k.Infinite() || k.IsZero() {
		panic(fmt.Sprintf("division by %s", k))
	}
	if k.Cmp(NewZ(1)) == 0 {
		return b, true
	}
	if k.Cmp(NewZ(-1)) == 0 {
		return b.Neg(), true
	}
	switch b.kind {
	case kindMInf, kindPInf:
		if k.Sign() < 0 {
			return b.Neg(), true
		}
		return b, true
	case kindConst:
		if d == dirLower {
			return OfZ(b.offset.DivFloor(k)), true
		}
		return OfZ(b.offset.DivCeil(k)), true
	case kindSymbolic:
		return Bound{}, false
	case kindMinMax:
		nd := d
		mm := b.mm
		if k.Sign() < 0 {
			mm = mm.flip()
		}
		l, ok := divConst(nd, *b.lhs, k)
		if !ok {
			return Bound{}, false
		}
		r, ok := divConst(nd, *b.rhs, k)
		if !ok {
			return Bound{}, false
		}
		return minMaxOf(mm, l, r), true
	default:
		panic("unreachable")
	}
}
