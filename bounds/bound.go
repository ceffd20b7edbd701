// Package bounds implements the symbolic bound algebra used by the
// buffer-overrun and loop-bound analyses. A bound is an extended integer
// that may contain unresolved symbols: a concrete constant, ±∞, a single
// symbol with unit coefficient plus a constant offset, or the min/max of
// two sub-bounds the analysis cannot order statically.
//
// All operations are pure; no value is ever mutated after construction.
// Imprecision is encoded as values (infinities, missing results, the
// bottom case of Lifted), never as errors.
package bounds

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/tetramorph/overrun/loc"
	"github.com/tetramorph/overrun/symb"
)

type kind uint8

const (
	kindMInf kind = iota
	kindConst
	kindSymbolic
	kindMinMax
	kindPInf
)

// MinMaxKind selects which of the two sub-bounds a MinMax node denotes.
type MinMaxKind uint8

const (
	Min MinMaxKind = iota
	Max
)

func (k MinMaxKind) String() string {
	if k == Min {
		return "min"
	}
	return "max"
}

func (k MinMaxKind) flip() MinMaxKind {
	if k == Min {
		return Max
	}
	return Min
}

// A Bound is one of -∞, ∞, an exact constant, sign·symbol + offset, or
// min/max of two sub-bounds. Bounds are immutable values; operations
// return new bounds.
type Bound struct {
	kind   kind
	offset Z // Const value, or the constant part of a Symbolic term
	sign   int8
	sym    symb.Symbol
	mm     MinMaxKind
	lhs    *Bound
	rhs    *Bound
}

// MInf and PInf are the two absorbing extremes.
func MInf() Bound { return Bound{kind: kindMInf} }
func PInf() Bound { return Bound{kind: kindPInf} }

func Of(n int64) Bound {
	return Bound{kind: kindConst, offset: NewZ(n)}
}

func OfBig(n *big.Int) Bound {
	return Bound{kind: kindConst, offset: NewBigZ(n)}
}

// OfZ lifts an extended integer into a bound.
func OfZ(z Z) Bound {
	switch {
	case z.Cmp(NInfinity) == 0:
		return MInf()
	case z.Cmp(PInfinity) == 0:
		return PInf()
	default:
		return Bound{kind: kindConst, offset: z}
	}
}

func Zero() Bound     { return Of(0) }
func One() Bound      { return Of(1) }
func MinusOne() Bound { return Of(-1) }

// Z255 is the byte maximum, the default upper clamp for char-sized values.
func Z255() Bound { return Of(255) }

// OfSymbol builds the bound +s.
func OfSymbol(s symb.Symbol) Bound {
	return Bound{kind: kindSymbolic, sign: 1, sym: s, offset: NewZ(0)}
}

// OfNormalPath builds a symbolic bound for the plain value of base.
func OfNormalPath(l loc.Loc, base string) Bound {
	return OfSymbol(symb.New(l, symb.NormalPath(base)))
}

// OfOffsetPath builds a symbolic bound for the pointer offset of base.
// isVoid marks offsets through void pointers, which are byte-granular.
func OfOffsetPath(l loc.Loc, base string, isVoid bool) Bound {
	return OfSymbol(symb.New(l, symb.OffsetPath(base, isVoid)))
}

// OfLengthPath builds a symbolic bound for the allocated length of base.
func OfLengthPath(l loc.Loc, base string, isVoid bool) Bound {
	return OfSymbol(symb.New(l, symb.LengthPath(base, isVoid)))
}

// OfModeledPath builds a symbolic bound for the result of the modeled
// function fn called at l.
func OfModeledPath(l loc.Loc, fn string) Bound {
	return OfSymbol(symb.New(l, symb.ModeledPath(fn)))
}

// IsOffsetPathOf reports whether b is exactly a symbolic term denoting the
// offset of path's base.
func (b Bound) IsOffsetPathOf(path symb.Path) bool {
	return b.kind == kindSymbolic && b.sym.Path.Kind == symb.Offset && b.sym.Path.Base == path.Base
}

// IsLengthPathOf reports whether b is exactly a symbolic term denoting the
// length of path's base.
func (b Bound) IsLengthPathOf(path symb.Path) bool {
	return b.kind == kindSymbolic && b.sym.Path.Kind == symb.Length && b.sym.Path.Base == path.Base
}

// MinOf returns the normalized min of two bounds. Degenerate compositions
// never survive construction: identical or comparable operands collapse to
// one of them, and an infinite operand collapses per dominance. Operands of
// a surviving node are ordered canonically so that structural equality can
// stand in for semantic equality of normalized bounds.
func MinOf(a, b Bound) Bound {
	return minMaxOf(Min, a, b)
}

// MaxOf is the max counterpart of MinOf.
func MaxOf(a, b Bound) Bound {
	return minMaxOf(Max, a, b)
}

func minMaxOf(k MinMaxKind, a, b Bound) Bound {
	if a.Equal(b) {
		return a
	}
	switch k {
	case Min:
		if a.IsMInf() || b.IsPInf() {
			return a
		}
		if b.IsMInf() || a.IsPInf() {
			return b
		}
		if Le(a, b) {
			return a
		}
		if Le(b, a) {
			return b
		}
	case Max:
		if a.IsPInf() || b.IsMInf() {
			return a
		}
		if b.IsPInf() || a.IsMInf() {
			return b
		}
		if Le(a, b) {
			return b
		}
		if Le(b, a) {
			return a
		}
	}
	if a.Compare(b) > 0 {
		a, b = b, a
	}
	la, lb := a, b
	return Bound{kind: kindMinMax, mm: k, lhs: &la, rhs: &lb}
}

// Shape predicates.

func (b Bound) IsMInf() bool { return b.kind == kindMInf }
func (b Bound) IsPInf() bool { return b.kind == kindPInf }

func (b Bound) IsInfty() bool {
	return b.kind == kindMInf || b.kind == kindPInf
}

func (b Bound) IsNotInfty() bool {
	return !b.IsInfty()
}

func (b Bound) IsZero() bool {
	return b.kind == kindConst && b.offset.IsZero()
}

// IsSymbolic reports whether b contains at least one symbol.
func (b Bound) IsSymbolic() bool {
	switch b.kind {
	case kindSymbolic:
		return true
	case kindMinMax:
		return b.lhs.IsSymbolic() || b.rhs.IsSymbolic()
	default:
		return false
	}
}

// AsConst returns the exact constant value of b, if it is one.
func (b Bound) AsConst() (Z, bool) {
	if b.kind != kindConst {
		return Z{}, false
	}
	return b.offset, true
}

// AsSymbolic decomposes b when it is a single symbolic term sign·sym +
// offset.
func (b Bound) AsSymbolic() (sign int, s symb.Symbol, offset Z, ok bool) {
	if b.kind != kindSymbolic {
		return 0, symb.Symbol{}, Z{}, false
	}
	return int(b.sign), b.sym, b.offset, true
}

// AsMinMax decomposes b when it is a min/max composition.
func (b Bound) AsMinMax() (k MinMaxKind, lhs, rhs Bound, ok bool) {
	if b.kind != kindMinMax {
		return 0, Bound{}, Bound{}, false
	}
	return b.mm, *b.lhs, *b.rhs, true
}

// Symbols returns all symbols occurring in b, deduplicated, in symbol
// order.
func (b Bound) Symbols() []symb.Symbol {
	set := map[symb.Symbol]struct{}{}
	b.collectSymbols(set)
	syms := make([]symb.Symbol, 0, len(set))
	for s := range set {
		syms = append(syms, s)
	}
	slices.SortFunc(syms, symb.Symbol.Compare)
	return syms
}

func (b Bound) collectSymbols(set map[symb.Symbol]struct{}) {
	switch b.kind {
	case kindSymbolic:
		set[b.sym] = struct{}{}
	case kindMinMax:
		b.lhs.collectSymbols(set)
		b.rhs.collectSymbols(set)
	}
}

// HasVoidPtrSymb reports whether any contained symbol goes through a
// void-typed pointer.
func (b Bound) HasVoidPtrSymb() bool {
	switch b.kind {
	case kindSymbolic:
		return b.sym.Path.IsVoid
	case kindMinMax:
		return b.lhs.HasVoidPtrSymb() || b.rhs.HasVoidPtrSymb()
	default:
		return false
	}
}

// ExistsStr reports whether pred matches text embedded in any symbol path
// reachable from b.
func (b Bound) ExistsStr(pred func(string) bool) bool {
	switch b.kind {
	case kindSymbolic:
		return b.sym.MatchesStr(pred)
	case kindMinMax:
		return b.lhs.ExistsStr(pred) || b.rhs.ExistsStr(pred)
	default:
		return false
	}
}

// AreSimilar reports whether two bounds have the same shape: the same
// symbol with any constant offsets, or both plain constants. Joining or
// widening similar bounds is likely to converge without resorting to
// infinity.
func AreSimilar(a, b Bound) bool {
	switch {
	case a.kind != b.kind:
		return false
	case a.kind == kindConst:
		return true
	case a.kind == kindSymbolic:
		return a.sign == b.sign && a.sym == b.sym
	case a.kind == kindMinMax:
		return a.mm == b.mm && AreSimilar(*a.lhs, *b.lhs) && AreSimilar(*a.rhs, *b.rhs)
	default:
		return true
	}
}

// Compare is a total structural order over normalized bounds. It is not a
// semantic order; see Le for that.
func (b Bound) Compare(o Bound) int {
	if b.kind != o.kind {
		if b.kind < o.kind {
			return -1
		}
		return 1
	}
	switch b.kind {
	case kindMInf, kindPInf:
		return 0
	case kindConst:
		return b.offset.Cmp(o.offset)
	case kindSymbolic:
		if b.sign != o.sign {
			if b.sign < o.sign {
				return -1
			}
			return 1
		}
		if c := b.sym.Compare(o.sym); c != 0 {
			return c
		}
		return b.offset.Cmp(o.offset)
	case kindMinMax:
		if b.mm != o.mm {
			if b.mm < o.mm {
				return -1
			}
			return 1
		}
		if c := b.lhs.Compare(*o.lhs); c != 0 {
			return c
		}
		return b.rhs.Compare(*o.rhs)
	default:
		panic(fmt.Sprintf("unhandled bound kind %d", b.kind))
	}
}

// Equal is structural equality of normalized bounds.
func (b Bound) Equal(o Bound) bool {
	return b.Compare(o) == 0
}

func (b Bound) String() string {
	switch b.kind {
	case kindMInf:
		return "-∞"
	case kindPInf:
		return "∞"
	case kindConst:
		return b.offset.String()
	case kindSymbolic:
		s := b.sym.String()
		if b.sign < 0 {
			s = "-" + s
		}
		switch b.offset.Sign() {
		case 0:
			return s
		case 1:
			return fmt.Sprintf("%s + %s", s, b.offset)
		default:
			return fmt.Sprintf("%s - %s", s, b.offset.Negate())
		}
	case kindMinMax:
		return fmt.Sprintf("%s(%s, %s)", b.mm, b.lhs, b.rhs)
	default:
		panic(fmt.Sprintf("unhandled bound kind %d", b.kind))
	}
}
