package bounds

import "github.com/tetramorph/overrun/symb"

// renormalize rebuilds every min/max node through the constructors so that
// collapses that only became provable after an operation (substitution,
// masking) are applied.
func renormalize(b Bound) Bound {
	if b.kind != kindMinMax {
		return b
	}
	return minMaxOf(b.mm, renormalize(*b.lhs), renormalize(*b.rhs))
}

// SimplifyBoundEndsFromPaths rewrites compositions that are provably
// pinned to a memory path's canonical endpoints. A pointer's offset into
// its buffer lies between the buffer's start (zero) and its length, so
//
//	max(0, x.offset)        becomes x.offset
//	min(x.offset, x.length) becomes x.offset
//	max(x.offset, x.length) becomes x.length
//
// The rewrite never changes the denoted value, only its shape.
func SimplifyBoundEndsFromPaths(b Bound) Bound {
	if b.kind != kindMinMax {
		return b
	}
	l := SimplifyBoundEndsFromPaths(*b.lhs)
	r := SimplifyBoundEndsFromPaths(*b.rhs)
	if s, ok := pathEndpoint(b.mm, l, r); ok {
		return s
	}
	return minMaxOf(b.mm, l, r)
}

func pathEndpoint(k MinMaxKind, l, r Bound) (Bound, bool) {
	if k == Max {
		if l.IsZero() && isBarePath(r, symb.Offset, symb.Length) {
			return r, true
		}
		if r.IsZero() && isBarePath(l, symb.Offset, symb.Length) {
			return l, true
		}
	}
	if isBarePath(l, symb.Offset) && isBarePath(r, symb.Length) && l.sym.Path.Base == r.sym.Path.Base {
		if k == Min {
			return l, true
		}
		return r, true
	}
	if isBarePath(l, symb.Length) && isBarePath(r, symb.Offset) && l.sym.Path.Base == r.sym.Path.Base {
		if k == Min {
			return r, true
		}
		return l, true
	}
	return Bound{}, false
}

// isBarePath reports whether b is +symbol with a zero offset and one of
// the given path kinds.
func isBarePath(b Bound, kinds ...symb.PathKind) bool {
	if b.kind != kindSymbolic || b.sign < 0 || !b.offset.IsZero() {
		return false
	}
	for _, k := range kinds {
		if b.sym.Path.Kind == k {
			return true
		}
	}
	return false
}

// SimplifyMinOne collapses min(b, 1) to 1 when b is provably ≥ 1, and the
// symmetric max case, by renormalizing the whole composition. Purely a
// precision-preserving rewrite.
func SimplifyMinOne(b Bound) Bound {
	return renormalize(b)
}

// SameOneSymbol returns the common path when both bounds reduce to the
// identical single symbol, ignoring constant offsets.
func SameOneSymbol(a, b Bound) (symb.Path, bool) {
	if a.kind != kindSymbolic || b.kind != kindSymbolic {
		return symb.Path{}, false
	}
	if a.sign > 0 && b.sign > 0 && a.sym == b.sym {
		return a.sym.Path, true
	}
	return symb.Path{}, false
}
