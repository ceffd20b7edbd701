package bounds

import (
	"testing"

	"github.com/tetramorph/overrun/symb"
)

// rangeEval evaluates every queried symbol to the same [lb, ub] range.
func rangeEval(lb, ub Bound) Eval {
	return func(_ symb.Symbol, end BoundEnd) Lifted {
		if end == LowerEnd {
			return NonBottom(lb)
		}
		return NonBottom(ub)
	}
}

func TestSubst(t *testing.T) {
	x := symX()
	eval := rangeEval(Of(2), Of(10))

	tests := []struct {
		name string
		b    Bound
		got  Lifted
		want Bound
	}{
		{"constant unchanged", Of(7), SubstUB(Of(7), eval), Of(7)},
		{"∞ unchanged", PInf(), SubstUB(PInf(), eval), PInf()},
		{"upper picks the upper end", x, SubstUB(x, eval), Of(10)},
		{"lower picks the lower end", x, SubstLB(x, eval), Of(2)},
		{"offset carried through", x.addConst(NewZ(3)), SubstUB(x.addConst(NewZ(3)), eval), Of(13)},
		{"negation swaps the ends", x.Neg(), SubstUB(x.Neg(), eval), Of(-2)},
		{"negated lower uses the upper end", x.Neg(), SubstLB(x.Neg(), eval), Of(-10)},
		{"min substitutes branchwise", MinOf(Of(5), x), SubstLB(MinOf(Of(5), x), eval), Of(2)},
		{"min upper stays below the branch", MinOf(Of(5), x), SubstUB(MinOf(Of(5), x), eval), Of(5)},
	}
	for _, tt := range tests {
		got, ok := tt.got.Bound()
		if !ok {
			t.Errorf("%s: substitution of %s hit bottom", tt.name, tt.b)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("%s: substituting %s = %s, want %s", tt.name, tt.b, got, tt.want)
		}
	}
}

func TestSubstUnknownSymbol(t *testing.T) {
	x := symX()
	eval := rangeEval(MInf(), PInf())
	if got, ok := SubstUB(x, eval).Bound(); !ok || !got.IsPInf() {
		t.Errorf("SubstUB over an unknown range = %s, %t", got, ok)
	}
	if got, ok := SubstLB(x, eval).Bound(); !ok || !got.IsMInf() {
		t.Errorf("SubstLB over an unknown range = %s, %t", got, ok)
	}
}

func TestSubstEmptyRangeIsBottom(t *testing.T) {
	// A symbol whose evaluated lower end exceeds its upper end has no
	// inhabitant; the whole substitution is infeasible.
	x := symX()
	eval := rangeEval(Of(5), Of(3))
	if got := SubstUB(x, eval); !got.IsBottom() {
		t.Errorf("substitution over an empty range = %s, want ⊥", got)
	}
	if got := SubstUB(MinOf(Of(100), x), eval); !got.IsBottom() {
		t.Errorf("bottom did not propagate out of a min branch: %s", got)
	}
}

func TestSubstBottomEvalPropagates(t *testing.T) {
	x := symX()
	eval := func(_ symb.Symbol, _ BoundEnd) Lifted { return Bottom() }
	if got := SubstLB(MaxOf(Of(1), x), eval); !got.IsBottom() {
		t.Errorf("bottom evaluation did not propagate: %s", got)
	}
	if got, ok := SubstLB(Of(1), eval).Bound(); !ok || !got.Equal(Of(1)) {
		t.Errorf("constant touched the evaluator: %s, %t", got, ok)
	}
}

func TestSubstPerSymbolEnds(t *testing.T) {
	// Distinct symbols resolve to distinct ranges.
	x, n := symX(), symN()
	eval := func(s symb.Symbol, end BoundEnd) Lifted {
		var lb, ub Bound
		if s.Path.Kind == symb.Length {
			lb, ub = Of(0), Of(4)
		} else {
			lb, ub = Of(1), Of(2)
		}
		if end == LowerEnd {
			return NonBottom(lb)
		}
		return NonBottom(ub)
	}
	m := MaxOf(x, n)
	if got, ok := SubstUB(m, eval).Bound(); !ok || !got.Equal(Of(4)) {
		t.Errorf("SubstUB(%s) = %s, %t, want 4", m, got, ok)
	}
	if got, ok := SubstLB(m, eval).Bound(); !ok || !got.Equal(Of(1)) {
		t.Errorf("SubstLB(%s) = %s, %t, want 1", m, got, ok)
	}
}

func TestLiftedString(t *testing.T) {
	if got := Bottom().String(); got != "⊥" {
		t.Errorf("Bottom().String() = %q", got)
	}
	if got := NonBottom(Of(3)).String(); got != "3" {
		t.Errorf("NonBottom(3).String() = %q", got)
	}
}
