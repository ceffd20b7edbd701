package bounds

import "testing"

func TestLe(t *testing.T) {
	x, n := symX(), symN()

	tests := []struct {
		name string
		a, b Bound
		want bool
	}{
		{"constants ordered", Of(3), Of(5), true},
		{"constants reversed", Of(5), Of(3), false},
		{"-∞ below everything", MInf(), x, true},
		{"everything below ∞", x, PInf(), true},
		{"∞ not below a constant", PInf(), Of(100), false},
		{"reflexive on symbols", x, x, true},
		{"same symbol, larger offset", x, x.addConst(NewZ(1)), true},
		{"same symbol, smaller offset", x.addConst(NewZ(1)), x, false},
		{"-n ≤ n for unsigned n", n.Neg(), n, true},
		{"-x vs x for signed x", x.Neg(), x, false},
		{"zero below unsigned symbol", Zero(), n, true},
		{"constant vs signed symbol unknown", x, Of(5), false},
		{"min below its branch", MinOf(Of(3), x), Of(3), true},
		{"below max via a branch", Zero(), MaxOf(Of(3), x), true},
		{"below min needs both branches", Of(4), MinOf(Of(3), x), false},
		{"unsigned symbol below its length upper end", n.Neg().addConst(NewZ(2)), Of(2), true},
	}
	for _, tt := range tests {
		if got := Le(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Le(%s, %s) = %t, want %t", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLt(t *testing.T) {
	x := symX()

	tests := []struct {
		name string
		a, b Bound
		want bool
	}{
		{"constants", Of(3), Of(4), true},
		{"equal constants", Of(3), Of(3), false},
		{"finite below ∞", Of(5), PInf(), true},
		{"-∞ below finite", MInf(), Of(5), true},
		{"irreflexive", x, x, false},
		{"same symbol, offset one apart", x, x.addConst(NewZ(1)), true},
		{"same symbol, equal offsets", x.addConst(NewZ(2)), x.addConst(NewZ(2)), false},
	}
	for _, tt := range tests {
		if got := Lt(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Lt(%s, %s) = %t, want %t", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestLtNonIntegral(t *testing.T) {
	// A non-integral symbol forbids the a+1 ≤ b strengthening.
	s := symX()
	s.sym.NonInt = true
	if Lt(s, s.addConst(NewZ(1))) {
		t.Error("strict order strengthened through a non-integral symbol")
	}
}

func TestEq(t *testing.T) {
	x := symX()
	if !Eq(x, x) {
		t.Error("Eq not reflexive")
	}
	if Eq(x, x.addConst(NewZ(1))) {
		t.Error("shifted symbol provably equal")
	}
	if !Eq(Of(3), Of(3)) {
		t.Error("equal constants not provably equal")
	}
}

func TestOrderAntisymmetry(t *testing.T) {
	// le a b and le b a only hold together for structurally equal
	// normalized bounds.
	x, n := symX(), symN()
	pairs := []struct{ a, b Bound }{
		{Of(3), Of(3)},
		{x, x},
		{MinOf(x, n), MinOf(n, x)},
		{MaxOf(Zero(), n), n},
	}
	for _, p := range pairs {
		if !Le(p.a, p.b) || !Le(p.b, p.a) {
			t.Errorf("Le(%s, %s) not symmetric", p.a, p.b)
			continue
		}
		if !p.a.Equal(p.b) {
			t.Errorf("%s and %s mutually ≤ but not structurally equal", p.a, p.b)
		}
	}
}

func TestXCompare(t *testing.T) {
	x := symX()

	tests := []struct {
		name string
		a, b Bound
		want Cmp
	}{
		{"identical", x, x, CmpEqual},
		{"distinct constants", Of(1), Of(2), CmpNotEqual},
		{"shifted symbol", x, x.addConst(NewZ(1)), CmpNotEqual},
		{"incomparable", x, Of(5), CmpUnknown},
		{"finite vs ∞", Of(5), PInf(), CmpNotEqual},
	}
	for _, tt := range tests {
		if got := XCompare(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: XCompare(%s, %s) = %s, want %s", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestUnderOverMinMax(t *testing.T) {
	x, n := symX(), symN()

	// Comparable operands are exact for all four variants.
	for _, tt := range []struct {
		got, want Bound
	}{
		{UnderMin(Of(3), Of(5)), Of(3)},
		{OverMin(Of(3), Of(5)), Of(3)},
		{UnderMax(Of(3), Of(5)), Of(5)},
		{OverMax(Of(3), Of(5)), Of(5)},
	} {
		if !tt.got.Equal(tt.want) {
			t.Errorf("got %s, want %s", tt.got, tt.want)
		}
	}

	// Incomparable simple operands compose into the exact node.
	if got := UnderMin(x, n); !got.Equal(MinOf(x, n)) {
		t.Errorf("UnderMin(%s, %s) = %s", x, n, got)
	}
	if got := OverMax(x, n); !got.Equal(MaxOf(x, n)) {
		t.Errorf("OverMax(%s, %s) = %s", x, n, got)
	}

	// A nested incomparable operand forces the concrete fallback.
	nested := MinOf(Of(3), x)
	if got := OverMax(nested, n); !got.IsPInf() {
		t.Errorf("OverMax(%s, %s) = %s, want ∞", nested, n, got)
	}
	if got := UnderMin(nested, n); !got.Equal(MInf()) {
		t.Errorf("UnderMin(%s, %s) = %s, want -∞", nested, n, got)
	}
	// OverMin keeps the operand with the smaller concrete upper part.
	if got := OverMin(nested, n); !got.Equal(nested) {
		t.Errorf("OverMin(%s, %s) = %s, want %s", nested, n, got, nested)
	}
	// UnderMax keeps the operand with the larger concrete lower part.
	if got := UnderMax(nested, n); !got.Equal(n) {
		t.Errorf("UnderMax(%s, %s) = %s, want %s", nested, n, got, n)
	}
}
