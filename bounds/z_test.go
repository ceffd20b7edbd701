package bounds

import (
	"math/big"
	"testing"
)

func TestZArithmetic(t *testing.T) {
	tests := []struct {
		a, b Z
		add  Z
		mul  Z
	}{
		{NewZ(2), NewZ(3), NewZ(5), NewZ(6)},
		{NewZ(-2), NewZ(3), NewZ(1), NewZ(-6)},
		{NewZ(0), PInfinity, PInfinity, NewZ(0)},
		{PInfinity, NewZ(3), PInfinity, PInfinity},
		{NInfinity, NewZ(3), NInfinity, NInfinity},
		{NInfinity, NewZ(-3), NInfinity, PInfinity},
		{PInfinity, PInfinity, PInfinity, PInfinity},
	}
	for _, tt := range tests {
		if got := tt.a.Add(tt.b); got.Cmp(tt.add) != 0 {
			t.Errorf("%s + %s = %s, want %s", tt.a, tt.b, got, tt.add)
		}
		if got := tt.a.Mul(tt.b); got.Cmp(tt.mul) != 0 {
			t.Errorf("%s * %s = %s, want %s", tt.a, tt.b, got, tt.mul)
		}
	}
}

func TestZAddOppositeInfinitiesPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("-∞ + ∞ did not panic")
		}
	}()
	NInfinity.Add(PInfinity)
}

func TestZDivRounding(t *testing.T) {
	tests := []struct {
		n, d  int64
		floor int64
		ceil  int64
	}{
		{7, 2, 3, 4},
		{-7, 2, -4, -3},
		{7, -2, -4, -3},
		{-7, -2, 3, 4},
		{6, 3, 2, 2},
		{0, 5, 0, 0},
	}
	for _, tt := range tests {
		n, d := NewZ(tt.n), NewZ(tt.d)
		if got := n.DivFloor(d); got.Cmp(NewZ(tt.floor)) != 0 {
			t.Errorf("floor(%d / %d) = %s, want %d", tt.n, tt.d, got, tt.floor)
		}
		if got := n.DivCeil(d); got.Cmp(NewZ(tt.ceil)) != 0 {
			t.Errorf("ceil(%d / %d) = %s, want %d", tt.n, tt.d, got, tt.ceil)
		}
	}
}

func TestZDivExact(t *testing.T) {
	if q, ok := NewZ(6).DivExact(NewZ(3)); !ok || q.Cmp(NewZ(2)) != 0 {
		t.Errorf("6 / 3 = %s, %t", q, ok)
	}
	if _, ok := NewZ(7).DivExact(NewZ(3)); ok {
		t.Error("7 / 3 reported exact")
	}
}

func TestZCmp(t *testing.T) {
	ordered := []Z{NInfinity, NewZ(-10), NewZ(0), NewZ(3), PInfinity}
	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Cmp(b); got != want {
				t.Errorf("Cmp(%s, %s) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestZBigRoundTrip(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 100)
	z := NewBigZ(n)
	if z.Big().Cmp(n) != 0 {
		t.Errorf("Big() = %s, want %s", z.Big(), n)
	}
	if _, ok := z.Int64(); ok {
		t.Error("2^100 fits in int64")
	}
}

func TestMinMaxZ(t *testing.T) {
	if got := MinZ(NewZ(3), NInfinity, NewZ(-1)); got.Cmp(NInfinity) != 0 {
		t.Errorf("MinZ = %s, want -∞", got)
	}
	if got := MaxZ(NewZ(3), PInfinity, NewZ(-1)); got.Cmp(PInfinity) != 0 {
		t.Errorf("MaxZ = %s, want ∞", got)
	}
}
