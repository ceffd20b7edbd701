package loc

import "testing"

func TestLocString(t *testing.T) {
	if got := L("a.c", 12).String(); got != "a.c:12" {
		t.Errorf("String() = %q", got)
	}
	if got := (Loc{}).String(); got != "<unknown>" {
		t.Errorf("zero Loc String() = %q", got)
	}
}

func TestLocCompare(t *testing.T) {
	ordered := []Loc{L("a.c", 1), L("a.c", 2), L("b.c", 1)}
	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("Compare(%s, %s) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestStepString(t *testing.T) {
	s := Step{Loc: L("a.c", 3), Msg: "bound of the loop here"}
	if got := s.String(); got != "a.c:3: bound of the loop here" {
		t.Errorf("String() = %q", got)
	}
}
