package bounds

import "fmt"

// WidenL widens a value acting as a lower bound across fixpoint
// iterations: once the bound stops being stable it jumps to -∞ rather than
// descend forever.
func WidenL(prev, next Bound) Bound {
	if prev.IsPInf() || next.IsPInf() {
		panic(fmt.Sprintf("widening the lower bound with ∞: %s, %s", prev, next))
	}
	if Le(prev, next) {
		return prev
	}
	return MInf()
}

// WidenU widens a value acting as an upper bound, jumping to ∞ when the
// value keeps growing.
func WidenU(prev, next Bound) Bound {
	if prev.IsMInf() || next.IsMInf() {
		panic(fmt.Sprintf("widening the upper bound with -∞: %s, %s", prev, next))
	}
	if Le(next, prev) {
		return prev
	}
	return PInf()
}

// WidenLThresholds is WidenL with a precision-preserving landing spot: the
// largest threshold still below the new value is used instead of -∞.
// thresholds must be in ascending order.
func WidenLThresholds(thresholds []Z, prev, next Bound) Bound {
	if prev.IsPInf() || next.IsPInf() {
		panic(fmt.Sprintf("widening the lower bound with ∞: %s, %s", prev, next))
	}
	if Le(prev, next) {
		return prev
	}
	for i := len(thresholds) - 1; i >= 0; i-- {
		t := OfZ(thresholds[i])
		if Le(t, next) {
			return t
		}
	}
	return MInf()
}

// WidenUThresholds is WidenU snapping to the smallest threshold that still
// dominates the new value, falling back to ∞ when no threshold suffices.
// thresholds must be in ascending order.
func WidenUThresholds(thresholds []Z, prev, next Bound) Bound {
	if prev.IsMInf() || next.IsMInf() {
		panic(fmt.Sprintf("widening the upper bound with -∞: %s, %s", prev, next))
	}
	if Le(next, prev) {
		return prev
	}
	for _, t := range thresholds {
		tb := OfZ(t)
		if Le(next, tb) {
			return tb
		}
	}
	return PInf()
}
