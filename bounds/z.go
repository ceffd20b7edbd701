package bounds

import (
	"fmt"
	"math/big"
)

// Z is an integer extended with the two infinities. Finite values are
// arbitrary precision. The zero value of Z is the finite integer 0.
type Z struct {
	infinity int8
	integer  *big.Int
}

var (
	NInfinity = Z{infinity: -1}
	PInfinity = Z{infinity: 1}
)

func NewZ(n int64) Z {
	return NewBigZ(big.NewInt(n))
}

func NewBigZ(n *big.Int) Z {
	return Z{integer: n}
}

func (z Z) Infinite() bool {
	return z.infinity != 0
}

func (z Z) IsZero() bool {
	return z.infinity == 0 && z.big().Sign() == 0
}

func (z Z) big() *big.Int {
	if z.integer == nil {
		return new(big.Int)
	}
	return z.integer
}

// Big returns the finite value of z. It panics on infinities.
func (z Z) Big() *big.Int {
	if z.Infinite() {
		panic(fmt.Sprintf("%s is not finite", z))
	}
	return new(big.Int).Set(z.big())
}

// Int64 returns the finite value of z if it fits in an int64.
func (z Z) Int64() (int64, bool) {
	if z.Infinite() || !z.big().IsInt64() {
		return 0, false
	}
	return z.big().Int64(), true
}

// Add returns z + o. -∞ + ∞ is not defined and panics; the algebra never
// adds opposite infinities.
func (z Z) Add(o Z) Z {
	if z.Infinite() || o.Infinite() {
		if z.infinity*o.infinity == -1 {
			panic(fmt.Sprintf("%s + %s is not defined", z, o))
		}
		if z.Infinite() {
			return Z{infinity: z.infinity}
		}
		return Z{infinity: o.infinity}
	}
	return NewBigZ(new(big.Int).Add(z.big(), o.big()))
}

func (z Z) Sub(o Z) Z {
	return z.Add(o.Negate())
}

func (z Z) Mul(o Z) Z {
	if z.IsZero() || o.IsZero() {
		return NewBigZ(new(big.Int))
	}
	if z.Infinite() || o.Infinite() {
		return Z{infinity: int8(z.Sign() * o.Sign())}
	}
	return NewBigZ(new(big.Int).Mul(z.big(), o.big()))
}

func (z Z) Negate() Z {
	if z.Infinite() {
		return Z{infinity: -z.infinity}
	}
	return NewBigZ(new(big.Int).Neg(z.big()))
}

// DivFloor returns z / o rounded towards -∞. o must be a nonzero finite
// integer.
func (z Z) DivFloor(o Z) Z {
	if o.Infinite() || o.IsZero() {
		panic(fmt.Sprintf("division by %s", o))
	}
	if z.Infinite() {
		return Z{infinity: z.infinity * o.infinitySign()}
	}
	q, m := new(big.Int), new(big.Int)
	q.QuoRem(z.big(), o.big(), m)
	if m.Sign() != 0 && (m.Sign() < 0) != (o.big().Sign() < 0) {
		q.Sub(q, big.NewInt(1))
	}
	return NewBigZ(q)
}

// DivCeil returns z / o rounded towards ∞. o must be a nonzero finite
// integer.
func (z Z) DivCeil(o Z) Z {
	return z.Negate().DivFloor(o).Negate()
}

// DivExact returns z / o if the division leaves no remainder.
func (z Z) DivExact(o Z) (Z, bool) {
	if o.Infinite() || o.IsZero() {
		panic(fmt.Sprintf("division by %s", o))
	}
	if z.Infinite() {
		return Z{infinity: z.infinity * o.infinitySign()}, true
	}
	q, m := new(big.Int), new(big.Int)
	q.QuoRem(z.big(), o.big(), m)
	if m.Sign() != 0 {
		return Z{}, false
	}
	return NewBigZ(q), true
}

func (z Z) infinitySign() int8 {
	if z.Sign() < 0 {
		return -1
	}
	return 1
}

func (z Z) Sign() int {
	if z.Infinite() {
		return int(z.infinity)
	}
	return z.big().Sign()
}

func (z Z) Cmp(o Z) int {
	if z.infinity != 0 || o.infinity != 0 {
		switch {
		case z.infinity == o.infinity:
			return 0
		case z.infinity < o.infinity:
			return -1
		default:
			return 1
		}
	}
	return z.big().Cmp(o.big())
}

func (z Z) String() string {
	switch z.infinity {
	case -1:
		return "-∞"
	case 1:
		return "∞"
	default:
		return z.big().String()
	}
}

func MinZ(zs ...Z) Z {
	if len(zs) == 0 {
		panic("MinZ called with no arguments")
	}
	ret := zs[0]
	for _, z := range zs[1:] {
		if z.Cmp(ret) < 0 {
			ret = z
		}
	}
	return ret
}

func MaxZ(zs ...Z) Z {
	if len(zs) == 0 {
		panic("MaxZ called with no arguments")
	}
	ret := zs[0]
	for _, z := range zs[1:] {
		if z.Cmp(ret) > 0 {
			ret = z
		}
	}
	return ret
}
