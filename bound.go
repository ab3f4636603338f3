package multiplicity

import (
	"math/big"
)

// Bound is an upper occurrence bound: either a finite non-negative integer or unbounded.
// The zero value is the finite bound 0.
type Bound struct {
	n         *big.Int
	unbounded bool
}

// Unbounded is the bound with no finite upper limit.
var Unbounded = Bound{unbounded: true}

// Finite returns a finite bound holding a copy of n.
// A nil n is treated as zero.
func Finite(n *big.Int) Bound {
	if n == nil {
		return Bound{}
	}
	return Bound{n: new(big.Int).Set(n)}
}

// FiniteInt returns a finite bound holding n.
func FiniteInt(n int64) Bound {
	return Bound{n: big.NewInt(n)}
}

// Int returns a copy of the finite value and true, or nil and false when unbounded.
func (b Bound) Int() (*big.Int, bool) {
	if b.unbounded {
		return nil, false
	}
	return new(big.Int).Set(b.value()), true
}

// IsUnbounded reports whether b has no finite upper limit.
func (b Bound) IsUnbounded() bool {
	return b.unbounded
}

// IsZero reports whether b is finite and equal to 0.
func (b Bound) IsZero() bool {
	return !b.unbounded && b.value().Sign() == 0
}

// Cmp compares two bounds. Unbounded is greater than every finite bound and equal to itself.
func (b Bound) Cmp(other Bound) int {
	switch {
	case b.unbounded && other.unbounded:
		return 0
	case b.unbounded:
		return 1
	case other.unbounded:
		return -1
	}
	return b.value().Cmp(other.value())
}

// CmpInt64 compares b with a finite value.
func (b Bound) CmpInt64(v int64) int {
	if b.unbounded {
		return 1
	}
	return b.value().Cmp(big.NewInt(v))
}

// Equal reports whether b and other denote the same bound.
func (b Bound) Equal(other Bound) bool {
	return b.Cmp(other) == 0
}

// String renders the bound as decimal digits or the token "unbounded".
func (b Bound) String() string {
	if b.unbounded {
		return "unbounded"
	}
	return b.value().String()
}

// value returns the finite value without copying. Callers must not mutate it.
func (b Bound) value() *big.Int {
	if b.n == nil {
		return bigZero
	}
	return b.n
}

func (b Bound) clone() Bound {
	if b.unbounded {
		return Unbounded
	}
	return Finite(b.n)
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

func addBounds(a, b Bound) Bound {
	if a.unbounded || b.unbounded {
		return Unbounded
	}
	return Bound{n: new(big.Int).Add(a.value(), b.value())}
}

func maxBounds(a, b Bound) Bound {
	if a.Cmp(b) >= 0 {
		return a
	}
	return b
}

// mulBounds multiplies two bounds. A finite zero absorbs an unbounded operand.
func mulBounds(a, b Bound) Bound {
	if a.IsZero() || b.IsZero() {
		return Bound{}
	}
	if a.unbounded || b.unbounded {
		return Unbounded
	}
	return Bound{n: new(big.Int).Mul(a.value(), b.value())}
}
