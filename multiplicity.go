// Package multiplicity models how many times a grammar symbol or schema
// particle may occur.
//
// A Multiplicity is the closed interval [min, max] of permitted occurrence
// counts, where max may be unbounded. For example, (0,unbounded) corresponds
// to the DTD '*' indicator and (0,1) to '?'.
//
// Values are immutable and safe for concurrent use. The five common shapes are
// interned: Create returns Zero, One, Optional, Star or Plus for them, so
// pointer comparison against those variables is reliable.
package multiplicity

import (
	"encoding/binary"
	"hash/fnv"
	"math/big"
	"strings"
)

// Multiplicity is an occurrence-count interval.
// Values are obtained from Create or the package variables.
type Multiplicity struct {
	min *big.Int
	max Bound
}

var (
	// Zero is the (0,0) multiplicity.
	Zero = &Multiplicity{min: big.NewInt(0), max: FiniteInt(0)}
	// One is the (1,1) multiplicity.
	One = &Multiplicity{min: big.NewInt(1), max: FiniteInt(1)}
	// Optional is the (0,1) multiplicity.
	Optional = &Multiplicity{min: big.NewInt(0), max: FiniteInt(1)}
	// Star is the (0,unbounded) multiplicity.
	Star = &Multiplicity{min: big.NewInt(0), max: Unbounded}
	// Plus is the (1,unbounded) multiplicity.
	Plus = &Multiplicity{min: big.NewInt(1), max: Unbounded}
)

// Create returns the multiplicity (min, max). A nil min is treated as zero.
// The pair is not validated: negative or inverted inputs are kept as given.
func Create(min *big.Int, max Bound) *Multiplicity {
	if min == nil {
		min = bigZero
	}
	if interned := lookupInterned(min, max); interned != nil {
		return interned
	}
	return &Multiplicity{min: new(big.Int).Set(min), max: max.clone()}
}

// CreateInt is Create for a small lower bound.
func CreateInt(min int64, max Bound) *Multiplicity {
	return Create(big.NewInt(min), max)
}

func lookupInterned(min *big.Int, max Bound) *Multiplicity {
	minZero := min.Sign() == 0
	minOne := min.Cmp(bigOne) == 0
	if !minZero && !minOne {
		return nil
	}
	if max.unbounded {
		if minZero {
			return Star
		}
		return Plus
	}
	switch {
	case minZero && max.value().Sign() == 0:
		return Zero
	case minZero && max.value().Cmp(bigOne) == 0:
		return Optional
	case minOne && max.value().Cmp(bigOne) == 0:
		return One
	}
	return nil
}

// Min returns a copy of the lower bound.
func (m *Multiplicity) Min() *big.Int {
	return new(big.Int).Set(m.min)
}

// Max returns the upper bound.
func (m *Multiplicity) Max() Bound {
	return m.max
}

// IsUnique reports whether m is (1,1).
func (m *Multiplicity) IsUnique() bool {
	if m.max.unbounded {
		return false
	}
	return m.min.Cmp(bigOne) == 0 && m.max.value().Cmp(bigOne) == 0
}

// IsOptional reports whether m is (0,1).
func (m *Multiplicity) IsOptional() bool {
	if m.max.unbounded {
		return false
	}
	return m.min.Sign() == 0 && m.max.value().Cmp(bigOne) == 0
}

// IsAtMostOnce reports whether max is finite and at most 1.
// Only max is inspected.
func (m *Multiplicity) IsAtMostOnce() bool {
	if m.max.unbounded {
		return false
	}
	return m.max.value().Cmp(bigOne) <= 0
}

// IsZero reports whether max is finite and 0.
// Only max is inspected, so an inverted pair such as (5,0) also reports true.
func (m *Multiplicity) IsZero() bool {
	return m.max.IsZero()
}

// IsRepeated reports whether m permits more than one occurrence.
func (m *Multiplicity) IsRepeated() bool {
	return m.max.CmpInt64(1) > 0
}

// Includes reports whether the interval of m completely contains the interval of other.
// For example, (1,3) includes (1,2) but (2,4) does not include (1,3).
func (m *Multiplicity) Includes(other *Multiplicity) bool {
	if other.min.Cmp(m.min) < 0 {
		return false
	}
	if m.max.unbounded {
		return true
	}
	if other.max.unbounded {
		return false
	}
	return other.max.value().Cmp(m.max.value()) <= 0
}

// Equal reports whether m and other denote the same interval.
func (m *Multiplicity) Equal(other *Multiplicity) bool {
	if m == other {
		return true
	}
	if m == nil || other == nil {
		return false
	}
	return m.min.Cmp(other.min) == 0 && m.max.Equal(other.max)
}

// Hash returns a structural hash; equal multiplicities hash equally.
func (m *Multiplicity) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeInt := func(v *big.Int) {
		digits := v.Bytes()
		binary.LittleEndian.PutUint64(buf[:], uint64(len(digits)))
		// hash.Hash.Write never returns an error for standard library hashes.
		_, _ = h.Write([]byte{byte(v.Sign() + 1)})
		_, _ = h.Write(buf[:])
		_, _ = h.Write(digits)
	}
	writeInt(m.min)
	if m.max.unbounded {
		_, _ = h.Write([]byte{0xff})
	} else {
		_, _ = h.Write([]byte{0x00})
		writeInt(m.max.value())
	}
	return h.Sum64()
}

// MaxString returns max as decimal digits or the token "unbounded".
func (m *Multiplicity) MaxString() string {
	return m.max.String()
}

// String renders m as "(min,max)" for diagnostics.
func (m *Multiplicity) String() string {
	var b strings.Builder
	b.WriteByte('(')
	b.WriteString(m.min.String())
	b.WriteByte(',')
	b.WriteString(m.MaxString())
	b.WriteByte(')')
	return b.String()
}
