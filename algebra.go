package multiplicity

import "math/big"

// Choice combines the multiplicities of alternative branches.
// The result permits as few occurrences as the least demanding branch and
// as many as the most permissive one.
func Choice(lhs, rhs *Multiplicity) *Multiplicity {
	lower := lhs.min
	if rhs.min.Cmp(lower) < 0 {
		lower = rhs.min
	}
	return Create(lower, maxBounds(lhs.max, rhs.max))
}

// Group combines the multiplicities of two particles that both occur in sequence.
func Group(lhs, rhs *Multiplicity) *Multiplicity {
	return Create(new(big.Int).Add(lhs.min, rhs.min), addBounds(lhs.max, rhs.max))
}

// Multiply combines an outer repetition lhs with an inner repetition rhs.
// A finite zero max on either side yields a zero max even when the other side is unbounded.
func Multiply(lhs, rhs *Multiplicity) *Multiplicity {
	return Create(new(big.Int).Mul(lhs.min, rhs.min), mulBounds(lhs.max, rhs.max))
}

// ChoiceOf folds Choice over ms from the left. It returns Zero when ms is empty.
func ChoiceOf(ms ...*Multiplicity) *Multiplicity {
	if len(ms) == 0 {
		return Zero
	}
	acc := ms[0]
	for _, m := range ms[1:] {
		acc = Choice(acc, m)
	}
	return acc
}

// GroupOf folds Group over ms from the left. It returns Zero when ms is empty.
func GroupOf(ms ...*Multiplicity) *Multiplicity {
	acc := Zero
	for _, m := range ms {
		acc = Group(acc, m)
	}
	return acc
}

// OneOrMore applies a one-or-more repetition to c.
//
//	(x,unbounded) => (x,unbounded)
//	(0,0)         => (0,0)
//	(x,y)         => (x,unbounded)
func OneOrMore(c *Multiplicity) *Multiplicity {
	if c.max.unbounded || c.max.IsZero() {
		return c
	}
	return Create(c.min, Unbounded)
}

// MakeOptional widens the lower bound to zero, keeping max.
func (m *Multiplicity) MakeOptional() *Multiplicity {
	if m.min.Sign() == 0 {
		return m
	}
	return Create(bigZero, m.max)
}

// MakeRepeated widens the upper bound to unbounded, keeping min.
// (0,0) and already unbounded multiplicities are returned unchanged.
func (m *Multiplicity) MakeRepeated() *Multiplicity {
	if m.max.unbounded || m.max.IsZero() {
		return m
	}
	return Create(m.min, Unbounded)
}
