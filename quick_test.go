package multiplicity

import (
	"testing"
	"testing/quick"
)

// genMultiplicity maps arbitrary inputs onto a well-formed multiplicity.
func genMultiplicity(lo, span uint16, unbounded bool) *Multiplicity {
	if unbounded {
		return CreateInt(int64(lo), Unbounded)
	}
	return CreateInt(int64(lo), FiniteInt(int64(lo)+int64(span)))
}

func TestQuickChoiceCommutativeIdempotent(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(aLo, aSpan, bLo, bSpan uint16, aUnb, bUnb bool) bool {
		a := genMultiplicity(aLo, aSpan, aUnb)
		b := genMultiplicity(bLo, bSpan, bUnb)
		return Choice(a, b).Equal(Choice(b, a)) && Choice(a, a).Equal(a)
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func TestQuickGroupCommutativeAssociative(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(aLo, aSpan, bLo, bSpan, cLo, cSpan uint16, aUnb, bUnb, cUnb bool) bool {
		a := genMultiplicity(aLo, aSpan, aUnb)
		b := genMultiplicity(bLo, bSpan, bUnb)
		c := genMultiplicity(cLo, cSpan, cUnb)
		if !Group(a, b).Equal(Group(b, a)) {
			return false
		}
		return Group(Group(a, b), c).Equal(Group(a, Group(b, c)))
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func TestQuickResultsStayOrdered(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(aLo, aSpan, bLo, bSpan uint16, aUnb, bUnb bool) bool {
		a := genMultiplicity(aLo, aSpan, aUnb)
		b := genMultiplicity(bLo, bSpan, bUnb)
		for _, m := range []*Multiplicity{Choice(a, b), Group(a, b), Multiply(a, b), OneOrMore(a), a.MakeOptional(), a.MakeRepeated()} {
			if m.Max().IsZero() {
				continue
			}
			if m.Max().Cmp(Finite(m.Min())) < 0 {
				return false
			}
		}
		return true
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func TestQuickIncludesWidening(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(lo, span uint16, unbounded bool) bool {
		m := genMultiplicity(lo, span, unbounded)
		return m.Includes(m) &&
			m.MakeOptional().Includes(m) &&
			m.MakeRepeated().Includes(m) &&
			Choice(m, One).Includes(m)
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}
