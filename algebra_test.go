package multiplicity

import (
	"math/big"
	"testing"
)

func TestChoice(t *testing.T) {
	tests := []struct {
		lhs  *Multiplicity
		rhs  *Multiplicity
		want *Multiplicity
		name string
	}{
		{name: "optional or one", lhs: Optional, rhs: One, want: Optional},
		{name: "finite ranges", lhs: CreateInt(2, FiniteInt(3)), rhs: CreateInt(1, FiniteInt(7)), want: CreateInt(1, FiniteInt(7))},
		{name: "unbounded propagates", lhs: CreateInt(3, FiniteInt(4)), rhs: Plus, want: Plus},
		{name: "zero with one", lhs: Zero, rhs: One, want: Optional},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Choice(tt.lhs, tt.rhs)
			if !got.Equal(tt.want) {
				t.Fatalf("Choice(%s, %s) = %s, want %s", tt.lhs, tt.rhs, got, tt.want)
			}
			if rev := Choice(tt.rhs, tt.lhs); !rev.Equal(got) {
				t.Fatalf("Choice not commutative: %s vs %s", got, rev)
			}
		})
	}
}

func TestChoiceIdempotent(t *testing.T) {
	for _, m := range []*Multiplicity{Zero, One, Optional, Star, Plus, CreateInt(3, FiniteInt(8))} {
		if got := Choice(m, m); !got.Equal(m) {
			t.Fatalf("Choice(%s, %s) = %s", m, m, got)
		}
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		lhs  *Multiplicity
		rhs  *Multiplicity
		want *Multiplicity
		name string
	}{
		{name: "one and one", lhs: One, rhs: One, want: CreateInt(2, FiniteInt(2))},
		{name: "optional and one", lhs: Optional, rhs: One, want: CreateInt(1, FiniteInt(2))},
		{name: "unbounded propagates", lhs: CreateInt(2, FiniteInt(3)), rhs: Star, want: CreateInt(2, Unbounded)},
		{name: "zero is identity", lhs: Zero, rhs: CreateInt(4, FiniteInt(9)), want: CreateInt(4, FiniteInt(9))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.lhs, tt.rhs)
			if !got.Equal(tt.want) {
				t.Fatalf("Group(%s, %s) = %s, want %s", tt.lhs, tt.rhs, got, tt.want)
			}
			if rev := Group(tt.rhs, tt.lhs); !rev.Equal(got) {
				t.Fatalf("Group not commutative: %s vs %s", got, rev)
			}
		})
	}
}

func TestGroupAssociative(t *testing.T) {
	a := CreateInt(1, FiniteInt(2))
	b := Star
	c := CreateInt(3, FiniteInt(3))
	left := Group(Group(a, b), c)
	right := Group(a, Group(b, c))
	if !left.Equal(right) {
		t.Fatalf("Group not associative: %s vs %s", left, right)
	}
}

func TestMultiply(t *testing.T) {
	tests := []struct {
		lhs  *Multiplicity
		rhs  *Multiplicity
		want *Multiplicity
		name string
	}{
		{name: "zero absorbs star", lhs: Zero, rhs: Star, want: Zero},
		{name: "star absorbed by zero", lhs: Star, rhs: Zero, want: Zero},
		{name: "finite product", lhs: CreateInt(2, FiniteInt(3)), rhs: CreateInt(1, FiniteInt(4)), want: CreateInt(2, FiniteInt(12))},
		{name: "unbounded propagates", lhs: Plus, rhs: CreateInt(2, FiniteInt(2)), want: CreateInt(2, Unbounded)},
		{name: "optional of plus", lhs: Optional, rhs: Plus, want: Star},
		{name: "inverted zero max absorbs", lhs: CreateInt(3, FiniteInt(0)), rhs: Plus, want: CreateInt(3, FiniteInt(0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Multiply(tt.lhs, tt.rhs); !got.Equal(tt.want) {
				t.Fatalf("Multiply(%s, %s) = %s, want %s", tt.lhs, tt.rhs, got, tt.want)
			}
		})
	}
}

func TestMultiplyOneIsIdentity(t *testing.T) {
	for _, m := range []*Multiplicity{Zero, One, Optional, Star, Plus, CreateInt(2, FiniteInt(5)), CreateInt(7, Unbounded)} {
		got := Multiply(One, m)
		if got.Min().Cmp(m.Min()) != 0 || !got.Max().Equal(m.Max()) {
			t.Fatalf("Multiply(One, %s) = %s", m, got)
		}
	}
}

func TestMultiplyBeyondInt64(t *testing.T) {
	huge, ok := new(big.Int).SetString("9223372036854775808", 10)
	if !ok {
		t.Fatalf("parse huge")
	}
	m := Create(huge, Finite(huge))
	got := Multiply(m, CreateInt(2, FiniteInt(2)))
	want := new(big.Int).Mul(huge, big.NewInt(2))
	if got.Min().Cmp(want) != 0 {
		t.Fatalf("min = %s, want %s", got.Min(), want)
	}
	if maxValue, ok := got.Max().Int(); !ok || maxValue.Cmp(want) != 0 {
		t.Fatalf("max = %s, want %s", got.Max(), want)
	}
}

func TestOneOrMore(t *testing.T) {
	if got := OneOrMore(CreateInt(2, FiniteInt(5))); !got.Equal(CreateInt(2, Unbounded)) {
		t.Fatalf("OneOrMore((2,5)) = %s", got)
	}
	if got := OneOrMore(Zero); got != Zero {
		t.Fatalf("OneOrMore(Zero) = %s", got)
	}
	if got := OneOrMore(Star); got != Star {
		t.Fatalf("OneOrMore(Star) = %s", got)
	}
	if got := OneOrMore(One); got != Plus {
		t.Fatalf("OneOrMore(One) = %s", got)
	}
}

func TestMakeOptional(t *testing.T) {
	if got := One.MakeOptional(); got != Optional {
		t.Fatalf("One.MakeOptional() = %s", got)
	}
	if got := Optional.MakeOptional(); got != Optional {
		t.Fatalf("Optional.MakeOptional() = %s", got)
	}
	if got := Plus.MakeOptional(); got != Star {
		t.Fatalf("Plus.MakeOptional() = %s", got)
	}
	if got := CreateInt(3, FiniteInt(6)).MakeOptional(); !got.Equal(CreateInt(0, FiniteInt(6))) {
		t.Fatalf("(3,6).MakeOptional() = %s", got)
	}
}

func TestMakeRepeated(t *testing.T) {
	if got := One.MakeRepeated(); got != Plus {
		t.Fatalf("One.MakeRepeated() = %s", got)
	}
	if got := Star.MakeRepeated(); got != Star {
		t.Fatalf("Star.MakeRepeated() = %s", got)
	}
	if got := Zero.MakeRepeated(); got != Zero {
		t.Fatalf("Zero.MakeRepeated() = %s", got)
	}
	if got := Optional.MakeRepeated(); got != Star {
		t.Fatalf("Optional.MakeRepeated() = %s", got)
	}
}

func TestFoldHelpers(t *testing.T) {
	if got := GroupOf(); got != Zero {
		t.Fatalf("GroupOf() = %s", got)
	}
	if got := ChoiceOf(); got != Zero {
		t.Fatalf("ChoiceOf() = %s", got)
	}
	if got := GroupOf(One, Optional, One); !got.Equal(CreateInt(2, FiniteInt(3))) {
		t.Fatalf("GroupOf = %s", got)
	}
	if got := ChoiceOf(One, Plus, Optional); got != Star {
		t.Fatalf("ChoiceOf = %s", got)
	}
}

func TestChoiceThenGroupScenario(t *testing.T) {
	got := Group(Choice(Optional, One), Star)
	if !got.Equal(CreateInt(0, Unbounded)) {
		t.Fatalf("Group(Choice(Optional, One), Star) = %s", got)
	}
	if got != Star {
		t.Fatalf("expected interned Star, got %p", got)
	}
}
