package contentmodel

import (
	"testing"

	"github.com/jacoelho/multiplicity"
)

func occ(minOccurs, maxOccurs int64) *multiplicity.Multiplicity {
	if maxOccurs < 0 {
		return multiplicity.CreateInt(minOccurs, multiplicity.Unbounded)
	}
	return multiplicity.CreateInt(minOccurs, multiplicity.FiniteInt(maxOccurs))
}

func elem(name string, minOccurs, maxOccurs int64) *Element {
	return &Element{Name: name, Occurrence: occ(minOccurs, maxOccurs)}
}

func sequence(particles ...Particle) *Group {
	return &Group{Kind: Sequence, Particles: particles}
}

func choice(minOccurs, maxOccurs int64, particles ...Particle) *Group {
	return &Group{Kind: Choice, Particles: particles, Occurrence: occ(minOccurs, maxOccurs)}
}

func all(minOccurs, maxOccurs int64, particles ...Particle) *Group {
	return &Group{Kind: All, Particles: particles, Occurrence: occ(minOccurs, maxOccurs)}
}

type wantField struct {
	name string
	occ  string
	kind Kind
}

func TestFold(t *testing.T) {
	tests := []struct {
		particle Particle
		name     string
		want     []wantField
		mixed    bool
	}{
		{
			name:     "sequence with optional",
			particle: sequence(elem("a", 1, 1), elem("b", 0, 1), elem("c", 0, -1)),
			want: []wantField{
				{name: "a", occ: "(1,1)", kind: KindScalar},
				{name: "b", occ: "(0,1)", kind: KindOptional},
				{name: "c", occ: "(0,unbounded)", kind: KindCollection},
			},
		},
		{
			name:     "repeated symbol in sequence",
			particle: sequence(elem("a", 1, 1), elem("b", 1, 1), elem("a", 0, 1)),
			want: []wantField{
				{name: "a", occ: "(1,2)", kind: KindCollection},
				{name: "b", occ: "(1,1)", kind: KindScalar},
			},
		},
		{
			name:     "choice makes branches optional",
			particle: sequence(choice(1, 1, elem("a", 1, 1), elem("b", 1, -1))),
			want: []wantField{
				{name: "a", occ: "(0,1)", kind: KindOptional},
				{name: "b", occ: "(0,unbounded)", kind: KindCollection},
			},
		},
		{
			name:     "symbol in every branch keeps lower bound",
			particle: choice(1, 1, sequence(elem("a", 1, 1), elem("b", 1, 1)), elem("a", 1, 1)),
			want: []wantField{
				{name: "a", occ: "(1,1)", kind: KindScalar},
				{name: "b", occ: "(0,1)", kind: KindOptional},
			},
		},
		{
			name:     "nested repetition multiplies",
			particle: sequence(choice(2, 3, elem("a", 1, 4))),
			want: []wantField{
				{name: "a", occ: "(2,12)", kind: KindCollection},
			},
		},
		{
			name:     "zero occurrence group absorbs",
			particle: sequence(choice(0, 0, elem("a", 1, -1)), elem("b", 1, 1)),
			want: []wantField{
				{name: "a", occ: "(0,0)", kind: KindAbsent},
				{name: "b", occ: "(1,1)", kind: KindScalar},
			},
		},
		{
			name:     "all group",
			particle: all(0, 1, elem("x", 1, 1), elem("y", 0, 1)),
			want: []wantField{
				{name: "x", occ: "(0,1)", kind: KindOptional},
				{name: "y", occ: "(0,1)", kind: KindOptional},
			},
		},
		{
			name:     "mixed content with wildcard",
			particle: choice(0, -1, Text{}, elem("b", 1, 1), &Wildcard{}),
			want: []wantField{
				{name: "b", occ: "(0,unbounded)", kind: KindCollection},
				{name: WildcardSymbol, occ: "(0,unbounded)", kind: KindCollection},
			},
			mixed: true,
		},
		{
			name:     "empty sequence",
			particle: sequence(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Fold(tt.particle)
			if res.Mixed != tt.mixed {
				t.Fatalf("Mixed = %v, want %v", res.Mixed, tt.mixed)
			}
			fields := res.Fields()
			if len(fields) != len(tt.want) {
				t.Fatalf("Fields() len = %d, want %d (%v)", len(fields), len(tt.want), fields)
			}
			for i, want := range tt.want {
				got := fields[i]
				if got.Name != want.name || got.Occurs.String() != want.occ || got.Kind != want.kind {
					t.Fatalf("field %d = {%s %s %s}, want {%s %s %s}", i, got.Name, got.Occurs, got.Kind, want.name, want.occ, want.kind)
				}
				if m, ok := res.Lookup(want.name); !ok || m.String() != want.occ {
					t.Fatalf("Lookup(%s) = %v, %v", want.name, m, ok)
				}
			}
		})
	}
}

func TestFoldChoiceThenSequenceScenario(t *testing.T) {
	// (a? | a), a*
	particle := sequence(choice(1, 1, elem("a", 0, 1), elem("a", 1, 1)), elem("a", 0, -1))
	got, ok := Fold(particle).Lookup("a")
	if !ok {
		t.Fatalf("expected symbol a")
	}
	if got != multiplicity.Star {
		t.Fatalf("a = %s, want interned (0,unbounded)", got)
	}
}

func TestFoldNilOccurrenceDefaultsToOne(t *testing.T) {
	res := Fold(&Group{Kind: Sequence, Particles: []Particle{&Element{Name: "a"}}})
	got, ok := res.Lookup("a")
	if !ok || got != multiplicity.One {
		t.Fatalf("a = %v, want (1,1)", got)
	}
	if _, ok := res.Lookup("missing"); ok {
		t.Fatalf("expected missing symbol lookup to fail")
	}
	if res.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", res.Len())
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		m    *multiplicity.Multiplicity
		want Kind
	}{
		{m: multiplicity.Zero, want: KindAbsent},
		{m: multiplicity.One, want: KindScalar},
		{m: multiplicity.Optional, want: KindOptional},
		{m: multiplicity.Star, want: KindCollection},
		{m: multiplicity.Plus, want: KindCollection},
		{m: occ(2, 2), want: KindCollection},
	}
	for _, tt := range tests {
		if got := KindOf(tt.m); got != tt.want {
			t.Fatalf("KindOf(%s) = %s, want %s", tt.m, got, tt.want)
		}
	}
}
