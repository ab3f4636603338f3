package contentmodel

import "github.com/jacoelho/multiplicity"

// WildcardSymbol is the symbol wildcard particles fold into.
const WildcardSymbol = "##any"

// Particle is a content model particle with an occurrence range.
type Particle interface {
	Occurs() *multiplicity.Multiplicity
}

// GroupKind represents the kind of model group.
type GroupKind int

const (
	// Sequence indicates particles must appear in the specified order.
	Sequence GroupKind = iota
	// Choice indicates exactly one of the particles must appear.
	Choice
	// All indicates all particles may appear in any order.
	All
)

func (k GroupKind) String() string {
	switch k {
	case Sequence:
		return "sequence"
	case Choice:
		return "choice"
	case All:
		return "all"
	default:
		return "group"
	}
}

// Element is a named symbol occurrence.
type Element struct {
	Occurrence *multiplicity.Multiplicity
	Name       string
}

// Occurs implements Particle. A nil occurrence means exactly once.
func (e *Element) Occurs() *multiplicity.Multiplicity {
	return orOne(e.Occurrence)
}

// Group represents sequence, choice, or all groups.
type Group struct {
	Occurrence *multiplicity.Multiplicity
	Particles  []Particle
	Kind       GroupKind
}

// Occurs implements Particle. A nil occurrence means exactly once.
func (g *Group) Occurs() *multiplicity.Multiplicity {
	return orOne(g.Occurrence)
}

// Wildcard matches any element.
type Wildcard struct {
	Occurrence *multiplicity.Multiplicity
}

// Occurs implements Particle. A nil occurrence means exactly once.
func (w *Wildcard) Occurs() *multiplicity.Multiplicity {
	return orOne(w.Occurrence)
}

// Text is character data in mixed content. It is never a field.
type Text struct{}

// Occurs implements Particle.
func (Text) Occurs() *multiplicity.Multiplicity {
	return multiplicity.Star
}

func orOne(m *multiplicity.Multiplicity) *multiplicity.Multiplicity {
	if m == nil {
		return multiplicity.One
	}
	return m
}
