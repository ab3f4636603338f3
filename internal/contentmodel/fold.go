package contentmodel

import (
	"fmt"

	"github.com/jacoelho/multiplicity"
)

// Kind is the representation a folded symbol gets in generated code.
type Kind uint8

const (
	// KindAbsent means the symbol can never occur.
	KindAbsent Kind = iota
	// KindScalar means the symbol occurs exactly once.
	KindScalar
	// KindOptional means the symbol occurs at most once.
	KindOptional
	// KindCollection means the symbol may occur more than once.
	KindCollection
)

// KindOf classifies a folded multiplicity.
func KindOf(m *multiplicity.Multiplicity) Kind {
	switch {
	case m.IsZero():
		return KindAbsent
	case m.IsUnique():
		return KindScalar
	case m.IsAtMostOnce():
		return KindOptional
	default:
		return KindCollection
	}
}

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindOptional:
		return "optional"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Field is the folded occurrence range of one symbol.
type Field struct {
	Occurs *multiplicity.Multiplicity
	Name   string
	Kind   Kind
}

// Result holds per-symbol multiplicities in first-appearance order.
type Result struct {
	index  map[string]int
	fields []Field
	// Mixed reports whether the model allows character data.
	Mixed bool
}

// Fields returns the folded fields in first-appearance order.
func (r *Result) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Lookup returns the folded multiplicity of name.
func (r *Result) Lookup(name string) (*multiplicity.Multiplicity, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.fields[i].Occurs, true
}

// Len returns the number of folded symbols.
func (r *Result) Len() int {
	return len(r.fields)
}

// Fold computes one multiplicity per symbol of p.
//
// Sequence and all groups add the ranges of their children, choice groups
// take the union where a symbol missing from a branch counts as Zero, and a
// group's own range multiplies the ranges folded inside it.
func Fold(p Particle) *Result {
	res := &Result{}
	acc := foldParticle(p, res)
	res.index = make(map[string]int, len(acc.order))
	res.fields = make([]Field, 0, len(acc.order))
	for _, name := range acc.order {
		m := acc.ranges[name]
		res.index[name] = len(res.fields)
		res.fields = append(res.fields, Field{Name: name, Occurs: m, Kind: KindOf(m)})
	}
	return res
}

type symbolRanges struct {
	ranges map[string]*multiplicity.Multiplicity
	order  []string
}

func newSymbolRanges() *symbolRanges {
	return &symbolRanges{ranges: make(map[string]*multiplicity.Multiplicity)}
}

func (s *symbolRanges) get(name string) *multiplicity.Multiplicity {
	if m, ok := s.ranges[name]; ok {
		return m
	}
	return multiplicity.Zero
}

func (s *symbolRanges) set(name string, m *multiplicity.Multiplicity) {
	if _, ok := s.ranges[name]; !ok {
		s.order = append(s.order, name)
	}
	s.ranges[name] = m
}

func foldParticle(p Particle, res *Result) *symbolRanges {
	out := newSymbolRanges()
	switch typed := p.(type) {
	case nil:
	case *Element:
		out.set(typed.Name, typed.Occurs())
	case *Wildcard:
		out.set(WildcardSymbol, typed.Occurs())
	case Text, *Text:
		res.Mixed = true
	case *Group:
		inner := foldGroup(typed, res)
		outer := typed.Occurs()
		for _, name := range inner.order {
			out.set(name, multiplicity.Multiply(outer, inner.ranges[name]))
		}
	}
	return out
}

func foldGroup(g *Group, res *Result) *symbolRanges {
	children := make([]*symbolRanges, 0, len(g.Particles))
	for _, child := range g.Particles {
		children = append(children, foldParticle(child, res))
	}

	out := newSymbolRanges()
	switch g.Kind {
	case Choice:
		for _, child := range children {
			for _, name := range child.order {
				if _, seen := out.ranges[name]; seen {
					continue
				}
				branches := make([]*multiplicity.Multiplicity, 0, len(children))
				for _, branch := range children {
					branches = append(branches, branch.get(name))
				}
				out.set(name, multiplicity.ChoiceOf(branches...))
			}
		}
	default:
		for _, child := range children {
			for _, name := range child.order {
				out.set(name, multiplicity.Group(out.get(name), child.ranges[name]))
			}
		}
	}
	return out
}
