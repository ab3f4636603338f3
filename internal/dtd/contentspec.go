// Package dtd reads DTD element content specifications into content model particles.
package dtd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/jacoelho/multiplicity"
	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/contentmodel"
	"github.com/jacoelho/multiplicity/internal/occursparse"
)

// contentSpec is the participle grammar for an element content specification.
//
//nolint:govet // participle grammar tags are not standard struct tags
type contentSpec struct {
	Empty bool      `  @"EMPTY"`
	Any   bool      `| @"ANY"`
	Root  *particle `| @@`
}

//nolint:govet // participle grammar tags are not standard struct tags
type particle struct {
	Pos  lexer.Position
	Term *term  `@@`
	Occ  string `@Occ?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type term struct {
	PCData bool   `  @PCData`
	Name   string `| @Name`
	Group  *group `| "(" @@ ")"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type group struct {
	First *particle    `@@`
	Rest  []*connector `@@*`
}

//nolint:govet // participle grammar tags are not standard struct tags
type connector struct {
	Pos       lexer.Position
	Separator string    `@Sep`
	Particle  *particle `@@`
}

var contentSpecLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "PCData", Pattern: `#PCDATA`},
	{Name: "Name", Pattern: `[A-Za-z_:][-A-Za-z0-9._:]*`},
	{Name: "Occ", Pattern: `[?*+]`},
	{Name: "Sep", Pattern: `[,|]`},
	{Name: "Paren", Pattern: `[()]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var contentSpecParser = participle.MustBuild[contentSpec](
	participle.Lexer(contentSpecLexer),
	participle.Elide("Whitespace"),
)

// Parse reads a content specification such as "(title, (author | editor)+, note*)".
// EMPTY yields an empty sequence; ANY yields a repeated choice of text and a wildcard.
// Failures are returned as an errors.DiagnosticList.
func Parse(expr string) (contentmodel.Particle, error) {
	source := strings.TrimSpace(expr)
	if source == "" {
		return nil, xerrors.DiagnosticList{xerrors.NewDiagnostic(xerrors.ErrDTDSyntax, "empty content specification", "")}
	}

	spec, err := contentSpecParser.ParseString("", source)
	if err != nil {
		return nil, syntaxDiagnostics(err)
	}

	switch {
	case spec.Empty:
		return &contentmodel.Group{Kind: contentmodel.Sequence}, nil
	case spec.Any:
		return &contentmodel.Group{
			Kind:       contentmodel.Choice,
			Occurrence: multiplicity.Star,
			Particles:  []contentmodel.Particle{contentmodel.Text{}, &contentmodel.Wildcard{}},
		}, nil
	}

	if spec.Root == nil || spec.Root.Term == nil || spec.Root.Term.Group == nil {
		return nil, xerrors.DiagnosticList{positioned(xerrors.ErrDTDSyntax, "content specification must be a parenthesised group", spec.Root)}
	}
	b := &builder{}
	root := b.particle(spec.Root, true)
	if len(b.diags) > 0 {
		return nil, b.diags
	}
	return root, nil
}

type builder struct {
	diags xerrors.DiagnosticList
}

func (b *builder) particle(p *particle, top bool) contentmodel.Particle {
	occurs, err := occursparse.ParseIndicator(p.Occ)
	if err != nil {
		b.diags = append(b.diags, positioned(xerrors.ErrOccursInvalidValue, err.Error(), p))
		return nil
	}
	switch {
	case p.Term.PCData:
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "#PCDATA must be the first particle of a top-level group", p))
		return nil
	case p.Term.Group != nil:
		return b.group(p, occurs, top)
	default:
		return &contentmodel.Element{Name: p.Term.Name, Occurrence: occurs}
	}
}

func (b *builder) group(p *particle, occurs *multiplicity.Multiplicity, top bool) contentmodel.Particle {
	g := p.Term.Group
	kind := contentmodel.Sequence
	if len(g.Rest) > 0 {
		first := g.Rest[0].Separator
		if first == "|" {
			kind = contentmodel.Choice
		}
		for _, c := range g.Rest[1:] {
			if c.Separator != first {
				b.diags = append(b.diags, xerrors.Diagnostic{
					Code:    string(xerrors.ErrDTDMixedSeparators),
					Message: fmt.Sprintf("separator %q mixed with %q in one group", c.Separator, first),
					Line:    c.Pos.Line,
					Column:  c.Pos.Column,
				})
				return nil
			}
		}
	}

	out := &contentmodel.Group{Kind: kind, Occurrence: occurs}
	if g.First.Term.PCData {
		if !b.mixedAllowed(p, kind, top) {
			return nil
		}
		out.Kind = contentmodel.Choice
		out.Particles = append(out.Particles, contentmodel.Text{})
	} else {
		out.Particles = append(out.Particles, b.particle(g.First, false))
	}
	for _, c := range g.Rest {
		out.Particles = append(out.Particles, b.particle(c.Particle, false))
	}
	return out
}

// mixedAllowed enforces (#PCDATA) and (#PCDATA | a | b)* forms.
func (b *builder) mixedAllowed(p *particle, kind contentmodel.GroupKind, top bool) bool {
	g := p.Term.Group
	switch {
	case !top:
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "#PCDATA is only allowed in a top-level group", p))
	case g.First.Occ != "":
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "#PCDATA cannot carry an occurrence indicator", g.First))
	case len(g.Rest) > 0 && kind != contentmodel.Choice:
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "mixed content must use '|' separators", p))
	case len(g.Rest) > 0 && p.Occ != "*":
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "mixed content with elements must be followed by '*'", p))
	case len(g.Rest) == 0 && p.Occ != "" && p.Occ != "*":
		b.diags = append(b.diags, positioned(xerrors.ErrDTDMixedContent, "(#PCDATA) only accepts '*'", p))
	default:
		return true
	}
	return false
}

func positioned(code xerrors.ErrorCode, msg string, p *particle) xerrors.Diagnostic {
	d := xerrors.NewDiagnostic(code, msg, "")
	if p != nil {
		d.Line = p.Pos.Line
		d.Column = p.Pos.Column
	}
	return d
}

func syntaxDiagnostics(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		pos := perr.Position()
		return xerrors.DiagnosticList{{
			Code:    string(xerrors.ErrDTDSyntax),
			Message: perr.Message(),
			Line:    pos.Line,
			Column:  pos.Column,
		}}
	}
	return xerrors.DiagnosticList{xerrors.NewDiagnostic(xerrors.ErrDTDSyntax, err.Error(), "")}
}
