package contentmodel

import (
	"fmt"

	"github.com/jacoelho/multiplicity"
	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/occurspolicy"
)

// Check reports occurrence constraint violations of every particle in p.
// A zero limit disables the limit check.
func Check(p Particle, limit uint64) xerrors.DiagnosticList {
	c := &checker{limit: limit}
	c.particle(p, "", 0, false)
	return c.diags
}

type checker struct {
	diags xerrors.DiagnosticList
	limit uint64
}

func (c *checker) particle(p Particle, parent string, index int, inAll bool) {
	if p == nil {
		return
	}
	path := parent + "/" + label(p, index, parent == "")
	occ := p.Occurs()

	if issue := occurspolicy.CheckBounds(occ); issue != occurspolicy.BoundsOK {
		c.add(issue.Code(), path, issue.String(), occ)
	}
	if issue := occurspolicy.CheckLimit(occ, c.limit); issue != occurspolicy.BoundsOK {
		c.add(issue.Code(), path, fmt.Sprintf("%s %d", issue, c.limit), occ)
	}
	if inAll && !occurspolicy.IsAllGroupChildMaxValid(occ) {
		c.add(xerrors.ErrAllGroupBounds, path, "all group child maxOccurs must be 0 or 1", occ)
	}

	g, ok := p.(*Group)
	if !ok {
		return
	}
	if g.Kind == All {
		if issue := occurspolicy.CheckAllGroupBounds(occ); issue != occurspolicy.AllGroupOK {
			c.add(issue.Code(), path, issue.String(), occ)
		}
	}
	for i, child := range g.Particles {
		c.particle(child, path, i, g.Kind == All)
	}
}

func (c *checker) add(code xerrors.ErrorCode, path, msg string, occ *multiplicity.Multiplicity) {
	d := xerrors.NewDiagnostic(code, msg, path)
	d.Actual = occ.String()
	c.diags = append(c.diags, d)
}

func label(p Particle, index int, root bool) string {
	switch typed := p.(type) {
	case *Element:
		return typed.Name
	case *Wildcard:
		return WildcardSymbol
	case *Group:
		if root {
			return typed.Kind.String()
		}
		return fmt.Sprintf("%s[%d]", typed.Kind, index)
	default:
		return "#pcdata"
	}
}

// CheckRestriction reports every symbol whose folded range in derived is not
// included in its folded range in base. Symbols missing on either side count as Zero.
func CheckRestriction(base, derived Particle) xerrors.DiagnosticList {
	baseFold := Fold(base)
	derivedFold := Fold(derived)

	var diags xerrors.DiagnosticList
	check := func(name string) {
		b := lookupOrZero(baseFold, name)
		d := lookupOrZero(derivedFold, name)
		if occurspolicy.RangeOK(b, d) {
			return
		}
		diag := xerrors.NewDiagnosticf(xerrors.ErrRangeNotIncluded, name, "occurrence range of %s is not a restriction of its base", name)
		diag.Expected = b.String()
		diag.Actual = d.String()
		diags = append(diags, diag)
	}
	for _, f := range derivedFold.fields {
		check(f.Name)
	}
	for _, f := range baseFold.fields {
		if _, ok := derivedFold.index[f.Name]; !ok {
			check(f.Name)
		}
	}
	return diags
}

func lookupOrZero(r *Result, name string) *multiplicity.Multiplicity {
	if m, ok := r.Lookup(name); ok {
		return m
	}
	return multiplicity.Zero
}
