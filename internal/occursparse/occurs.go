// Package occursparse reads occurrence indicators written in DTD or XSD syntax.
package occursparse

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/jacoelho/multiplicity"
)

var (
	// ErrInvalidOccurs reports a lexical form that is not an occurrence value.
	ErrInvalidOccurs = errors.New("invalid occurrence value")
	// ErrMinUnbounded reports minOccurs="unbounded".
	ErrMinUnbounded = errors.New("minOccurs cannot be unbounded")
	// ErrOccursOverflow reports a value above the configured limit.
	ErrOccursOverflow = errors.New("occurrence value exceeds limit")
)

const (
	attrMinOccurs  = "minOccurs"
	attrMaxOccurs  = "maxOccurs"
	tokenUnbounded = "unbounded"
)

// Options controls occurrence parsing.
type Options struct {
	// Limit rejects finite values above it. Zero disables the check.
	Limit uint64
}

// ParseIndicator maps a DTD occurrence indicator to a multiplicity.
// The empty indicator means exactly once.
func ParseIndicator(indicator string) (*multiplicity.Multiplicity, error) {
	switch indicator {
	case "":
		return multiplicity.One, nil
	case "?":
		return multiplicity.Optional, nil
	case "*":
		return multiplicity.Star, nil
	case "+":
		return multiplicity.Plus, nil
	}
	return nil, fmt.Errorf("%w: indicator %q", ErrInvalidOccurs, indicator)
}

// Attr is an optional XSD occurrence attribute value.
type Attr struct {
	Value   string
	Present bool
}

// Present returns an Attr carrying value.
func Present(value string) Attr {
	return Attr{Value: value, Present: true}
}

// ParseAttrs reads a minOccurs/maxOccurs attribute pair. Absent attributes default to 1.
func ParseAttrs(minAttr, maxAttr Attr, opts Options) (*multiplicity.Multiplicity, error) {
	lower := big.NewInt(1)
	if minAttr.Present {
		b, err := parseValue(attrMinOccurs, minAttr.Value, opts)
		if err != nil {
			return nil, err
		}
		n, ok := b.Int()
		if !ok {
			return nil, fmt.Errorf("%w: %s attribute value '%s'", ErrMinUnbounded, attrMinOccurs, minAttr.Value)
		}
		lower = n
	}
	upper := multiplicity.FiniteInt(1)
	if maxAttr.Present {
		b, err := parseValue(attrMaxOccurs, maxAttr.Value, opts)
		if err != nil {
			return nil, err
		}
		upper = b
	}
	return multiplicity.Create(lower, upper), nil
}

// ParseOccurs reads present minOccurs and maxOccurs values.
func ParseOccurs(minLexical, maxLexical string) (*multiplicity.Multiplicity, error) {
	return ParseAttrs(Present(minLexical), Present(maxLexical), Options{})
}

// ParseBound reads a single maxOccurs-style value: digits or "unbounded".
func ParseBound(attr, lexical string, opts Options) (multiplicity.Bound, error) {
	return parseValue(attr, lexical, opts)
}

func parseValue(attr, lexical string, opts Options) (multiplicity.Bound, error) {
	value := collapseWhitespace(lexical)
	if value == "" {
		return multiplicity.Bound{}, fmt.Errorf("%w: %s attribute cannot be empty", ErrInvalidOccurs, attr)
	}
	if value == tokenUnbounded {
		if attr == attrMinOccurs {
			return multiplicity.Bound{}, fmt.Errorf("%w: %s attribute cannot be 'unbounded'", ErrMinUnbounded, attr)
		}
		return multiplicity.Unbounded, nil
	}
	digits := strings.TrimPrefix(value, "+")
	if digits == "" || !isDigits(digits) {
		return multiplicity.Bound{}, fmt.Errorf("%w: %s attribute value '%s'", ErrInvalidOccurs, attr, lexical)
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return multiplicity.Bound{}, fmt.Errorf("%w: %s attribute value '%s'", ErrInvalidOccurs, attr, lexical)
	}
	if opts.Limit > 0 && n.Cmp(new(big.Int).SetUint64(opts.Limit)) > 0 {
		return multiplicity.Bound{}, fmt.Errorf("%w: %s attribute value '%s' exceeds %d", ErrOccursOverflow, attr, value, opts.Limit)
	}
	return multiplicity.Finite(n), nil
}

// ParsePair reads "min,max" (optionally parenthesised, as rendered by
// Multiplicity.String) or a DTD indicator.
func ParsePair(text string) (*multiplicity.Multiplicity, error) {
	s := strings.TrimSpace(text)
	if m, err := ParseIndicator(s); err == nil && s != "" {
		return m, nil
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("%w: expected min,max or one of ? * + but got %q", ErrInvalidOccurs, text)
	}
	return ParseOccurs(lo, hi)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.FieldsFunc(s, isXMLSpace), " ")
}

func isXMLSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
