// Package errors defines the diagnostics reported while reading and checking
// occurrence constraints.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies a diagnostic. XSD-derived checks use the W3C constraint names.
// See: https://www.w3.org/TR/xmlschema-1/#p-props-correct
type ErrorCode string

const (
	// ErrOccursInvalidValue indicates a minOccurs/maxOccurs or indicator lexical form is invalid.
	ErrOccursInvalidValue ErrorCode = "s4s-att-invalid-value"
	// ErrOccursMinGreaterThanMax indicates minOccurs exceeds maxOccurs.
	ErrOccursMinGreaterThanMax ErrorCode = "p-props-correct.2.1"
	// ErrOccursMaxZero indicates maxOccurs is 0 while minOccurs is not.
	ErrOccursMaxZero ErrorCode = "p-props-correct.2.2"
	// ErrAllGroupBounds indicates an all group or one of its children has invalid occurrence bounds.
	ErrAllGroupBounds ErrorCode = "cos-all-limited.2"
	// ErrRangeNotIncluded indicates a restricted particle permits occurrences its base does not.
	ErrRangeNotIncluded ErrorCode = "range-ok"
	// ErrOccursOverflow indicates an occurrence bound exceeds the configured limit.
	ErrOccursOverflow ErrorCode = "occurs-overflow"

	// ErrDTDSyntax indicates a DTD content specification could not be parsed.
	ErrDTDSyntax ErrorCode = "dtd-syntax"
	// ErrDTDMixedSeparators indicates ',' and '|' were mixed within one group.
	ErrDTDMixedSeparators ErrorCode = "dtd-mixed-separators"
	// ErrDTDMixedContent indicates #PCDATA was used outside a leading position of a choice.
	ErrDTDMixedContent ErrorCode = "dtd-mixed-content"

	// ErrModelInvalid indicates a model document is structurally invalid.
	ErrModelInvalid ErrorCode = "model-invalid"
)

// Diagnostic is one occurrence problem. Path locates a particle or model
// field, Line and Column locate a DTD token. Actual is the offending range;
// Expected is the range it had to fit in, when there is one.
type Diagnostic struct {
	Code     string
	Message  string
	Path     string
	Actual   string
	Expected string
	Line     int
	Column   int
}

// DiagnosticList is an error holding every diagnostic of one check.
type DiagnosticList []Diagnostic //nolint:errname // domain name, mirrors Diagnostic.

func (l DiagnosticList) Error() string {
	if len(l) == 0 {
		return "no diagnostics"
	}
	if len(l) == 1 {
		return l[0].Error()
	}
	return fmt.Sprintf("%d diagnostics, first: %s", len(l), l[0].Error())
}

// Err returns l as an error, or nil when it is empty.
func (l DiagnosticList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Error renders "[code] message at where (occurs actual, allowed expected)".
func (d *Diagnostic) Error() string {
	if d == nil {
		return "diagnostic <nil>"
	}
	parts := []string{"[" + d.Code + "]", d.Message}
	if where := d.where(); where != "" {
		parts = append(parts, "at", where)
	}
	if ranges := d.ranges(); ranges != "" {
		parts = append(parts, "("+ranges+")")
	}
	return strings.Join(parts, " ")
}

// where joins the path and a line:column position.
func (d *Diagnostic) where() string {
	pos := ""
	if d.Line > 0 && d.Column > 0 {
		pos = fmt.Sprintf("%d:%d", d.Line, d.Column)
	}
	switch {
	case d.Path == "":
		return pos
	case pos == "":
		return d.Path
	default:
		return d.Path + " " + pos
	}
}

func (d *Diagnostic) ranges() string {
	var out []string
	if d.Actual != "" {
		out = append(out, "occurs "+d.Actual)
	}
	if d.Expected != "" {
		out = append(out, "allowed "+d.Expected)
	}
	return strings.Join(out, ", ")
}

// NewDiagnostic builds a Diagnostic with a code, message, and optional path.
func NewDiagnostic(code ErrorCode, msg, path string) Diagnostic {
	return Diagnostic{Code: string(code), Message: msg, Path: path}
}

// NewDiagnosticf formats a message and builds a Diagnostic.
func NewDiagnosticf(code ErrorCode, path, format string, args ...any) Diagnostic {
	return NewDiagnostic(code, fmt.Sprintf(format, args...), path)
}

// AsDiagnostics extracts diagnostics from an error chain.
func AsDiagnostics(err error) ([]Diagnostic, bool) {
	if err == nil {
		return nil, false
	}
	var list DiagnosticList
	if errors.As(err, &list) {
		return []Diagnostic(list), true
	}
	var listPtr *DiagnosticList
	if errors.As(err, &listPtr) && listPtr != nil {
		return []Diagnostic(*listPtr), true
	}
	var single *Diagnostic
	if errors.As(err, &single) && single != nil {
		return []Diagnostic{*single}, true
	}
	return nil, false
}
