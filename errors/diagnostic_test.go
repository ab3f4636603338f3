package errors

import (
	"fmt"
	"testing"
)

func TestDiagnosticErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		want string
		d    Diagnostic
	}{
		{
			name: "message only",
			d:    Diagnostic{Code: "p-props-correct.2.1", Message: "minOccurs greater than maxOccurs"},
			want: "[p-props-correct.2.1] minOccurs greater than maxOccurs",
		},
		{
			name: "with path",
			d:    Diagnostic{Code: "p-props-correct.2.1", Message: "minOccurs greater than maxOccurs", Path: "/sequence/item"},
			want: "[p-props-correct.2.1] minOccurs greater than maxOccurs at /sequence/item",
		},
		{
			name: "with column only",
			d:    Diagnostic{Code: "dtd-syntax", Message: "unexpected token", Line: 1, Column: 4},
			want: "[dtd-syntax] unexpected token at 1:4",
		},
		{
			name: "with path and column",
			d:    Diagnostic{Code: "dtd-syntax", Message: "unexpected token", Path: "order", Line: 1, Column: 4},
			want: "[dtd-syntax] unexpected token at order 1:4",
		},
		{
			name: "with expected and actual",
			d: Diagnostic{
				Code:     "range-ok",
				Message:  "derived range not included",
				Path:     "item",
				Expected: "(0,1)",
				Actual:   "(0,unbounded)",
			},
			want: "[range-ok] derived range not included at item (occurs (0,unbounded), allowed (0,1))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDiagnosticf(t *testing.T) {
	d := NewDiagnosticf(ErrOccursInvalidValue, "/choice", "invalid %s value %q", "maxOccurs", "-1")
	if d.Code != string(ErrOccursInvalidValue) {
		t.Fatalf("Code = %q, want %q", d.Code, ErrOccursInvalidValue)
	}
	if d.Message != `invalid maxOccurs value "-1"` {
		t.Fatalf("Message = %q", d.Message)
	}
	if d.Path != "/choice" {
		t.Fatalf("Path = %q, want %q", d.Path, "/choice")
	}
}

func TestDiagnosticListError(t *testing.T) {
	one := Diagnostic{Code: "p-props-correct.2.1", Message: "min greater than max"}
	two := Diagnostic{Code: "cos-all-limited.2", Message: "all group child maxOccurs must be 0 or 1"}

	if got := (DiagnosticList{one}).Error(); got != "[p-props-correct.2.1] min greater than max" {
		t.Fatalf("single Error() = %q", got)
	}
	if got := (DiagnosticList{one, two}).Error(); got != "2 diagnostics, first: [p-props-correct.2.1] min greater than max" {
		t.Fatalf("multiple Error() = %q", got)
	}
	if err := (DiagnosticList{}).Err(); err != nil {
		t.Fatalf("empty Err() = %v, want nil", err)
	}
	if err := (DiagnosticList{one}).Err(); err == nil {
		t.Fatalf("non-empty Err() = nil")
	}
}

func TestAsDiagnostics(t *testing.T) {
	list := DiagnosticList{
		{Code: "p-props-correct.2.1", Message: "min greater than max"},
		{Code: "range-ok", Message: "not included"},
	}
	wrapped := fmt.Errorf("check failed: %w", list)

	got, ok := AsDiagnostics(wrapped)
	if !ok {
		t.Fatalf("AsDiagnostics() ok = false, want true")
	}
	if len(got) != 2 || got[0].Code != "p-props-correct.2.1" || got[1].Code != "range-ok" {
		t.Fatalf("AsDiagnostics() = %v", got)
	}

	single := &Diagnostic{Code: "dtd-syntax", Message: "bad"}
	got, ok = AsDiagnostics(fmt.Errorf("parse: %w", single))
	if !ok || len(got) != 1 || got[0].Code != "dtd-syntax" {
		t.Fatalf("AsDiagnostics(single) = %v, %v", got, ok)
	}

	if _, ok := AsDiagnostics(fmt.Errorf("plain")); ok {
		t.Fatalf("AsDiagnostics(plain) ok = true")
	}
}
