package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/config"
	"github.com/jacoelho/multiplicity/internal/contentmodel"
)

type fieldView struct {
	Name   string `json:"name" yaml:"name"`
	Occurs string `json:"occurs" yaml:"occurs"`
	Min    string `json:"min" yaml:"min"`
	Max    string `json:"max" yaml:"max"`
	Kind   string `json:"kind" yaml:"kind"`
}

type diagnosticView struct {
	Code     string `json:"code" yaml:"code"`
	Message  string `json:"message" yaml:"message"`
	Path     string `json:"path,omitempty" yaml:"path,omitempty"`
	Actual   string `json:"actual,omitempty" yaml:"actual,omitempty"`
	Expected string `json:"expected,omitempty" yaml:"expected,omitempty"`
}

type modelView struct {
	Name        string           `json:"name" yaml:"name"`
	Base        string           `json:"base,omitempty" yaml:"base,omitempty"`
	Fields      []fieldView      `json:"fields" yaml:"fields"`
	Diagnostics []diagnosticView `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
	Mixed       bool             `json:"mixed" yaml:"mixed"`
}

func newModelView(name, base string, res *contentmodel.Result, diags xerrors.DiagnosticList) modelView {
	v := modelView{Name: name, Base: base, Mixed: res.Mixed, Fields: []fieldView{}}
	for _, f := range res.Fields() {
		v.Fields = append(v.Fields, fieldView{
			Name:   f.Name,
			Occurs: f.Occurs.String(),
			Min:    f.Occurs.Min().String(),
			Max:    f.Occurs.MaxString(),
			Kind:   f.Kind.String(),
		})
	}
	for _, d := range diags {
		v.Diagnostics = append(v.Diagnostics, diagnosticView{
			Code:     d.Code,
			Message:  d.Message,
			Path:     d.Path,
			Actual:   d.Actual,
			Expected: d.Expected,
		})
	}
	return v
}

// render writes payload in the configured format. text renders via the given function.
func (a *app) render(payload any, text func(io.Writer) error) error {
	switch a.cfg.Output.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case config.FormatYAML:
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return text(a.stdout)
	}
}

func writeModelsText(w io.Writer, models []modelView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, m := range models {
		if i > 0 {
			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
		}
		header := m.Name
		if m.Base != "" {
			header += " (restricts " + m.Base + ")"
		}
		if m.Mixed {
			header += " [mixed]"
		}
		if _, err := fmt.Fprintln(tw, header); err != nil {
			return err
		}
		for _, f := range m.Fields {
			if _, err := fmt.Fprintf(tw, "  %s\t%s\t%s\n", f.Name, f.Occurs, f.Kind); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// reportDiagnostics writes diagnostics to stderr in text mode and decides the outcome.
// In strict mode any diagnostic fails the command.
func (a *app) reportDiagnostics(diags xerrors.DiagnosticList) error {
	if len(diags) == 0 {
		return nil
	}
	if a.cfg.Output.Format == config.FormatText {
		for _, d := range diags {
			if err := writeln(a.stderr, d.Error()); err != nil {
				return err
			}
		}
	}
	if a.cfg.Occurs.Strict {
		return errDiagnosticsReported
	}
	return nil
}
