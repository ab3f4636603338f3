// Package modelfile loads named content models from YAML or JSONC documents.
//
// A document lists models, each given either as a DTD content specification
// or as a particle tree using XSD minOccurs/maxOccurs attributes:
//
//	models:
//	  - name: book
//	    dtd: "(title, (author | editor)+, note*)"
//	  - name: order
//	    particle:
//	      sequence:
//	        - element: id
//	        - element: line
//	          maxOccurs: unbounded
//	  - name: shortOrder
//	    base: order
//	    particle:
//	      sequence:
//	        - element: id
//	        - element: line
//	          maxOccurs: 10
//
// A model with a base is checked as a restriction of the named model.
package modelfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/multiplicity"
	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/contentmodel"
	"github.com/jacoelho/multiplicity/internal/dtd"
	"github.com/jacoelho/multiplicity/internal/occursparse"
)

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".jsonc":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported model file extension %q", filepath.Ext(path))
	}
}

// Options controls model loading.
type Options struct {
	// OccursLimit rejects occurrence values above it. Zero disables the check.
	OccursLimit uint64
}

// Model is a named, resolved content model.
type Model struct {
	Particle contentmodel.Particle
	Name     string
	Base     string
}

// Document is a loaded model document.
type Document struct {
	Models []Model
}

// Lookup returns the model called name.
func (d *Document) Lookup(name string) (Model, bool) {
	for _, m := range d.Models {
		if m.Name == name {
			return m, true
		}
	}
	return Model{}, false
}

// Load reads and resolves the model document at path.
func Load(path string, opts Options) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file %s: %w", path, err)
	}
	doc, err := Parse(data, format, opts)
	if err != nil {
		return nil, fmt.Errorf("load model file %s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and resolves a model document.
func Parse(data []byte, format Format, opts Options) (*Document, error) {
	var raw rawDocument
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported model format %q", format)
	}
	return resolve(&raw, opts)
}

type rawDocument struct {
	Models []rawModel `yaml:"models" json:"models"`
}

type rawModel struct {
	Particle *rawNode `yaml:"particle" json:"particle"`
	Name     string   `yaml:"name" json:"name"`
	Base     string   `yaml:"base" json:"base"`
	DTD      string   `yaml:"dtd" json:"dtd"`
}

type rawNode struct {
	MinOccurs *occursValue `yaml:"minOccurs" json:"minOccurs"`
	MaxOccurs *occursValue `yaml:"maxOccurs" json:"maxOccurs"`
	Element   string       `yaml:"element" json:"element"`
	Sequence  []rawNode    `yaml:"sequence" json:"sequence"`
	Choice    []rawNode    `yaml:"choice" json:"choice"`
	All       []rawNode    `yaml:"all" json:"all"`
	Any       bool         `yaml:"any" json:"any"`
	Text      bool         `yaml:"text" json:"text"`
}

// occursValue is a minOccurs/maxOccurs lexical value written as a number or a string.
type occursValue string

// UnmarshalYAML implements yaml.Unmarshaler for occursValue.
func (v *occursValue) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: occurrence value must be a scalar", value.Line)
	}
	*v = occursValue(value.Value)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for occursValue.
func (v *occursValue) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = occursValue(s)
		return nil
	}
	*v = occursValue(data)
	return nil
}

func (v *occursValue) attr() occursparse.Attr {
	if v == nil {
		return occursparse.Attr{}
	}
	return occursparse.Present(string(*v))
}

func resolve(raw *rawDocument, opts Options) (*Document, error) {
	r := &resolver{opts: opts}
	doc := &Document{}
	seen := make(map[string]bool, len(raw.Models))
	for i, rm := range raw.Models {
		path := fmt.Sprintf("models[%d]", i)
		if rm.Name == "" {
			r.fail(path, "model name is required")
			continue
		}
		if seen[rm.Name] {
			r.fail(path, fmt.Sprintf("duplicate model name %q", rm.Name))
			continue
		}
		seen[rm.Name] = true

		var particle contentmodel.Particle
		switch {
		case rm.DTD != "" && rm.Particle != nil:
			r.fail(path, "model must set exactly one of dtd or particle")
			continue
		case rm.DTD != "":
			p, err := dtd.Parse(rm.DTD)
			if err != nil {
				r.wrap(path+".dtd", err)
				continue
			}
			particle = p
		case rm.Particle != nil:
			particle = r.node(rm.Particle, path+".particle")
		default:
			r.fail(path, "model must set one of dtd or particle")
			continue
		}
		doc.Models = append(doc.Models, Model{Name: rm.Name, Base: rm.Base, Particle: particle})
	}

	for i, m := range doc.Models {
		if m.Base != "" && !seen[m.Base] {
			r.fail(fmt.Sprintf("models[%d].base", i), fmt.Sprintf("unknown base model %q", m.Base))
		}
	}
	if len(r.diags) > 0 {
		return nil, r.diags
	}
	return doc, nil
}

type resolver struct {
	diags xerrors.DiagnosticList
	opts  Options
}

func (r *resolver) fail(path, msg string) {
	r.diags = append(r.diags, xerrors.NewDiagnostic(xerrors.ErrModelInvalid, msg, path))
}

func (r *resolver) wrap(path string, err error) {
	if diags, ok := xerrors.AsDiagnostics(err); ok {
		for _, d := range diags {
			if d.Path == "" {
				d.Path = path
			}
			r.diags = append(r.diags, d)
		}
		return
	}
	code := xerrors.ErrOccursInvalidValue
	if errors.Is(err, occursparse.ErrOccursOverflow) {
		code = xerrors.ErrOccursOverflow
	}
	r.diags = append(r.diags, xerrors.NewDiagnostic(code, err.Error(), path))
}

func (r *resolver) node(n *rawNode, path string) contentmodel.Particle {
	kinds := 0
	for _, set := range []bool{n.Element != "", n.Sequence != nil, n.Choice != nil, n.All != nil, n.Any, n.Text} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		r.fail(path, "particle must set exactly one of element, sequence, choice, all, any or text")
		return nil
	}
	if n.Text {
		if n.MinOccurs != nil || n.MaxOccurs != nil {
			r.fail(path, "text particle cannot carry minOccurs or maxOccurs")
		}
		return contentmodel.Text{}
	}

	occurs, err := occursparse.ParseAttrs(n.MinOccurs.attr(), n.MaxOccurs.attr(), occursparse.Options{Limit: r.opts.OccursLimit})
	if err != nil {
		r.wrap(path, err)
		return nil
	}

	switch {
	case n.Element != "":
		return &contentmodel.Element{Name: n.Element, Occurrence: occurs}
	case n.Any:
		return &contentmodel.Wildcard{Occurrence: occurs}
	case n.Sequence != nil:
		return r.group(contentmodel.Sequence, n.Sequence, occurs, path+".sequence")
	case n.Choice != nil:
		return r.group(contentmodel.Choice, n.Choice, occurs, path+".choice")
	default:
		return r.group(contentmodel.All, n.All, occurs, path+".all")
	}
}

func (r *resolver) group(kind contentmodel.GroupKind, children []rawNode, occurs *multiplicity.Multiplicity, path string) contentmodel.Particle {
	g := &contentmodel.Group{Kind: kind, Occurrence: occurs}
	for i := range children {
		g.Particles = append(g.Particles, r.node(&children[i], fmt.Sprintf("%s[%d]", path, i)))
	}
	return g
}
