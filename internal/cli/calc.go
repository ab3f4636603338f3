package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jacoelho/multiplicity"
	"github.com/jacoelho/multiplicity/internal/occursparse"
)

type calcView struct {
	Op       string   `json:"op" yaml:"op"`
	Operands []string `json:"operands" yaml:"operands"`
	Result   string   `json:"result" yaml:"result"`
}

type calcOp struct {
	binary func(a, b *multiplicity.Multiplicity) string
	unary  func(a *multiplicity.Multiplicity) string
}

var calcOps = map[string]calcOp{
	"choice": {binary: func(a, b *multiplicity.Multiplicity) string {
		return multiplicity.Choice(a, b).String()
	}},
	"group": {binary: func(a, b *multiplicity.Multiplicity) string {
		return multiplicity.Group(a, b).String()
	}},
	"multiply": {binary: func(a, b *multiplicity.Multiplicity) string {
		return multiplicity.Multiply(a, b).String()
	}},
	"includes": {binary: func(a, b *multiplicity.Multiplicity) string {
		return strconv.FormatBool(a.Includes(b))
	}},
	"one-or-more": {unary: func(a *multiplicity.Multiplicity) string {
		return multiplicity.OneOrMore(a).String()
	}},
	"optional": {unary: func(a *multiplicity.Multiplicity) string {
		return a.MakeOptional().String()
	}},
	"repeated": {unary: func(a *multiplicity.Multiplicity) string {
		return a.MakeRepeated().String()
	}},
}

func newCalcCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "calc <op> <a> [b]",
		Short: "Apply one multiplicity operation",
		Long: `Apply a multiplicity operation to one or two operands. Operands are
written as min,max or (min,max), or as one of the indicators ? * +.

Binary operations: choice, group, multiply, includes
Unary operations:  one-or-more, optional, repeated

Examples:
  occurs calc group "1,1" "?"
  occurs calc multiply "(0,0)" "*"
  occurs calc includes "1,3" "1,2"`,
		Args: rangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCalc(args[0], args[1:])
		},
	}
}

func (a *app) runCalc(name string, operands []string) error {
	op, ok := calcOps[name]
	if !ok {
		return usageError{err: fmt.Errorf("unknown operation %q", name)}
	}
	if op.binary != nil && len(operands) != 2 {
		return usageError{err: fmt.Errorf("%s takes two operands, got %d", name, len(operands))}
	}
	if op.unary != nil && len(operands) != 1 {
		return usageError{err: fmt.Errorf("%s takes one operand, got %d", name, len(operands))}
	}

	values := make([]*multiplicity.Multiplicity, len(operands))
	rendered := make([]string, len(operands))
	for i, text := range operands {
		m, err := occursparse.ParsePair(text)
		if err != nil {
			return usageError{err: err}
		}
		values[i] = m
		rendered[i] = m.String()
	}

	var result string
	if op.binary != nil {
		result = op.binary(values[0], values[1])
	} else {
		result = op.unary(values[0])
	}
	a.logger.Debug("Computed multiplicity operation", "op", name, "result", result)

	view := calcView{Op: name, Operands: rendered, Result: result}
	return a.render(view, func(w io.Writer) error {
		return writeln(w, result)
	})
}
