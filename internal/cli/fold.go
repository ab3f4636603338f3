package cli

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacoelho/multiplicity/internal/contentmodel"
	"github.com/jacoelho/multiplicity/internal/dtd"
)

func newFoldCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fold <content-spec>",
		Short: "Fold a DTD content specification",
		Long: `Fold a DTD element content specification into one occurrence range per
symbol and report the field kind each range calls for.

Examples:
  occurs fold "(title, (author | editor)+, note*)"
  occurs fold --format json "(#PCDATA | em)*"`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFold(args[0])
		},
	}
}

func (a *app) runFold(expr string) error {
	particle, err := dtd.Parse(expr)
	if err != nil {
		return err
	}
	diags := contentmodel.Check(particle, a.cfg.Occurs.Limit)
	res := contentmodel.Fold(particle)
	a.logger.Debug("Folded content specification",
		slog.String("spec", expr),
		slog.Int("fields", res.Len()),
		slog.Int("diagnostics", len(diags)))

	view := newModelView(expr, "", res, diags)
	if err := a.render(view, func(w io.Writer) error {
		return writeModelsText(w, []modelView{view})
	}); err != nil {
		return err
	}
	return a.reportDiagnostics(diags)
}
