package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	xerrors "github.com/jacoelho/multiplicity/errors"
	"github.com/jacoelho/multiplicity/internal/contentmodel"
	"github.com/jacoelho/multiplicity/internal/modelfile"
)

func newModelCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "model <file>",
		Short: "Check and fold every model of a YAML or JSONC model document",
		Long: `Load a model document, check the occurrence constraints of each model,
check restrictions against their base models and fold each into per-symbol
occurrence ranges.

Examples:
  occurs model models.yaml
  occurs model --strict --format yaml models.jsonc`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runModel(args[0])
		},
	}
}

func (a *app) runModel(path string) error {
	doc, err := modelfile.Load(path, modelfile.Options{OccursLimit: a.cfg.Occurs.Limit})
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded model document", slog.String("path", path), slog.Int("models", len(doc.Models)))

	var all xerrors.DiagnosticList
	views := make([]modelView, 0, len(doc.Models))
	for _, m := range doc.Models {
		diags := contentmodel.Check(m.Particle, a.cfg.Occurs.Limit)
		if m.Base != "" {
			base, ok := doc.Lookup(m.Base)
			if !ok {
				return fmt.Errorf("model %s: unknown base model %q", m.Name, m.Base)
			}
			diags = append(diags, contentmodel.CheckRestriction(base.Particle, m.Particle)...)
		}
		for i := range diags {
			diags[i].Path = m.Name + ":" + diags[i].Path
		}
		res := contentmodel.Fold(m.Particle)
		a.logger.Debug("Folded model",
			slog.String("model", m.Name),
			slog.Int("fields", res.Len()),
			slog.Int("diagnostics", len(diags)))
		views = append(views, newModelView(m.Name, m.Base, res, diags))
		all = append(all, diags...)
	}

	if err := a.render(views, func(w io.Writer) error {
		return writeModelsText(w, views)
	}); err != nil {
		return err
	}
	return a.reportDiagnostics(all)
}
