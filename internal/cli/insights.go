package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ekklesia-app/consolida/internal/insight"
	"github.com/ekklesia-app/consolida/internal/schema"
)

// NewInsightsCommand creates the insights command.
func NewInsightsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PipelineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "insights <report-id>",
		Short: "Derive max/min highlights from consolidated groups",
		Long: `Consolidate the entries of a report and derive the configured
max/min highlight callouts over the resulting groups.

The insight configuration comes from the report definition; reports
without one fall back to a default scan over the row count and the
insight-eligible fields.

Example:
  consolida insights asistencia --db datos.db --defs ./reportes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsights(opts, args[0], cmd)
		},
	}
	addPipelineFlags(cmd, opts)
	return cmd
}

func runInsights(opts *PipelineOptions, reportID string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	res, err := runPipeline(commandContext(cmd), opts, reportID)
	if err != nil {
		return err
	}

	fields := make([]schema.FieldDefinition, 0, len(res.Result.NumericFields)+len(res.Result.BooleanFields))
	fields = append(fields, res.Result.NumericFields...)
	fields = append(fields, res.Result.BooleanFields...)
	insights := insight.Derive(res.Result.Groups, fields, res.Definition.Insights)
	return formatter.Success(insights, func(w io.Writer) error {
		if len(insights) == 0 {
			fmt.Fprintln(w, "No hay destacados para este reporte.")
			return nil
		}
		for _, in := range insights {
			fmt.Fprintf(w, "%s\n  %s\n", in.Title, in.Message)
		}
		return nil
	})
}
