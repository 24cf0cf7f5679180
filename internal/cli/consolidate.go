package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ekklesia-app/consolida/internal/export"
	"github.com/ekklesia-app/consolida/internal/report"
	"github.com/ekklesia-app/consolida/internal/reportdef"
)

// NewConsolidateCommand creates the consolidate command.
func NewConsolidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PipelineOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "consolidate <report-id>",
		Short: "Consolidate report entries into per-group totals",
		Long: `Consolidate the entries of a report into one row per group value,
plus a TOTAL GENERAL row summing every group.

Rows come from a SQLite database (--db) or a YAML fixture (--rows).
Filters, a reporting period, and a sort order are optional.

Examples:
  consolida consolidate asistencia --db datos.db --defs ./reportes
  consolida consolidate asistencia --rows rows.yaml --defs ./reportes \
    --year 2024 --period-type cuatrimestre --period 2 --sort count:desc`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(opts, args[0], cmd)
		},
	}
	addPipelineFlags(cmd, opts)
	return cmd
}

func runConsolidate(opts *PipelineOptions, reportID string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	res, err := runPipeline(commandContext(cmd), opts, reportID)
	if err != nil {
		return err
	}

	table := export.Build(dimensionLabel(res.Definition, opts.GroupBy), res.Result)
	return formatter.Success(table, func(w io.Writer) error {
		return renderTable(w, table)
	})
}

// dimensionLabel resolves the column header for the grouping
// dimension: the matching field's label when one exists, else the raw
// dimension key.
func dimensionLabel(def reportdef.Definition, groupBy string) string {
	if groupBy == report.DimensionEntidad {
		return "Entidad"
	}
	for _, f := range def.Fields {
		if f.Key == groupBy || f.ID == groupBy {
			return f.DisplayLabel()
		}
	}
	return groupBy
}

func renderTable(w io.Writer, table export.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, h := range table.Headers {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, row := range table.Rows {
		for i, h := range table.Headers {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, formatCell(row[h]))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// formatCell prints numeric cells without a mantissa when they hold a
// whole number, matching how counts read on paper.
func formatCell(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%.2f", n)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
