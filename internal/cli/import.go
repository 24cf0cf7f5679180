package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ekklesia-app/consolida/internal/store"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Database string
	Name     string
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <report-id> <rows.yaml>",
		Short: "Import report entries from a YAML fixture",
		Long: `Import report entries into the SQLite store.

Rows without an id get a generated UUID; re-importing the same fixture
is idempotent.

Example:
  consolida import --db ./consolida.db celulas ./rows.yaml`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "report display name (defaults to the report id)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runImport(opts *ImportOptions, reportID, fixturePath string, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	rows, err := LoadRowsFixture(fixturePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}
	slog.Debug("fixture loaded", "rows", len(rows), "path", fixturePath)

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := commandContext(cmd)
	name := opts.Name
	if name == "" {
		name = reportID
	}
	if err := st.SaveReport(ctx, reportID, name); err != nil {
		return WrapExitError(ExitCommandError, "failed to save report", err)
	}
	if err := st.SaveEntries(ctx, reportID, rows); err != nil {
		return WrapExitError(ExitCommandError, "failed to save entries", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: out}
	summary := struct {
		Report string `json:"report"`
		Rows   int    `json:"rows"`
	}{Report: reportID, Rows: len(rows)}

	return formatter.Success(summary, func(w io.Writer) error {
		fmt.Fprintf(w, "imported %d row(s) into report %s\n", len(rows), reportID)
		return nil
	})
}
