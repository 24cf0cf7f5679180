package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ekklesia-app/consolida/internal/reportdef"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <defs-dir>",
		Short: "Validate report definitions",
		Long: `Validate the CUE report definitions in a directory.

All errors are collected and reported with file positions and codes.

Example:
  consolida validate ./reportes`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd.OutOrStdout())
		},
	}
	return cmd
}

func runValidate(opts *ValidateOptions, dir string, out io.Writer) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: out}

	result, errs := reportdef.LoadDir(dir, reportdef.LoadModeCollectAll)
	if len(errs) > 0 {
		details := make([]string, len(errs))
		for i, err := range errs {
			details[i] = err.Error()
		}
		if err := formatter.Error("E-VALIDATE", fmt.Sprintf("%d definition error(s)", len(errs)), details); err != nil {
			return err
		}
		if opts.Format == "text" {
			for _, d := range details {
				fmt.Fprintf(out, "  %s\n", d)
			}
		}
		return NewExitError(ExitFailure, "definition validation failed")
	}

	summary := struct {
		Files   int      `json:"files"`
		Reports []string `json:"reports"`
	}{Files: result.FileCount}
	for _, d := range result.Definitions {
		summary.Reports = append(summary.Reports, d.ID)
	}

	return formatter.Success(summary, func(w io.Writer) error {
		fmt.Fprintf(w, "OK: %d file(s), %d report definition(s)\n", result.FileCount, len(result.Definitions))
		for _, d := range result.Definitions {
			fmt.Fprintf(w, "  %s: %s (%d fields)\n", d.ID, d.Name, len(d.Fields))
		}
		return nil
	})
}
