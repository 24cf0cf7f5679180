package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekklesia-app/consolida/internal/consolidate"
	"github.com/ekklesia-app/consolida/internal/filter"
	"github.com/ekklesia-app/consolida/internal/period"
	"github.com/ekklesia-app/consolida/internal/report"
	"github.com/ekklesia-app/consolida/internal/reportdef"
	"github.com/ekklesia-app/consolida/internal/store"
)

// PipelineOptions holds the flags shared by the consolidate and
// insights commands: where rows and definitions come from, and how to
// filter, group, and sort them.
type PipelineOptions struct {
	*RootOptions
	Database   string
	RowsFile   string
	DefsDir    string
	GroupBy    string
	FilterFile string
	Sort       string
	Year       int
	PeriodType string
	Period     int
}

func addPipelineFlags(cmd *cobra.Command, opts *PipelineOptions) {
	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")
	cmd.Flags().StringVar(&opts.RowsFile, "rows", "", "path to a YAML rows fixture (alternative to --db)")
	cmd.Flags().StringVar(&opts.DefsDir, "defs", "", "path to CUE report definitions (required)")
	cmd.Flags().StringVar(&opts.GroupBy, "group-by", report.DimensionEntidad, "grouping dimension")
	cmd.Flags().StringVar(&opts.FilterFile, "filter", "", "path to a YAML filter set")
	cmd.Flags().StringVar(&opts.Sort, "sort", "", "sort spec, e.g. label:asc or count:desc")
	cmd.Flags().IntVar(&opts.Year, "year", 0, "reporting year for --period-type")
	cmd.Flags().StringVar(&opts.PeriodType, "period-type", "", "period granularity (year|cuatrimestre|trimestre|month)")
	cmd.Flags().IntVar(&opts.Period, "period", period.None, "period index (cuatrimestre 1-3, trimestre 1-4, month 0-11)")
	_ = cmd.MarkFlagRequired("defs")
}

// pipelineResult bundles everything the commands render.
type pipelineResult struct {
	Definition reportdef.Definition
	Result     consolidate.Result
}

// runPipeline loads the definition and rows, applies filters and the
// period range, consolidates, and sorts.
func runPipeline(ctx context.Context, opts *PipelineOptions, reportID string) (*pipelineResult, error) {
	defs, errs := reportdef.LoadDir(opts.DefsDir, reportdef.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, WrapExitError(ExitCommandError, "failed to load definitions", errs[0])
	}
	def, ok := defs.ByID(reportID)
	if !ok {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("report %q not defined in %s", reportID, opts.DefsDir))
	}

	rows, err := loadRows(ctx, opts, reportID)
	if err != nil {
		return nil, err
	}
	slog.Debug("rows loaded", "report", reportID, "rows", len(rows))

	set := filter.Set{}
	if opts.FilterFile != "" {
		set, err = LoadFilterSet(opts.FilterFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load filters", err)
		}
	}
	set = applyPeriod(set, opts)

	filtered := filter.Apply(rows, def.Fields, set)
	res := consolidate.Consolidate(filtered, def.Fields, opts.GroupBy)

	if opts.Sort != "" {
		key, dir, err := parseSortSpec(opts.Sort)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid sort spec", err)
		}
		res.Groups = consolidate.Sort(res.Groups, key, dir)
	}

	return &pipelineResult{Definition: def, Result: res}, nil
}

func loadRows(ctx context.Context, opts *PipelineOptions, reportID string) ([]report.Row, error) {
	switch {
	case opts.RowsFile != "":
		rows, err := LoadRowsFixture(opts.RowsFile)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load rows fixture", err)
		}
		return rows, nil
	case opts.Database != "":
		st, err := store.Open(opts.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
		rows, err := st.LoadEntries(ctx, reportID)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load entries", err)
		}
		return rows, nil
	default:
		return nil, NewExitError(ExitCommandError, "either --db or --rows is required")
	}
}

// applyPeriod layers the resolved period range over the stored
// filters. An incomplete period selection leaves existing bounds
// untouched.
func applyPeriod(set filter.Set, opts *PipelineOptions) filter.Set {
	if opts.PeriodType == "" {
		return set
	}
	r, ok := period.Resolve(opts.Year, period.Type(opts.PeriodType), opts.Period)
	if !ok {
		return set
	}
	out := set.Clone()
	out[filter.KeyCreatedFrom] = r.FromString()
	out[filter.KeyCreatedTo] = r.ToString()
	return out
}

func parseSortSpec(spec string) (string, consolidate.Direction, error) {
	key, dirStr, found := strings.Cut(spec, ":")
	if key == "" {
		return "", "", fmt.Errorf("sort spec %q has no key", spec)
	}
	if !found || dirStr == "" {
		return key, consolidate.Ascending, nil
	}
	switch consolidate.Direction(dirStr) {
	case consolidate.Ascending:
		return key, consolidate.Ascending, nil
	case consolidate.Descending:
		return key, consolidate.Descending, nil
	default:
		return "", "", fmt.Errorf("sort direction %q must be asc or desc", dirStr)
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
