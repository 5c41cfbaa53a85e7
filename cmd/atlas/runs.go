package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/export"
	"slr-hq/atlas/pkg/store"
)

var runsFlags struct {
	source string
	column string
	since  time.Duration
	limit  int
	offset int
	format string
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect stored parse runs",
	Long: `List and show the parse runs kept in the run store.

Examples:
  # Most recent runs
  atlas runs list --limit 10

  # Runs of one column during the last week
  atlas runs list --column rq1_gates --since 168h

  # Cells of a run as CSV
  atlas runs show 2b7e... --format csv`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List runs, newest first",
	RunE:  listRuns,
}

var runsShowCmd = &cobra.Command{
	Use:   "show RUN_ID",
	Short: "Show the cells of a run",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd)

	runsListCmd.Flags().StringVar(&runsFlags.source, "source", "", "filter by dataset file")
	runsListCmd.Flags().StringVar(&runsFlags.column, "column", "", "filter by column alias")
	runsListCmd.Flags().DurationVar(&runsFlags.since, "since", 0, "only runs younger than this")
	runsListCmd.Flags().IntVar(&runsFlags.limit, "limit", 20, "max results, 0 for all")
	runsListCmd.Flags().IntVar(&runsFlags.offset, "offset", 0, "pagination offset")
	runsListCmd.Flags().StringVar(&runsFlags.format, "format", "text", "output format: text, json")

	runsShowCmd.Flags().StringVar(&runsFlags.format, "format", "text", "output format: text, json, csv")
}

type runList struct {
	runs  []*store.Run
	total int64
	now   time.Time
}

func (l runList) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Total int64        `json:"total"`
		Runs  []*store.Run `json:"runs"`
	}{l.total, l.runs})
}

func (l runList) WriteText(w io.Writer) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "ID\tCOLUMN\tCELLS\tDIAGNOSTICS\tCREATED")
	for _, r := range l.runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Column,
			humanize.Comma(int64(r.CellCount)),
			humanize.Comma(int64(r.DiagnosticCount)),
			humanize.RelTime(r.CreatedAt, l.now, "ago", "from now"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %s runs\n", len(l.runs), humanize.Comma(l.total))
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(runsFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}

	storage, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	now := time.Now()
	filter := &store.Filter{
		Source: runsFlags.source,
		Column: runsFlags.column,
		Limit:  runsFlags.limit,
		Offset: runsFlags.offset,
	}
	if runsFlags.since > 0 {
		after := now.Add(-runsFlags.since)
		filter.After = &after
	}

	ctx := commandContext(cmd)
	runs, err := storage.List(ctx, filter)
	if err != nil {
		return err
	}
	total, err := storage.Count(ctx, &store.Filter{Source: filter.Source, Column: filter.Column, After: filter.After})
	if err != nil {
		return err
	}

	return writeOutput(cmd, format, runList{runs: runs, total: total, now: now})
}

func showRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(runsFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}

	storage, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	ctx := commandContext(cmd)
	run, err := storage.Get(ctx, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case cli.FormatJSON:
		return export.NewJSONExporter(true).ExportRuns(ctx, []*store.Run{run}, out)
	case cli.FormatCSV:
		return export.NewCSVExporter(true).Export(ctx, run.Cells, out)
	}

	fmt.Fprintf(out, "Run %s\n", run.ID)
	fmt.Fprintf(out, "  Source:   %s\n", run.Source)
	fmt.Fprintf(out, "  Column:   %s (%s)\n", run.Column, run.Header)
	fmt.Fprintf(out, "  Created:  %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(out, "  Checksum: %s\n", run.Checksum)
	fmt.Fprintf(out, "  Cells:    %d, %d diagnostics\n\n", run.CellCount, run.DiagnosticCount)

	tw := newTabWriter(out)
	for _, c := range run.Cells {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", c.Row, c.Value.Kind, formatValue(c.Value))
		for _, d := range c.Diagnostics {
			fmt.Fprintf(tw, "\t%s\t[%s] %s\n", d.Severity, d.Type, d.Message)
		}
	}
	return tw.Flush()
}
