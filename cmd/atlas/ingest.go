package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/ingest"
)

var ingestFlags struct {
	file        string
	force       bool
	concurrency int
	quiet       bool
	format      string
	parser      parserFlags
}

var ingestCmd = &cobra.Command{
	Use:   "ingest [column...]",
	Short: "Parse columns and store the runs",
	Long: `Parse columns and store one run per column in the run store.

A column whose cells and parsing policy are unchanged since its last run
is not stored again unless --force is given. Without arguments the
watch.columns aliases are ingested, or every configured alias.

Examples:
  atlas ingest
  atlas ingest rq1_gates rq3_oracles --force`,
	RunE: ingestColumns,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestFlags.file, "file", "f", "", "dataset CSV (default: dataset.path)")
	ingestCmd.Flags().BoolVar(&ingestFlags.force, "force", false, "store runs even when unchanged")
	ingestCmd.Flags().IntVar(&ingestFlags.concurrency, "concurrency", ingest.DefaultConcurrency, "columns parsed at once")
	ingestCmd.Flags().BoolVarP(&ingestFlags.quiet, "quiet", "q", false, "hide the progress bar")
	ingestCmd.Flags().StringVar(&ingestFlags.format, "format", "text", "output format: text, json")
	ingestFlags.parser.register(ingestCmd)
}

// IngestSummary describes one ingested column.
type IngestSummary struct {
	Column      string `json:"column"`
	Header      string `json:"header"`
	RunID       string `json:"run_id"`
	Cells       int    `json:"cells"`
	Diagnostics int    `json:"diagnostics"`
	Stored      bool   `json:"stored"`
}

type ingestReport []IngestSummary

func (r ingestReport) WriteText(w io.Writer) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "COLUMN\tRUN\tCELLS\tDIAGNOSTICS\tSTATUS")
	for _, s := range r {
		status := "stored"
		if !s.Stored {
			status = "unchanged"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", s.Column, s.RunID, s.Cells, s.Diagnostics, status)
	}
	return tw.Flush()
}

func ingestColumns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(ingestFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	opts, err := ingestFlags.parser.options(cmd, cfg)
	if err != nil {
		return err
	}
	columns, err := columnNames(cfg, args, cfg.Watch.Columns)
	if err != nil {
		return err
	}

	table, err := loadTable(cfg, ingestFlags.file)
	if err != nil {
		return err
	}
	storage, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	ingester := ingest.NewIngester(parser.NewParserWithOptions(opts), storage).
		WithConcurrency(ingestFlags.concurrency).
		WithForce(ingestFlags.force)

	var progress cli.ProgressReporter
	if !ingestFlags.quiet {
		progress = cli.NewProgressReporter(cmd.ErrOrStderr(), "columns")
		progress.Start(int64(len(columns)))
		ingester.WithProgress(func(done, total int) {
			progress.Update(int64(done))
		})
	}

	results, err := ingester.Ingest(commandContext(cmd), table, columns, cfg.Dataset.Columns)
	if err != nil {
		if progress != nil {
			progress.Error(err)
		}
		return cli.NewCommandError("ingest", err)
	}
	if progress != nil {
		progress.Finish()
	}

	return writeOutput(cmd, format, summarize(results))
}

func summarize(results []ingest.Result) ingestReport {
	report := make(ingestReport, len(results))
	for i, res := range results {
		report[i] = IngestSummary{
			Column:      res.Column,
			Header:      res.Header,
			RunID:       res.Run.ID,
			Cells:       res.Run.CellCount,
			Diagnostics: res.Run.DiagnosticCount,
			Stored:      !res.Skipped,
		}
	}
	return report
}
