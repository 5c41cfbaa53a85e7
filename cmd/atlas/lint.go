package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/annotation/errors"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/annotation/validator"
	"slr-hq/atlas/pkg/cli"
)

var lintFlags struct {
	file   string
	info   bool
	format string
	parser parserFlags
}

var lintCmd = &cobra.Command{
	Use:   "lint [column...]",
	Short: "Report annotation problems",
	Long: `Check annotation columns for malformed blocks and inconsistent keys.

The lint command parses every cell and reports:
  - Unterminated blocks and stray closing brackets
  - Blocks whose key is missing or un-specified
  - Keys that differ from a more common key only by case or a typo
  - Columns mixing keyed and bare cells

Without arguments every configured column is checked. Errors always fail
the run; with --strict warnings fail it too.

Examples:
  # Lint every configured column
  atlas lint

  # Lint two columns, warnings as errors
  atlas lint rq1_gates rq3_oracles --strict

  # JSON output for CI
  atlas lint --format json`,
	RunE: lintColumns,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "dataset CSV (default: dataset.path)")
	lintCmd.Flags().BoolVar(&lintFlags.info, "info", false, "include informational diagnostics")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
	lintFlags.parser.register(lintCmd)
}

// LintResult is the lint outcome of one column.
type LintResult struct {
	Column      string           `json:"column"`
	Header      string           `json:"header"`
	Cells       int              `json:"cells"`
	Kinds       map[string]int   `json:"kinds"`
	Failed      bool             `json:"failed"`
	Diagnostics []LintDiagnostic `json:"diagnostics,omitempty"`
}

// LintDiagnostic is a single reported problem.
type LintDiagnostic struct {
	Row        int    `json:"row"`
	Offset     int    `json:"offset"`
	Type       string `json:"type"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Context    string `json:"context,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

type lintReport []LintResult

func (r lintReport) WriteText(w io.Writer) error {
	for _, res := range r {
		status := "✓"
		if res.Failed {
			status = "✗"
		}
		fmt.Fprintf(w, "%s %s (%d cells)\n", status, res.Header, res.Cells)
		for _, d := range res.Diagnostics {
			fmt.Fprintf(w, "  %s %s:%d:%d [%s] %s\n", d.Severity, res.Column, d.Row, d.Offset, d.Type, d.Message)
			if d.Context != "" {
				fmt.Fprintf(w, "      %s\n", d.Context)
			}
			if d.Suggestion != "" {
				fmt.Fprintf(w, "      %s\n", d.Suggestion)
			}
		}
	}
	return nil
}

func lintColumns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(lintFlags.format, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	opts, err := lintFlags.parser.options(cmd, cfg)
	if err != nil {
		return err
	}

	columns, err := columnNames(cfg, args, nil)
	if err != nil {
		return err
	}
	table, err := loadTable(cfg, lintFlags.file)
	if err != nil {
		return err
	}

	v := validator.NewValidator(parser.NewParserWithOptions(opts)).WithInfo(lintFlags.info)

	report := make(lintReport, 0, len(columns))
	failed := 0
	for _, column := range columns {
		header, raw, err := resolveColumn(cfg, table, column)
		if err != nil {
			return err
		}

		r := v.Validate(column, raw)

		res := LintResult{
			Column: column,
			Header: header,
			Cells:  r.Cells,
			Kinds:  make(map[string]int, len(r.Kinds)),
			// --strict also fails the column on warnings.
			Failed: r.Failed(lintFlags.parser.strict),
		}
		for kind, n := range r.Kinds {
			res.Kinds[kind.String()] = n
		}
		for _, d := range r.Diagnostics.Errors {
			res.Diagnostics = append(res.Diagnostics, lintDiagnostic(d))
		}
		if res.Failed {
			failed++
		}
		report = append(report, res)
	}

	if err := writeOutput(cmd, format, report); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d columns failed: %w", failed, len(columns), cli.ErrFindings)
	}
	return nil
}

func lintDiagnostic(d *errors.Error) LintDiagnostic {
	return LintDiagnostic{
		Row:        d.Location.Row,
		Offset:     d.Location.Offset,
		Type:       string(d.Type),
		Severity:   string(d.Severity),
		Message:    d.Message,
		Context:    d.Context,
		Suggestion: d.Suggestion,
	}
}
