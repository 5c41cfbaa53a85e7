package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/export"
	"slr-hq/atlas/pkg/store"
)

var parseFlags struct {
	file   string
	column string
	format string
	parser parserFlags
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse an annotation column",
	Long: `Parse every cell of one column into structured values.

Keyed cells become mappings ("Shots: 200"), bare cells become tag lists.
Sentinel values such as [un-specified] are dropped unless asked otherwise.

Examples:
  # Parse a column by alias
  atlas parse --column rq1_gates

  # Parse a column of another export by header, keeping sentinels
  atlas parse --file export.csv --column "RQ1 Gates" --keep-invalid-keys

  # Fail on unterminated blocks and emit JSON
  atlas parse --column rq1_gates --strict --format json`,
	RunE: parseColumn,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseFlags.file, "file", "f", "", "dataset CSV (default: dataset.path)")
	parseCmd.Flags().StringVar(&parseFlags.column, "column", "", "column alias or header")
	parseCmd.Flags().StringVar(&parseFlags.format, "format", "text", "output format: text, json, csv")
	parseFlags.parser.register(parseCmd)
}

func parseColumn(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if parseFlags.column == "" {
		return cli.NewConfigError("--column", "a column alias or header is required")
	}
	format, err := cli.ParseFormat(parseFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}
	opts, err := parseFlags.parser.options(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := loadTable(cfg, parseFlags.file)
	if err != nil {
		return err
	}
	header, raw, err := resolveColumn(cfg, table, parseFlags.column)
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	values, err := parser.NewParserWithOptions(opts).ParseColumnContext(ctx, parseFlags.column, raw)
	if err != nil {
		return cli.NewCommandError("parse", err)
	}

	cells := make([]store.Cell, len(values))
	for i, v := range values {
		cells[i] = store.Cell{Row: i + 1, Raw: raw[i], Value: v}
	}

	out := cmd.OutOrStdout()
	switch format {
	case cli.FormatJSON, cli.FormatCSV:
		exporter, err := export.ForFormat(string(format), true)
		if err != nil {
			return err
		}
		return exporter.Export(ctx, cells, out)
	}

	_, ids, _ := resolveColumn(cfg, table, cfg.Dataset.IDColumn)
	fmt.Fprintf(out, "%s (%d cells)\n", header, len(cells))
	w := newTabWriter(out)
	for i, c := range cells {
		label := strconv.Itoa(c.Row)
		if ids != nil {
			label = ids[i]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", label, c.Value.Kind, formatValue(c.Value))
	}
	return w.Flush()
}
