package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/aggregate"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/cli"
)

var overlapFlags struct {
	file   string
	format string
	parser parserFlags
}

var overlapCmd = &cobra.Command{
	Use:   "overlap column column [column...]",
	Short: "Count papers per combination of answered columns",
	Long: `Count, for every combination of the given columns, the papers whose
cells are non-empty in exactly those columns. The output is the input of
an UpSet plot.

Examples:
  atlas overlap rq1_gates rq2_tools rq3_oracles
  atlas overlap rq1_gates rq2_tools --format csv > upset.csv`,
	Args: cobra.MinimumNArgs(2),
	RunE: columnOverlap,
}

func init() {
	rootCmd.AddCommand(overlapCmd)

	overlapCmd.Flags().StringVarP(&overlapFlags.file, "file", "f", "", "dataset CSV (default: dataset.path)")
	overlapCmd.Flags().StringVar(&overlapFlags.format, "format", "text", "output format: text, json, csv")
	overlapFlags.parser.register(overlapCmd)
}

// OverlapResult lists column combinations, most common first.
type OverlapResult struct {
	Columns      []string                `json:"columns"`
	Combinations []aggregate.Combination `json:"combinations"`
}

func (o OverlapResult) Header() []string { return append(append([]string{}, o.Columns...), "count") }

// Rows marks membership with 1 and 0, one row per combination.
func (o OverlapResult) Rows() [][]string {
	rows := make([][]string, len(o.Combinations))
	for i, c := range o.Combinations {
		member := make(map[string]bool, len(c.Columns))
		for _, name := range c.Columns {
			member[name] = true
		}
		row := make([]string, 0, len(o.Columns)+1)
		for _, name := range o.Columns {
			if member[name] {
				row = append(row, "1")
			} else {
				row = append(row, "0")
			}
		}
		rows[i] = append(row, strconv.Itoa(c.Count))
	}
	return rows
}

func (o OverlapResult) WriteText(w io.Writer) error {
	tw := newTabWriter(w)
	for _, c := range o.Combinations {
		names := strings.Join(c.Columns, " & ")
		if names == "" {
			names = "(none)"
		}
		fmt.Fprintf(tw, "%d\t%s\n", c.Count, names)
	}
	return tw.Flush()
}

func columnOverlap(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := cli.ParseFormat(overlapFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}
	opts, err := overlapFlags.parser.options(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := loadTable(cfg, overlapFlags.file)
	if err != nil {
		return err
	}

	p := parser.NewParserWithOptions(opts)
	ctx := commandContext(cmd)
	columns := make([]aggregate.Column, 0, len(args))
	for _, name := range args {
		_, raw, err := resolveColumn(cfg, table, name)
		if err != nil {
			return err
		}
		values, err := p.ParseColumnContext(ctx, name, raw)
		if err != nil {
			return cli.NewCommandError("overlap", err)
		}
		columns = append(columns, aggregate.Column{Name: name, Values: values})
	}

	combinations, err := aggregate.Overlap(columns)
	if err != nil {
		return err
	}
	return writeOutput(cmd, format, OverlapResult{Columns: args, Combinations: combinations})
}
