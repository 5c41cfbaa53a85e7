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
	"slr-hq/atlas/pkg/dataset"
	"slr-hq/atlas/pkg/numeric"
)

var statsFlags struct {
	file       string
	column     string
	key        string
	others     int
	keys       bool
	papers     bool
	valueRange bool
	screening  bool
	format     string
	parser     parserFlags
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize an annotation column",
	Long: `Compute the statistics reported for a research question.

By default stats counts the values of --key, most frequent first. Without
--key the bare tags of the column are counted.

Examples:
  # Frequencies of the gates used, rare ones folded into "Others"
  atlas stats --column rq1_gates --key "Quantum gates" --others 1

  # Which papers use each gate
  atlas stats --column rq1_gates --key "Quantum gates" --papers

  # Keys used in a column
  atlas stats --column rq1_gates --keys

  # Smallest and largest qubit counts, including "From 5 to 27" ranges
  atlas stats --column rq2_scale --key Qubits --range

  # Included and excluded papers
  atlas stats --column included --screening`,
	RunE: columnStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsFlags.file, "file", "f", "", "dataset CSV (default: dataset.path)")
	statsCmd.Flags().StringVar(&statsFlags.column, "column", "", "column alias or header")
	statsCmd.Flags().StringVar(&statsFlags.key, "key", "", "key whose values are counted (default: bare tags)")
	statsCmd.Flags().IntVar(&statsFlags.others, "others", 0, "fold values seen at most N times into \""+aggregate.DefaultOthersLabel+"\"")
	statsCmd.Flags().BoolVar(&statsFlags.keys, "keys", false, "list keys with their number of distinct values")
	statsCmd.Flags().BoolVar(&statsFlags.papers, "papers", false, "list the papers carrying each value")
	statsCmd.Flags().BoolVar(&statsFlags.valueRange, "range", false, "report the smallest and largest numeric value")
	statsCmd.Flags().BoolVar(&statsFlags.screening, "screening", false, "count [Y] and [N] screening marks")
	statsCmd.Flags().StringVar(&statsFlags.format, "format", "text", "output format: text, json, csv")
	statsFlags.parser.register(statsCmd)

	statsCmd.MarkFlagsMutuallyExclusive("keys", "papers", "range", "screening")
}

// Frequencies is the value count table of a column.
type Frequencies struct {
	Column string            `json:"column"`
	Key    string            `json:"key,omitempty"`
	Cells  int               `json:"cells"`
	Counts []aggregate.Count `json:"counts"`
}

func (f Frequencies) Header() []string { return []string{"value", "count"} }

func (f Frequencies) Rows() [][]string {
	rows := make([][]string, len(f.Counts))
	for i, c := range f.Counts {
		rows[i] = []string{c.Value, strconv.Itoa(c.Count)}
	}
	return rows
}

func (f Frequencies) WriteText(w io.Writer) error {
	title := f.Column
	if f.Key != "" {
		title += " / " + f.Key
	}
	fmt.Fprintf(w, "%s (%d cells, %d distinct)\n", title, f.Cells, len(f.Counts))
	tw := newTabWriter(w)
	for _, c := range f.Counts {
		fmt.Fprintf(tw, "  %s\t%d\n", c.Value, c.Count)
	}
	return tw.Flush()
}

// Papers lists the papers carrying each value.
type Papers struct {
	Column   string              `json:"column"`
	Key      string              `json:"key,omitempty"`
	Postings []aggregate.Posting `json:"postings"`
}

func (p Papers) Header() []string { return []string{"value", "count", "papers"} }

func (p Papers) Rows() [][]string {
	rows := make([][]string, len(p.Postings))
	for i, post := range p.Postings {
		rows[i] = []string{post.Value, strconv.Itoa(post.Count), strings.Join(post.Papers, ";")}
	}
	return rows
}

func (p Papers) WriteText(w io.Writer) error {
	tw := newTabWriter(w)
	for _, post := range p.Postings {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", post.Value, post.Count, strings.Join(post.Papers, ", "))
	}
	return tw.Flush()
}

// Range is the numeric extent of a key.
type Range struct {
	Column string  `json:"column"`
	Key    string  `json:"key,omitempty"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

func (r Range) Header() []string { return []string{"min", "max"} }

func (r Range) Rows() [][]string {
	return [][]string{{formatNumber(r.Min), formatNumber(r.Max)}}
}

func (r Range) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "min %s, max %s\n", formatNumber(r.Min), formatNumber(r.Max))
	return err
}

// Screening counts [Y] and [N] marks.
type Screening struct {
	Column string `json:"column"`
	Yes    int    `json:"yes"`
	No     int    `json:"no"`
	Other  int    `json:"other"`
}

func (s Screening) Header() []string { return []string{"yes", "no", "other"} }

func (s Screening) Rows() [][]string {
	return [][]string{{strconv.Itoa(s.Yes), strconv.Itoa(s.No), strconv.Itoa(s.Other)}}
}

func (s Screening) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d included, %d excluded, %d unmarked\n", s.Column, s.Yes, s.No, s.Other)
	return err
}

func columnStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if statsFlags.column == "" {
		return cli.NewConfigError("--column", "a column alias or header is required")
	}
	if statsFlags.others < 0 {
		return cli.NewConfigError("--others", "threshold must not be negative")
	}
	format, err := cli.ParseFormat(statsFlags.format, cli.FormatText, cli.FormatJSON, cli.FormatCSV)
	if err != nil {
		return err
	}
	opts, err := statsFlags.parser.options(cmd, cfg)
	if err != nil {
		return err
	}

	table, err := loadTable(cfg, statsFlags.file)
	if err != nil {
		return err
	}
	header, raw, err := resolveColumn(cfg, table, statsFlags.column)
	if err != nil {
		return err
	}

	if statsFlags.screening {
		yes, no := dataset.BooleanCounts(raw)
		return writeOutput(cmd, format, Screening{Column: header, Yes: yes, No: no, Other: len(raw) - yes - no})
	}

	values, err := parser.NewParserWithOptions(opts).ParseColumnContext(commandContext(cmd), statsFlags.column, raw)
	if err != nil {
		return cli.NewCommandError("stats", err)
	}

	if statsFlags.keys {
		c := aggregate.NewCollector()
		c.AddAll(values)
		keys := Frequencies{Column: header, Cells: len(values)}
		for _, k := range c.Keys() {
			keys.Counts = append(keys.Counts, aggregate.Count{Value: k, Count: aggregate.Distinct(c.Values(k))})
		}
		return writeOutput(cmd, format, keys)
	}

	if statsFlags.papers {
		_, ids, err := resolveColumn(cfg, table, cfg.Dataset.IDColumn)
		if err != nil {
			return err
		}
		postings, err := aggregate.Index(statsFlags.key, values, ids)
		if err != nil {
			return err
		}
		return writeOutput(cmd, format, Papers{Column: header, Key: statsFlags.key, Postings: postings})
	}

	var items []string
	if statsFlags.key == "" {
		items = aggregate.Tags(values)
	} else {
		c := aggregate.NewCollector(statsFlags.key)
		c.AddAll(values)
		items = c.Values(statsFlags.key)
	}

	if statsFlags.valueRange {
		lo, hi, ok := numeric.MinMax(items)
		if !ok {
			return fmt.Errorf("no numeric values in %s", header)
		}
		return writeOutput(cmd, format, Range{Column: header, Key: statsFlags.key, Min: lo, Max: hi})
	}

	if statsFlags.others > 0 {
		items = aggregate.BucketRare(items, statsFlags.others, aggregate.DefaultOthersLabel)
	}
	return writeOutput(cmd, format, Frequencies{
		Column: header,
		Key:    statsFlags.key,
		Cells:  len(values),
		Counts: aggregate.Frequencies(items),
	})
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
