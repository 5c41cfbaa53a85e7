package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/annotation/ast"
	"slr-hq/atlas/pkg/annotation/parser"
	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/config"
	"slr-hq/atlas/pkg/dataset"
	"slr-hq/atlas/pkg/store"
)

// parserFlags override the parser section of the configuration.
type parserFlags struct {
	keepInvalidKeys   bool
	keepInvalidValues bool
	mixed             string
	strict            bool
}

func (f *parserFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.keepInvalidKeys, "keep-invalid-keys", false, "keep [un-specified] blocks and keys")
	cmd.Flags().BoolVar(&f.keepInvalidValues, "keep-invalid-values", false, "keep un-specified values")
	cmd.Flags().StringVar(&f.mixed, "mixed", "", "policy for cells with keyed and bare blocks: keyed, preserve")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "fail on unterminated blocks instead of dropping them")
}

// options applies the flags that were set on cmd to the configured policy.
func (f *parserFlags) options(cmd *cobra.Command, cfg *config.Config) (parser.Options, error) {
	opts := cfg.Parser.Options()

	if cmd.Flags().Changed("keep-invalid-keys") {
		opts.SkipInvalidKey = !f.keepInvalidKeys
	}
	if cmd.Flags().Changed("keep-invalid-values") {
		opts.SkipInvalidValue = !f.keepInvalidValues
	}
	if f.mixed != "" {
		opts.Mixed = parser.MixedPolicy(f.mixed)
	}
	if f.strict {
		opts.Unbalanced = parser.UnbalancedError
	}

	if err := opts.Validate(); err != nil {
		return opts, cli.NewConfigError("parser flags", err.Error())
	}
	return opts, nil
}

// commandContext returns the command context, or a background context when
// the command runs outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadTable reads path, or the configured dataset when path is empty.
func loadTable(cfg *config.Config, path string) (*dataset.Table, error) {
	if path == "" {
		path = cfg.Dataset.Path
	}
	return dataset.Load(path)
}

// resolveColumn returns the header and cells of an alias or header.
func resolveColumn(cfg *config.Config, table *dataset.Table, name string) (string, []string, error) {
	header, err := dataset.ResolveHeader(name, cfg.Dataset.Columns, table.Headers())
	if err != nil {
		var ce *dataset.ColumnError
		if errors.As(err, &ce) {
			ce.Table = table.Name
		}
		return "", nil, err
	}
	cells, err := table.Column(header)
	if err != nil {
		return "", nil, err
	}
	return header, cells, nil
}

// columnNames returns args, or fallback, or every configured alias sorted.
func columnNames(cfg *config.Config, args, fallback []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(fallback) > 0 {
		return fallback, nil
	}

	names := make([]string, 0, len(cfg.Dataset.Columns))
	for alias := range cfg.Dataset.Columns {
		names = append(names, alias)
	}
	if len(names) == 0 {
		return nil, cli.NewConfigError("dataset.columns", "no columns given and none configured")
	}
	sort.Strings(names)
	return names, nil
}

// openStore opens the configured run store.
func openStore(cfg *config.Config) (store.Storage, error) {
	s, err := store.New(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to open run store: %w", err)
	}
	return s, nil
}

// formatValue renders a parsed cell on one line.
func formatValue(v ast.Value) string {
	var parts []string
	for _, e := range v.Entries {
		parts = append(parts, e.Key+": "+strings.Join(e.Values, ", "))
	}
	if len(v.Tags) > 0 {
		parts = append(parts, strings.Join(v.Tags, ", "))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " | ")
}

// writeOutput renders data in format to the command output.
func writeOutput(cmd *cobra.Command, format cli.OutputFormat, data any) error {
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), data)
}

// newTabWriter aligns tab separated text output.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
}
