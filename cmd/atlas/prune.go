package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"slr-hq/atlas/pkg/cli"
	"slr-hq/atlas/pkg/store/retention"
)

var pruneFlags struct {
	days       int
	maxRuns    int64
	archiveDir string
	dryRun     bool
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention policy now",
	Long: `Delete runs older than store.retention.days and, when
store.retention.max_runs is set, the oldest runs beyond it.

Examples:
  # Apply the configured policy
  atlas prune

  # Keep only the last 50 runs, archiving the rest
  atlas prune --days 0 --max-runs 50 --archive-dir archive/`,
	RunE: pruneRuns,
}

func init() {
	rootCmd.AddCommand(pruneCmd)

	pruneCmd.Flags().IntVar(&pruneFlags.days, "days", 0, "override store.retention.days, 0 disables age pruning")
	pruneCmd.Flags().Int64Var(&pruneFlags.maxRuns, "max-runs", 0, "override store.retention.max_runs")
	pruneCmd.Flags().StringVar(&pruneFlags.archiveDir, "archive-dir", "", "override store.retention.archive_dir")
	pruneCmd.Flags().BoolVar(&pruneFlags.dryRun, "dry-run", false, "print the effective policy without deleting")
}

func pruneRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	policy := retention.FromConfig(cfg.Store.Retention)
	if cmd.Flags().Changed("days") {
		policy.RetentionDays = pruneFlags.days
	}
	if cmd.Flags().Changed("max-runs") {
		if pruneFlags.maxRuns < 0 {
			return cli.NewConfigError("--max-runs", "must not be negative")
		}
		policy.MaxRuns = pruneFlags.maxRuns
	}
	if pruneFlags.archiveDir != "" {
		policy.ArchiveDir = pruneFlags.archiveDir
	}

	out := cmd.OutOrStdout()
	if pruneFlags.dryRun {
		fmt.Fprintf(out, "Retention: %d days, max %d runs, archive %q\n",
			policy.RetentionDays, policy.MaxRuns, policy.ArchiveDir)
		return nil
	}

	storage, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	deleted, err := retention.NewPruner(storage, policy).Prune(commandContext(cmd))
	if err != nil {
		return cli.NewCommandError("prune", err)
	}

	fmt.Fprintf(out, "✓ Pruned %d runs\n", deleted)
	return nil
}
