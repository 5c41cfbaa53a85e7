// Package retention prunes stored parse runs.
//
// A Pruner deletes runs older than the configured age and then, if a cap is
// set, the oldest runs beyond that cap. Runs can be archived to a JSON file
// before deletion. A Scheduler runs the pruner on a cron schedule:
//
//	pruner := retention.NewPruner(storage, &retention.Config{
//	    RetentionDays: 30,
//	    MaxRuns:       500,
//	    Schedule:      "0 3 * * *",
//	})
//	if err := pruner.Start(ctx); err != nil {
//	    return err
//	}
//	defer pruner.Stop()
package retention
