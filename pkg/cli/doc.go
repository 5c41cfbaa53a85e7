/*
Package cli provides command-line helpers for the atlas command.

Output Formatting:

Commands render results as text, JSON or CSV. Values implementing
TextWriter control their text form; values implementing Table can be
rendered as CSV:

	format, err := cli.ParseFormat(flagValue, cli.FormatText, cli.FormatJSON)
	if err != nil {
		return err
	}
	return cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result)

Progress Reporting:

	progress := cli.NewProgressReporter(cmd.ErrOrStderr(), "columns")
	progress.Start(int64(len(columns)))
	...
	progress.Finish()

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

ExitCode maps a command error to the process exit status: 0 on success,
2 for usage and configuration errors, 3 when lint findings fail the run,
and 1 for everything else.
*/
package cli
