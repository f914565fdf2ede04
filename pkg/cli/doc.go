/*
Package cli provides command-line helpers used by the catascii command.

Output Formatting:

Commands print results as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, info); err != nil {
		return err
	}

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()
	// ctx is cancelled on the first signal
*/
package cli
