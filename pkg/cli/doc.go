/*
Package cli provides command-line interface utilities for Abacus.

The cli package includes output formatters and common CLI helpers used
by the quotient command.

Output Formatting:

The cli package supports multiple output formats (text, JSON, CSV) for
displaying command results:

	formatter := cli.NewFormatter(cli.FormatJSON)
	data := MyCommandResult{...}
	if err := formatter.FormatTo(os.Stdout, data); err != nil {
		return err
	}

Tabular results (tier tables, audit listings) implement the Tabular
interface so the text and CSV formatters can render them as rows.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	// Use ctx for operations that should be cancelled on shutdown
*/
package cli
