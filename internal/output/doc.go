// Package output prints doxy2json results for people and for scripts.
//
// Every command writes through a Printer built from the --json and --color
// flags:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.ColorAuto.Enabled(cmd.OutOrStdout())).
//		WithStderr(cmd.ErrOrStderr())
//
//	printer.Step("Generating %s...", path) // progress, silent in JSON mode
//	printer.WriteJSON(summary)             // JSON mode result
//	printer.Done("Converted %d XML files", n)
//
// Failures are *ExitError values. Their code becomes the process exit code:
//
//	output.ExitSuccess     // 0
//	output.ExitUserError   // 1: missing Doxyfile, bad flags, invalid tag
//	output.ExitSystemError // 2: doxygen failed, I/O error, malformed XML
//
// In JSON mode an error is printed as {"error": "message", "code": N}.
package output
