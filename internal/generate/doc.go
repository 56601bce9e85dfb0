// Package generate runs a complete documentation build.
//
// A build runs Doxygen on a Doxyfile, reads the same Doxyfile to find the
// XML output and the project version, converts every matching compound XML
// file into a data file and a stub page, and rewrites the API index page:
//
//	summary, err := generate.Run(ctx, generate.DefaultOptions(), func(path string) {
//	    printer.Step("Generating %s...", path)
//	})
//
// Output lands below Options.Root (the working directory by default):
//
//	_data/api/<version>/<compound>.json
//	api/<version>/<compound>.md
//	api/index.md
package generate
