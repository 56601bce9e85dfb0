// Package mcp provides a Model Context Protocol server for doxy2json.
// It exposes Doxyfile inspection, XML conversion, index generation, and full
// builds as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/doxy2json/internal/generate"
)

// NewServer creates an MCP server with all doxy2json tools registered.
// defaults supplies every option a tool call leaves unset.
func NewServer(version string, defaults generate.Options) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "doxy2json",
		Version: version,
	}, nil)
	registerTools(server, defaults)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that (re)write site files.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all doxy2json tools to the server.
func registerTools(server *mcp.Server, defaults generate.Options) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "doxyfile",
		Description: "Parse a Doxyfile and return its settings with lowercase keys, plus the resolved XML output directory and project version.",
		Annotations: readOnlyAnnotations(),
	}, handleDoxyfile(defaults))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "convert",
		Description: "Convert Doxygen compound XML files into JSON data files and Markdown stub pages for one documentation version.",
		Annotations: writeAnnotations(),
	}, handleConvert(defaults))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index",
		Description: "Rewrite the API index page listing every version directory below the API directory.",
		Annotations: writeAnnotations(),
	}, handleIndex(defaults))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Run a full build: Doxygen (unless skipped), conversion of all namespace, class, and file compounds, and the index page.",
		Annotations: &mcp.ToolAnnotations{
			DestructiveHint: boolPtr(false),
			OpenWorldHint:   boolPtr(false),
		},
	}, handleGenerate(defaults))
}
