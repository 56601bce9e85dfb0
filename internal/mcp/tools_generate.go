package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/doxy2json/internal/generate"
)

// GenerateInput is the input for the generate tool.
type GenerateInput struct {
	Doxyfile    string `json:"doxyfile,omitempty"     jsonschema:"Doxyfile path (default ./Doxyfile)"`
	SkipDoxygen bool   `json:"skip_doxygen,omitempty" jsonschema:"convert existing XML output without running doxygen"`
	GitVersion  bool   `json:"git_version,omitempty"  jsonschema:"use the git tag at HEAD as the version"`
	Version     string `json:"version,omitempty"      jsonschema:"version used when the Doxyfile has no PROJECT_NUMBER (default develop)"`
}

func handleGenerate(defaults generate.Options) mcp.ToolHandlerFor[GenerateInput, generate.Summary] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, generate.Summary, error) {
		opts := defaults
		if input.Doxyfile != "" {
			opts.Doxyfile = input.Doxyfile
		}
		if input.Version != "" {
			opts.DefaultVersion = input.Version
		}
		opts.SkipDoxygen = opts.SkipDoxygen || input.SkipDoxygen
		opts.GitVersion = opts.GitVersion || input.GitVersion
		// stdout carries the MCP stream
		opts.Stdout = nil
		opts.Stderr = nil

		summary, err := generate.Run(ctx, opts, nil)
		if err != nil {
			return nil, generate.Summary{}, err
		}
		return nil, summary, nil
	}
}
