package mcp

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/doxy2json/internal/doxyfile"
	"github.com/gorewood/doxy2json/internal/export"
	"github.com/gorewood/doxy2json/internal/generate"
)

// --- Doxyfile tool ---

// DoxyfileInput is the input for the doxyfile tool.
type DoxyfileInput struct {
	Path string `json:"path,omitempty" jsonschema:"Doxyfile path (default ./Doxyfile)"`
}

// DoxyfileOutput is the output for the doxyfile tool.
type DoxyfileOutput struct {
	Path           string         `json:"path"                      jsonschema:"the parsed Doxyfile"`
	ProjectName    string         `json:"project_name,omitempty"    jsonschema:"PROJECT_NAME without quotes"`
	DoxygenVersion string         `json:"doxygen_version,omitempty" jsonschema:"Doxygen version that wrote the file"`
	ProjectNumber  string         `json:"project_number,omitempty"  jsonschema:"PROJECT_NUMBER without quotes"`
	XMLDir         string         `json:"xml_dir"                   jsonschema:"resolved XML output directory"`
	Keys           []string       `json:"keys"                      jsonschema:"setting names in file order"`
	Values         map[string]any `json:"values"                    jsonschema:"settings: strings, or arrays for continued lists"`
}

func handleDoxyfile(defaults generate.Options) mcp.ToolHandlerFor[DoxyfileInput, DoxyfileOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input DoxyfileInput) (*mcp.CallToolResult, DoxyfileOutput, error) {
		path := firstNonEmpty(input.Path, defaults.Doxyfile, generate.DefaultDoxyfile)

		cfg, err := doxyfile.Load(path)
		if err != nil {
			return nil, DoxyfileOutput{}, err
		}

		out := DoxyfileOutput{
			Path:           path,
			ProjectName:    cfg.ProjectName(),
			DoxygenVersion: cfg.GetOr(doxyfile.KeyVersion, ""),
			XMLDir:         cfg.XMLOutputDir(),
			Keys:           cfg.Keys(),
			Values:         make(map[string]any, cfg.Len()),
		}
		out.ProjectNumber, _ = cfg.ProjectNumber()
		for _, key := range cfg.Keys() {
			value, _ := cfg.Value(key)
			if value.IsList {
				out.Values[key] = value.Items
			} else {
				out.Values[key] = value.Scalar
			}
		}
		return nil, out, nil
	}
}

// --- Convert tool ---

// ConvertInput is the input for the convert tool.
type ConvertInput struct {
	Files   []string `json:"files"              jsonschema:"compound XML files to convert (required)"`
	Version string   `json:"version"            jsonschema:"version directory to write into (required)"`
	Schema  string   `json:"schema,omitempty"   jsonschema:"XSD file (default: compound.xsd next to the first file, else built in)"`
	Root    string   `json:"root,omitempty"     jsonschema:"site directory receiving the output"`
	APIDir  string   `json:"api_dir,omitempty"  jsonschema:"API page directory (default api)"`
	DataDir string   `json:"data_dir,omitempty" jsonschema:"data root directory (default _data)"`
}

// ConvertOutput is the output for the convert tool.
type ConvertOutput struct {
	Schema  string          `json:"schema"  jsonschema:"schema file used, or embedded"`
	Results []export.Result `json:"results" jsonschema:"files written per converted XML file"`
}

func handleConvert(defaults generate.Options) mcp.ToolHandlerFor[ConvertInput, ConvertOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, ConvertOutput, error) {
		if len(input.Files) == 0 {
			return nil, ConvertOutput{}, errors.New("files is required")
		}
		if input.Version == "" {
			return nil, ConvertOutput{}, errors.New("version is required")
		}

		schema, source, err := generate.LoadSchema(
			firstNonEmpty(input.Schema, defaults.Schema), filepath.Dir(input.Files[0]))
		if err != nil {
			return nil, ConvertOutput{}, err
		}

		opts := defaults
		opts.Root = firstNonEmpty(input.Root, defaults.Root)
		opts.APIDir = firstNonEmpty(input.APIDir, defaults.APIDir)
		opts.DataRoot = firstNonEmpty(input.DataDir, defaults.DataRoot)
		conv := generate.NewConverter(opts, schema, nil)

		out := ConvertOutput{Schema: source}
		for _, file := range input.Files {
			if err := ctx.Err(); err != nil {
				return nil, ConvertOutput{}, err
			}
			result, err := conv.Convert(file, input.Version)
			if err != nil {
				return nil, ConvertOutput{}, err
			}
			out.Results = append(out.Results, result)
		}
		return nil, out, nil
	}
}

// --- Index tool ---

// IndexInput is the input for the index tool.
type IndexInput struct {
	Dir   string `json:"dir,omitempty"   jsonschema:"API directory holding one subdirectory per version (default api)"`
	Title string `json:"title,omitempty" jsonschema:"index page title (default API)"`
}

// IndexOutput is the output for the index tool.
type IndexOutput struct {
	Path     string   `json:"path"     jsonschema:"the written index page"`
	Versions []string `json:"versions" jsonschema:"linked version directories"`
}

func handleIndex(defaults generate.Options) mcp.ToolHandlerFor[IndexInput, IndexOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input IndexInput) (*mcp.CallToolResult, IndexOutput, error) {
		dir := input.Dir
		if dir == "" {
			dir = filepath.Join(defaults.Root, firstNonEmpty(defaults.APIDir, export.DefaultAPIDir))
		}
		title := firstNonEmpty(input.Title, defaults.IndexTitle, export.DefaultIndexTitle)

		path, err := export.WriteIndex(dir, title)
		if err != nil {
			return nil, IndexOutput{}, err
		}
		versions, err := export.Versions(dir)
		if err != nil {
			return nil, IndexOutput{}, err
		}
		if versions == nil {
			versions = []string{}
		}
		return nil, IndexOutput{Path: path, Versions: versions}, nil
	}
}

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
