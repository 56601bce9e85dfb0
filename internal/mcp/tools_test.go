package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/doxy2json/internal/generate"
)

const (
	sampleDoxyfile = "../doxyfile/testdata/Doxyfile"
	widgetXML      = "../xmljson/testdata/classexample_1_1_widget.xml"
)

// --- Doxyfile handler tests ---

func TestHandleDoxyfile(t *testing.T) {
	handler := handleDoxyfile(generate.Options{})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DoxyfileInput{Path: sampleDoxyfile})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.ProjectName != "Example Project" {
		t.Errorf("ProjectName = %q, want %q", out.ProjectName, "Example Project")
	}
	if out.DoxygenVersion != "1.9.1" {
		t.Errorf("DoxygenVersion = %q, want %q", out.DoxygenVersion, "1.9.1")
	}
	if out.ProjectNumber != "0.3.1" {
		t.Errorf("ProjectNumber = %q, want %q", out.ProjectNumber, "0.3.1")
	}
	if out.XMLDir != filepath.Join("build", "docs", "xml") {
		t.Errorf("XMLDir = %q, want %q", out.XMLDir, filepath.Join("build", "docs", "xml"))
	}
	if len(out.Keys) == 0 || out.Keys[0] != "version" {
		t.Errorf("Keys = %v, want version first", out.Keys)
	}
	if len(out.Keys) != len(out.Values) {
		t.Errorf("len(Keys) = %d, len(Values) = %d", len(out.Keys), len(out.Values))
	}
	if got := out.Values["generate_xml"]; got != "true" {
		t.Errorf("generate_xml = %v, want %q", got, "true")
	}
	input, ok := out.Values["input"].([]string)
	if !ok || len(input) != 3 {
		t.Errorf("input = %#v, want 3-item list", out.Values["input"])
	}
}

func TestHandleDoxyfile_DefaultPath(t *testing.T) {
	handler := handleDoxyfile(generate.Options{Doxyfile: sampleDoxyfile})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, DoxyfileInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Path != sampleDoxyfile {
		t.Errorf("Path = %q, want %q", out.Path, sampleDoxyfile)
	}
}

func TestHandleDoxyfile_Missing(t *testing.T) {
	handler := handleDoxyfile(generate.Options{})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, DoxyfileInput{
		Path: filepath.Join(t.TempDir(), "Doxyfile"),
	})
	if err == nil {
		t.Fatal("expected error for missing Doxyfile")
	}
}

// --- Convert handler tests ---

func TestHandleConvert(t *testing.T) {
	root := t.TempDir()
	handler := handleConvert(generate.Options{Root: root})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ConvertInput{
		Files:   []string{widgetXML},
		Version: "1.0",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Schema != generate.EmbeddedSchema {
		t.Errorf("Schema = %q, want %q", out.Schema, generate.EmbeddedSchema)
	}
	if len(out.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(out.Results))
	}

	want := filepath.Join(root, "_data", "api", "1.0", "classexample_1_1_widget.json")
	if out.Results[0].DataFile != want {
		t.Errorf("DataFile = %q, want %q", out.Results[0].DataFile, want)
	}
	if _, err := os.Stat(out.Results[0].Page); err != nil {
		t.Errorf("page not written: %v", err)
	}
}

func TestHandleConvert_Validation(t *testing.T) {
	handler := handleConvert(generate.Options{Root: t.TempDir()})

	tests := []struct {
		name    string
		input   ConvertInput
		wantErr string
	}{
		{"no files", ConvertInput{Version: "1.0"}, "files is required"},
		{"no version", ConvertInput{Files: []string{widgetXML}}, "version is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

// --- Index handler tests ---

func TestHandleIndex(t *testing.T) {
	root := t.TempDir()
	apiDir := filepath.Join(root, "reference")
	for _, v := range []string{"2.0", "1.0"} {
		if err := os.MkdirAll(filepath.Join(apiDir, v), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	handler := handleIndex(generate.Options{Root: root, APIDir: "reference", IndexTitle: "Reference"})

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, IndexInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Path != filepath.Join(apiDir, "index.md") {
		t.Errorf("Path = %q", out.Path)
	}
	if len(out.Versions) != 2 || out.Versions[0] != "1.0" || out.Versions[1] != "2.0" {
		t.Errorf("Versions = %v, want [1.0 2.0]", out.Versions)
	}

	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatal(err)
	}
	want := "---\ntitle: \"Reference\"\n---\n- [1.0](1.0)\n- [2.0](2.0)\n"
	if string(data) != want {
		t.Errorf("index = %q, want %q", string(data), want)
	}
}

func TestHandleIndex_MissingDir(t *testing.T) {
	handler := handleIndex(generate.Options{})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, IndexInput{
		Dir: filepath.Join(t.TempDir(), "api"),
	})
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

// --- Generate handler tests ---

func TestHandleGenerate(t *testing.T) {
	dir := t.TempDir()
	xmlDir := filepath.Join(dir, "xml")
	if err := os.MkdirAll(xmlDir, 0o755); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(widgetXML)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(xmlDir, "classexample_1_1_widget.xml"), data, 0o644); err != nil {
		t.Fatal(err)
	}
	doxy := filepath.Join(dir, "Doxyfile")
	if err := os.WriteFile(doxy, []byte("OUTPUT_DIRECTORY = "+dir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	handler := handleGenerate(generate.Options{Root: filepath.Join(dir, "site")})
	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, GenerateInput{
		Doxyfile:    doxy,
		SkipDoxygen: true,
		Version:     "nightly",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Version != "nightly" {
		t.Errorf("Version = %q, want %q", out.Version, "nightly")
	}
	if len(out.Files) != 1 {
		t.Errorf("len(Files) = %d, want 1", len(out.Files))
	}
	if out.Index != filepath.Join(dir, "site", "api", "index.md") {
		t.Errorf("Index = %q", out.Index)
	}
}

func TestHandleGenerate_MissingDoxyfile(t *testing.T) {
	handler := handleGenerate(generate.Options{Root: t.TempDir()})

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, GenerateInput{
		Doxyfile:    filepath.Join(t.TempDir(), "Doxyfile"),
		SkipDoxygen: true,
	})
	if err == nil {
		t.Fatal("expected error for missing Doxyfile")
	}
}

// --- Server registration test ---

func TestNewServer_RegistersTools(t *testing.T) {
	// Should not panic
	server := NewServer("test-version", generate.DefaultOptions())
	if server == nil {
		t.Fatal("NewServer returned nil")
	}
}

func TestNewServer_ListTools(t *testing.T) {
	ctx := context.Background()
	server := NewServer("test-version", generate.DefaultOptions())

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server connect: %v", err)
	}
	defer serverSession.Close() //nolint:errcheck // test teardown

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	defer session.Close() //nolint:errcheck // test teardown

	result, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, want := range []string{"doxyfile", "convert", "index", "generate"} {
		if !names[want] {
			t.Errorf("tool %q not registered", want)
		}
	}
}
