package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/doxy2json/internal/output"
)

func TestDoxyfileCommand(t *testing.T) {
	sample := fixture(t, "doxyfile/testdata/Doxyfile")
	isolate(t)

	out, err := execute(t, "doxyfile", sample)
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	for _, want := range []string{"KEY", "VALUE", "project_name", "generate_xml", "Project: Example Project", "XML output:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q: %q", want, out)
		}
	}
}

func TestDoxyfileCommand_JSON(t *testing.T) {
	sample := fixture(t, "doxyfile/testdata/Doxyfile")
	isolate(t)

	out, err := execute(t, "doxyfile", sample, "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	var values map[string]any
	if err := json.Unmarshal([]byte(out), &values); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if values["version"] != "1.9.1" {
		t.Errorf("version = %v, want %q", values["version"], "1.9.1")
	}
	if values["extract_all"] != "true" {
		t.Errorf("extract_all = %v, want %q", values["extract_all"], "true")
	}
	if _, ok := values["input"].([]any); !ok {
		t.Errorf("input = %#v, want a list", values["input"])
	}
}

func TestDoxyfileCommand_Missing(t *testing.T) {
	isolate(t)

	out, err := execute(t, "doxyfile")
	if err == nil {
		t.Fatal("expected error without a Doxyfile")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(out, "No such file or directory: './Doxyfile'") {
		t.Errorf("output = %q", out)
	}
}

func TestConvertCommand(t *testing.T) {
	widget := fixture(t, "xmljson/testdata/classexample_1_1_widget.xml")
	isolate(t)

	out, err := execute(t, "convert", widget, "--version", "2.0", "--root", "site", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	var result struct {
		Version string `json:"version"`
		Files   []struct {
			DataFile string `json:"data_file"`
			Page     string `json:"page"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if len(result.Files) != 1 {
		t.Fatalf("len(files) = %d, want 1", len(result.Files))
	}
	wantData := filepath.Join("site", "_data", "api", "2.0", "classexample_1_1_widget.json")
	if result.Files[0].DataFile != wantData {
		t.Errorf("data_file = %q, want %q", result.Files[0].DataFile, wantData)
	}
	if _, err := os.Stat(result.Files[0].Page); err != nil {
		t.Errorf("page not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join("site", "api", "index.md")); err == nil {
		t.Error("convert should not write the index page")
	}
}

func TestConvertCommand_RequiresVersion(t *testing.T) {
	widget := fixture(t, "xmljson/testdata/classexample_1_1_widget.xml")
	isolate(t)

	if _, err := execute(t, "convert", widget); err == nil {
		t.Error("expected error without --version")
	}
}

func TestConvertCommand_BadXML(t *testing.T) {
	isolate(t)
	if err := os.WriteFile("classbad.xml", []byte("<doxygen"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "convert", "classbad.xml", "--version", "1.0")
	if err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}
}

func TestIndexCommand(t *testing.T) {
	isolate(t)
	for _, v := range []string{"1.0", "develop"} {
		if err := os.MkdirAll(filepath.Join("api", v), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	out, err := execute(t, "index")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}
	index, err := os.ReadFile(filepath.Join("api", "index.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "---\ntitle: \"API\"\n---\n- [1.0](1.0)\n- [develop](develop)\n"
	if string(index) != want {
		t.Errorf("index = %q, want %q", string(index), want)
	}
}

func TestIndexCommand_ExplicitDir(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(filepath.Join("ref", "3.0"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "index", "ref", "--index-title", "Reference", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v\n%s", err, out)
	}

	var result struct {
		Path     string   `json:"path"`
		Versions []string `json:"versions"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("Output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if result.Path != filepath.Join("ref", "index.md") {
		t.Errorf("path = %q", result.Path)
	}
	if len(result.Versions) != 1 || result.Versions[0] != "3.0" {
		t.Errorf("versions = %v, want [3.0]", result.Versions)
	}
}

func TestIndexCommand_MissingDir(t *testing.T) {
	isolate(t)

	out, err := execute(t, "index")
	if err == nil {
		t.Fatal("expected error for missing api directory")
	}
	if code := output.GetExitCode(err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
	if !strings.Contains(out, "doesn't exist or is not a directory") {
		t.Errorf("output = %q", out)
	}
}
