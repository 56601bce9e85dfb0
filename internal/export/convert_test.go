package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gorewood/doxy2json/internal/output"
	"github.com/gorewood/doxy2json/internal/xmljson"
	"github.com/gorewood/doxy2json/internal/xsd"
)

const widgetXML = "../xmljson/testdata/classexample_1_1_widget.xml"

func newTestConverter(t *testing.T) (*Converter, *[]string) {
	t.Helper()
	schema, err := xsd.Default()
	if err != nil {
		t.Fatalf("xsd.Default() error = %v", err)
	}

	var reported []string
	conv := NewConverter(xmljson.NewDecoder(schema))
	conv.Root = t.TempDir()
	conv.Progress = func(path string) { reported = append(reported, path) }
	return conv, &reported
}

func TestConverter_Convert(t *testing.T) {
	conv, reported := newTestConverter(t)

	result, err := conv.Convert(widgetXML, "1.0")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}

	wantData := filepath.Join(conv.Root, "_data", "api", "1.0", "classexample_1_1_widget.json")
	wantPage := filepath.Join(conv.Root, "api", "1.0", "classexample_1_1_widget.md")
	if want := (Result{Source: widgetXML, DataFile: wantData, Page: wantPage}); result != want {
		t.Errorf("Convert() = %+v, want %+v", result, want)
	}
	if !reflect.DeepEqual(*reported, []string{wantData, wantPage}) {
		t.Errorf("progress = %v, want data file then page", *reported)
	}

	if got := readFile(t, wantPage); got != "---\nlayout: \"doxygen\"\nno_title_header: true\n---\n" {
		t.Errorf("page = %q", got)
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(readFile(t, wantData)), &doc); err != nil {
		t.Fatalf("data file is not JSON: %v", err)
	}
	for _, key := range []string{"version", "compounddef"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("data file missing %q", key)
		}
	}
	if _, ok := doc["@version"]; ok {
		t.Error("data file should not keep the @ attribute prefix")
	}

	compounds, ok := doc["compounddef"].([]any)
	if !ok || len(compounds) != 1 {
		t.Fatalf("compounddef = %v, want one compound", doc["compounddef"])
	}
	compound := compounds[0].(map[string]any)
	if compound["id"] != "classexample_1_1_widget" {
		t.Errorf("id = %v", compound["id"])
	}
	if compound["final"] != "false" {
		t.Errorf("final = %v, want %q", compound["final"], "false")
	}
}

func TestConverter_CustomLocations(t *testing.T) {
	conv, _ := newTestConverter(t)
	conv.APIDir = "reference"
	conv.DataRoot = "data"
	conv.Layout = "api"

	result, err := conv.Convert(widgetXML, "develop")
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if want := filepath.Join(conv.Root, "data", "reference", "develop", "classexample_1_1_widget.json"); result.DataFile != want {
		t.Errorf("DataFile = %q, want %q", result.DataFile, want)
	}
	if want := filepath.Join(conv.Root, "reference", "develop", "classexample_1_1_widget.md"); result.Page != want {
		t.Errorf("Page = %q, want %q", result.Page, want)
	}
	if page := readFile(t, result.Page); !strings.Contains(page, "layout: \"api\"\n") {
		t.Errorf("page = %q, want layout api", page)
	}
}

func TestConverter_InvalidXML(t *testing.T) {
	conv, reported := newTestConverter(t)

	bad := filepath.Join(t.TempDir(), "classbad.xml")
	if err := os.WriteFile(bad, []byte("<doxygen><bogus/></doxygen>"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := conv.Convert(bad, "1.0")
	if err == nil {
		t.Fatal("Convert() expected error for invalid XML")
	}
	if code := output.GetExitCode(err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}
	if len(*reported) != 0 {
		t.Errorf("progress = %v, want nothing reported", *reported)
	}
	if _, statErr := os.Stat(filepath.Join(conv.DataDir("1.0"), "classbad.json")); !os.IsNotExist(statErr) {
		t.Errorf("data file should not exist, stat error = %v", statErr)
	}
}
