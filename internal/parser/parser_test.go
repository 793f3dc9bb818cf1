package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/treeval/internal/tree"
)

func TestParseJSON_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	root, err := ParseJSON(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v, wantErr nil", err)
	}

	expected := tree.NewObject(
		tree.Field{Name: "name", Value: tree.NewScalar("John Doe")},
		tree.Field{Name: "age", Value: tree.NewScalar(json.Number("30"))},
		tree.Field{Name: "isStudent", Value: tree.NewScalar(false)},
		tree.Field{Name: "city", Value: tree.NewNull()},
	)

	if !reflect.DeepEqual(root, expected) {
		t.Errorf("ParseJSON() root = %#v, want %#v", root, expected)
	}
}

func TestParseJSON_PreservesFieldOrder(t *testing.T) {
	jsonStr := `{"zeta": 1, "alpha": 2, "mid": 3, "beta": 4}`
	root, err := ParseJSON(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v, wantErr nil", err)
	}

	want := []string{"zeta", "alpha", "mid", "beta"}
	if got := root.FieldNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("FieldNames() = %v, want %v", got, want)
	}
}

func TestParseJSON_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	root, err := ParseJSON(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v, wantErr nil", err)
	}

	expected := tree.NewArray(
		tree.NewScalar(json.Number("1")),
		tree.NewScalar("test"),
		tree.NewScalar(true),
		tree.NewNull(),
		tree.NewScalar(json.Number("3.14")),
	)
	if !reflect.DeepEqual(root, expected) {
		t.Errorf("ParseJSON() root = %#v, want %#v", root, expected)
	}
}

func TestParseJSON_NestedAndEmpty(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "tags": []}, "meta": {}}`
	root, err := ParseJSON(strings.NewReader(jsonStr))
	if err != nil {
		t.Fatalf("ParseJSON() error = %v, wantErr nil", err)
	}

	user, ok := root.Field("user")
	if !ok || user.Kind != tree.Object {
		t.Fatalf("Field(user) = %v, %v; want object", user, ok)
	}
	tags, ok := user.Field("tags")
	if !ok || tags.Kind != tree.Array || tags.Len() != 0 {
		t.Errorf("Field(tags) = %#v, want empty array", tags)
	}
	meta, ok := root.Field("meta")
	if !ok || meta.Kind != tree.Object || meta.Len() != 0 {
		t.Errorf("Field(meta) = %#v, want empty object", meta)
	}
}

func TestParseJSON_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name     string
		jsonStr  string
		expected *tree.Node
	}{
		{"RootString", `"hello world"`, tree.NewScalar("hello world")},
		{"RootNumber", `123.45`, tree.NewScalar(json.Number("123.45"))},
		{"RootBooleanTrue", `true`, tree.NewScalar(true)},
		{"RootBooleanFalse", `false`, tree.NewScalar(false)},
		{"RootNull", `null`, tree.NewNull()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root, err := ParseJSON(strings.NewReader(tc.jsonStr))
			if err != nil {
				t.Fatalf("ParseJSON() error = %v, wantErr nil for %s", err, tc.name)
			}
			if !reflect.DeepEqual(root, tc.expected) {
				t.Errorf("ParseJSON() root = %#v, want %#v for %s", root, tc.expected, tc.name)
			}
		})
	}
}

func TestParseJSON_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		jsonStr string
		wantMsg string
	}{
		{"Empty", ``, "input is empty"},
		{"MissingBrace", `{"name": "John Doe", "age": 30`, "unexpected end of JSON input"},
		{"MissingBracket", `["item1", "item2",`, "JSON"},
		{"BareWord", `{"invalid": json}`, "JSON syntax error"},
		{"TwoValues", `{"a": 1} {"b": 2}`, "multiple JSON values"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseJSON(strings.NewReader(tc.jsonStr))
			if err == nil {
				t.Fatalf("ParseJSON(%q) err = nil, want error", tc.jsonStr)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("ParseJSON(%q) err = %v, want error containing %q", tc.jsonStr, err, tc.wantMsg)
			}
		})
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := ParseString(input, FormatAuto)
		if err == nil {
			t.Errorf("ParseString(%q) err = nil, want error", input)
		} else if !strings.Contains(err.Error(), "input string is empty") {
			t.Errorf("ParseString(%q) err = %v, want error containing 'input string is empty'", input, err)
		}
	}
}

func TestParseString_Sniffing(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		format Format
	}{
		{"JSONObject", `{"a": 1}`, FormatJSON},
		{"JSONArray", `  [1, 2]`, FormatJSON},
		{"XMLElement", `<customer/>`, FormatXML},
		{"XMLDeclaration", "\n<?xml version=\"1.0\"?><customer/>", FormatXML},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseString(tc.input, FormatAuto)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}
			if doc.Format != tc.format {
				t.Errorf("ParseString() format = %s, want %s", doc.Format, tc.format)
			}
			if doc.Tree() == nil {
				t.Errorf("Tree() = nil, want root")
			}
		})
	}
}

func TestParseString_ForcedFormat(t *testing.T) {
	_, err := ParseString(`<customer/>`, FormatJSON)
	if err == nil {
		t.Errorf("ParseString() forced JSON on XML input, err = nil, want error")
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"JSON", FormatJSON, false},
		{" xml ", FormatXML, false},
		{"yaml", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseFormat(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseFormat(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatForPath(t *testing.T) {
	testCases := map[string]Format{
		"data.json":         FormatJSON,
		"/tmp/CUSTOMER.XML": FormatXML,
		"decision.dmn":      FormatXML,
		"payload":           FormatAuto,
		"notes.txt":         FormatAuto,
	}
	for name, want := range testCases {
		if got := FormatForPath(name); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", name, got, want)
		}
	}
}

func TestParseFile_SimpleObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "product.json")
	if err := os.WriteFile(path, []byte(`{"product": "Laptop", "price": 1200.50}`), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	doc, err := ParseFile(path, FormatAuto)
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}
	if doc.Format != FormatJSON {
		t.Errorf("ParseFile() format = %s, want json", doc.Format)
	}
	price, ok := doc.JSON.Field("price")
	if !ok || !reflect.DeepEqual(price, tree.NewScalar(json.Number("1200.50"))) {
		t.Errorf("Field(price) = %#v, want 1200.50", price)
	}
}

func TestParseFile_ExtensionWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "looks-like-xml.json")
	if err := os.WriteFile(path, []byte(`<customer/>`), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	if _, err := ParseFile(path, FormatAuto); err == nil {
		t.Errorf("ParseFile() err = nil, want JSON error for .json file with XML content")
	}
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile("nonexistentfile.json", FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with non-existent file, err = nil, want error")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Errorf("ParseFile() with non-existent file, err = %v, want error containing 'not found'", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("", FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with empty path, err = nil, want error")
	} else if !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("ParseFile() with empty path, err = %v, want error containing 'file path is empty'", err)
	}
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xml")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	_, err := ParseFile(path, FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with empty file content, err = nil, want error")
	} else if !strings.Contains(err.Error(), "is empty") {
		t.Errorf("ParseFile() with empty file content, err = %v, want error containing 'is empty'", err)
	}
}
