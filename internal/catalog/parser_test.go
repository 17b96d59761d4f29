package catalog

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

var psychopathTypes = []struct {
	name string
	kind Kind
}{
	{"Directory", KindClass},
	{"File", KindClass},
	{"Folder", KindClass},
	{"Location", KindAbstractClass},
	{"Locator", KindClass},
	{"Option", KindClass},
	{"Progress", KindClass},
}

func loadSample(t *testing.T) *Root {
	t.Helper()
	root, err := LoadFile(testPath("psychopath.js"))
	if err != nil {
		t.Fatalf("LoadFile(psychopath.js) error: %v", err)
	}
	return root
}

func TestLoadFile_AllFormats(t *testing.T) {
	for _, file := range []string{"psychopath.js", "psychopath.json", "psychopath.yaml"} {
		t.Run(file, func(t *testing.T) {
			root, err := LoadFile(testPath(file))
			if err != nil {
				t.Fatalf("LoadFile(%s) error: %v", file, err)
			}
			if got := root.Packages(); len(got) != 1 || got[0] != "psychopath" {
				t.Errorf("Packages() = %v, want [psychopath]", got)
			}
			if len(root.Docs()) != 0 || len(root.Modules()) != 0 {
				t.Errorf("expected empty docs and modules, got %v / %v", root.Docs(), root.Modules())
			}
			types := root.Types()
			if len(types) != len(psychopathTypes) {
				t.Fatalf("len(Types()) = %d, want %d", len(types), len(psychopathTypes))
			}
			for i, want := range psychopathTypes {
				if types[i].Name != want.name || types[i].Kind != want.kind {
					t.Errorf("types[%d] = %s/%s, want %s/%s", i, types[i].Name, types[i].Kind, want.name, want.kind)
				}
				if types[i].ImplementationTag() != "java.util.Collections$UnmodifiableSet" {
					t.Errorf("types[%d] implementation tag = %q", i, types[i].ImplementationTag())
				}
			}
		})
	}
}

func TestLoadFile_FormatsAgree(t *testing.T) {
	js := loadSample(t)
	for _, file := range []string{"psychopath.json", "psychopath.yaml"} {
		other, err := LoadFile(testPath(file))
		if err != nil {
			t.Fatalf("LoadFile(%s) error: %v", file, err)
		}
		if !equalRoots(js, other) {
			t.Errorf("%s differs from psychopath.js", file)
		}
	}
}

func TestLoadFile_KindsAreEnumerated(t *testing.T) {
	root := loadSample(t)
	for _, td := range root.Types() {
		if td.Kind != KindClass && td.Kind != KindAbstractClass {
			t.Errorf("%s has kind %q", td.QualifiedName(), td.Kind)
		}
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(testPath("nonexistent.json"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		t.Errorf("missing file should not be a ParseError, got %v", err)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	tests := []struct {
		file    string
		keyword string
		path    string
	}{
		{"invalid-missing-types.json", "required", ""},
		{"invalid-bad-kind.json", "enum", "/types/0/type"},
		{"invalid-wrong-type.json", "type", "/packages"},
		{"invalid-duplicate.json", "unique", "/types/2"},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			_, err := LoadFile(testPath(tt.file))
			if err == nil {
				t.Fatalf("expected error for %s, got nil", tt.file)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if pe.Source != testPath(tt.file) {
				t.Errorf("Source = %q, want %q", pe.Source, testPath(tt.file))
			}
			found := false
			for _, issue := range pe.Issues {
				if issue.Keyword == tt.keyword && issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("expected issue keyword=%s path=%q, got %+v", tt.keyword, tt.path, pe.Issues)
			}
		})
	}
}

func TestLoadFile_SyntaxError(t *testing.T) {
	_, err := LoadFile(testPath("invalid-syntax.json"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if pe.Err == nil {
		t.Error("expected decode error to be set")
	}
	if !strings.Contains(err.Error(), "invalid-syntax.json") {
		t.Errorf("error should name the source: %v", err)
	}
}

func TestLoad_Empty(t *testing.T) {
	_, err := Load(strings.NewReader("   \n"))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError for empty input, got %v", err)
	}
}

func TestLoad_UnknownField(t *testing.T) {
	data := `{"docs": [], "modules": [], "packages": [], "types": [], "extra": 1}`
	_, err := Load(strings.NewReader(data))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError for unknown field, got %v", err)
	}
}

func TestLoad_ModifiersOptional(t *testing.T) {
	data := `{"docs": [], "modules": [], "packages": ["p"], "types": [
		{"name": "A", "packageName": "p", "type": "Class"},
		{"name": "B", "packageName": "p", "type": "Class", "modifiers": {}}
	]}`
	root, err := Load(strings.NewReader(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, td := range root.Types() {
		if td.Modifiers != nil {
			t.Errorf("%s: expected nil modifiers, got %v", td.Name, td.Modifiers)
		}
		if td.ImplementationTag() != "" {
			t.Errorf("%s: expected empty implementation tag", td.Name)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		input string
		want  Format
	}{
		{"const root = {}", FormatScript},
		{"  let catalog={}", FormatScript},
		{"var root = {};", FormatScript},
		{"export const root = {}", FormatScript},
		{`{"docs": []}`, FormatJSON},
		{"\n  [1]", FormatJSON},
		{"docs: []", FormatYAML},
		{"", FormatYAML},
	}
	for _, tt := range tests {
		if got := DetectFormat([]byte(tt.input)); got != tt.want {
			t.Errorf("DetectFormat(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestUnwrapScript(t *testing.T) {
	got := string(unwrapScript([]byte("const root = {\"a\": 1};\n")))
	if got != `{"a": 1}` {
		t.Errorf("unwrapScript = %q", got)
	}
}

func TestNew(t *testing.T) {
	types := []TypeDescriptor{
		{Name: "Folder", PackageName: "psychopath", Kind: KindClass},
		{Name: "Location", PackageName: "psychopath", Kind: KindAbstractClass},
	}
	root, err := New(nil, nil, []string{"psychopath"}, types)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	types[0].Name = "Mutated"
	if _, err := root.LookupType("psychopath", "Folder"); err != nil {
		t.Errorf("New should copy its input: %v", err)
	}
	if root.Docs() == nil || root.Modules() == nil {
		t.Error("nil docs/modules should be normalized to empty")
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, nil, nil, []TypeDescriptor{
		{Name: "A", PackageName: "p", Kind: KindClass},
		{Name: "A", PackageName: "p", Kind: KindClass},
	})
	if !errors.Is(err, ErrDuplicateType) {
		t.Errorf("expected ErrDuplicateType, got %v", err)
	}

	_, err = New(nil, nil, nil, []TypeDescriptor{{Name: "A", PackageName: "p", Kind: "Interface"}})
	if err == nil {
		t.Error("expected error for unknown kind")
	}

	_, err = New(nil, nil, nil, []TypeDescriptor{{Name: "", PackageName: "p", Kind: KindClass}})
	if err == nil {
		t.Error("expected error for empty name")
	}
}

func TestLoad_StrictJSON(t *testing.T) {
	const prefix = `{"docs": [], "modules": [], "packages": ["p"], "types": [`
	tests := []struct {
		name    string
		input   string
		wantErr bool
		wantTag string
	}{
		{
			name:    "escaped slash",
			input:   prefix + `{"name": "A", "packageName": "p", "type": "Class", "modifiers": {"#": "a\/b"}}]}`,
			wantTag: "a/b",
		},
		{
			name:    "surrogate pair",
			input:   prefix + `{"name": "A", "packageName": "p", "type": "Class", "modifiers": {"#": "\ud83d\ude00"}}]}`,
			wantTag: "\U0001F600",
		},
		{
			name:    "long key",
			input:   `{"docs": [{"` + strings.Repeat("k", 2048) + `": 1}], "modules": [], "packages": [], "types": []}`,
			wantTag: "",
		},
		{
			name:    "trailing garbage",
			input:   `{"docs": [], "modules": [], "packages": [], "types": []} }}} not json`,
			wantErr: true,
		},
		{
			name:    "second document",
			input:   "{\"docs\": [], \"modules\": [], \"packages\": [], \"types\": []}\n---\nfoo: 1\n",
			wantErr: true,
		},
		{
			name:    "duplicate key",
			input:   `{"docs": [], "modules": [], "packages": [], "packages": ["p"], "types": []}`,
			wantErr: true,
		},
		{
			name:    "trailing comma",
			input:   `{"docs": [], "modules": [], "packages": [], "types": [],}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Decode([]byte(tt.input))
			if tt.wantErr {
				var pe *ParseError
				if !errors.As(err, &pe) || pe.Err == nil {
					t.Fatalf("expected decode ParseError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			types := root.Types()
			if tt.wantTag != "" && (len(types) != 1 || types[0].ImplementationTag() != tt.wantTag) {
				t.Errorf("got types %+v, want tag %q", types, tt.wantTag)
			}
		})
	}
}

func TestLoad_ScriptTrailingCommas(t *testing.T) {
	data := "const root = {\n\t\"docs\": [],\n\t\"modules\": [],\n\t\"packages\": [\"p\",],\n\t\"types\": [\n" +
		"\t\t{\"modifiers\": {\"#\": \",}\",}, \"name\": \"A\", \"packageName\": \"p\", \"type\": \"Class\",},\n\t],\n};\n"
	root, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	td, err := root.LookupType("p", "A")
	if err != nil {
		t.Fatal(err)
	}
	if td.ImplementationTag() != ",}" {
		t.Errorf("commas inside strings must survive, got tag %q", td.ImplementationTag())
	}
}

func TestStripTrailingCommas(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`[1, 2,]`, `[1, 2]`},
		{"{\"a\": 1,\n\t}", "{\"a\": 1\n\t}"},
		{`{"a": "x,]",}`, `{"a": "x,]"}`},
		{`{"a": "q\",}"}`, `{"a": "q\",}"}`},
		{`[1, 2]`, `[1, 2]`},
	}
	for _, tt := range tests {
		if got := string(stripTrailingCommas([]byte(tt.in))); got != tt.want {
			t.Errorf("stripTrailingCommas(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
