package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"

	"go.yaml.in/yaml/v3"
)

// scriptPrefixRe matches the assignment the generator wraps the catalog in,
// e.g. "const root = ".
var scriptPrefixRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+[A-Za-z_$][\w$]*\s*=\s*`)

// Load reads a catalog from r. The format (JSON, YAML or script) is detected
// from the content. Malformed or non-conforming input yields a *ParseError.
func Load(r io.Reader) (*Root, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return decode(data, "")
}

// LoadFile reads the catalog file at path.
func LoadFile(path string) (*Root, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return decode(data, path)
}

// Decode parses catalog bytes.
func Decode(data []byte) (*Root, error) {
	return decode(data, "")
}

func decode(data []byte, source string) (*Root, error) {
	raw, err := decodeGeneric(data)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("converting to JSON: %w", err)}
	}

	result, err := validateJSON(jsonData)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	if !result.Valid {
		return nil, &ParseError{Source: source, Issues: result.Issues}
	}

	var doc document
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	root, issues := build(doc)
	if len(issues) > 0 {
		return nil, &ParseError{Source: source, Issues: issues}
	}
	return root, nil
}

// New assembles a Root from already-decoded parts. Inputs are copied. It
// returns ErrDuplicateType when two descriptors share a (packageName, name)
// pair and an error for a descriptor with an unknown kind or empty key.
func New(docs, modules []any, packages []string, types []TypeDescriptor) (*Root, error) {
	for i, t := range types {
		if t.Name == "" || t.PackageName == "" {
			return nil, fmt.Errorf("type %d: name and packageName are required", i)
		}
		if !t.Kind.Valid() {
			return nil, fmt.Errorf("type %s: unknown kind %q", t.QualifiedName(), t.Kind)
		}
	}
	doc := document{
		Docs:     cloneSlice(docs),
		Modules:  cloneSlice(modules),
		Packages: cloneSlice(packages),
		Types:    make([]TypeDescriptor, len(types)),
	}
	for i, t := range types {
		doc.Types[i] = t.clone()
	}
	root, issues := build(doc)
	if len(issues) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateType, issues[0].Message)
	}
	return root, nil
}

// build indexes doc into a Root. It takes ownership of doc's slices.
func build(doc document) (*Root, []Issue) {
	if doc.Docs == nil {
		doc.Docs = []any{}
	}
	if doc.Modules == nil {
		doc.Modules = []any{}
	}
	if doc.Packages == nil {
		doc.Packages = []string{}
	}
	if doc.Types == nil {
		doc.Types = []TypeDescriptor{}
	}

	root := &Root{
		docs:      doc.Docs,
		modules:   doc.Modules,
		packages:  doc.Packages,
		types:     doc.Types,
		byKey:     make(map[typeKey]int, len(doc.Types)),
		byPackage: make(map[string][]int),
	}

	var issues []Issue
	for i := range root.types {
		t := &root.types[i]
		// An empty modifier set and an absent one are the same thing.
		if len(t.Modifiers) == 0 {
			t.Modifiers = nil
		}
		key := typeKey{pkg: t.PackageName, name: t.Name}
		if first, dup := root.byKey[key]; dup {
			issues = append(issues, Issue{
				Path:    fmt.Sprintf("/types/%d", i),
				Keyword: "unique",
				Message: fmt.Sprintf("%s already declared at /types/%d", t.QualifiedName(), first),
			})
			continue
		}
		root.byKey[key] = i
		root.byPackage[t.PackageName] = append(root.byPackage[t.PackageName], i)
	}
	return root, issues
}

// decodeGeneric decodes catalog bytes into JSON-compatible values. JSON is
// read strictly; the script form is JSON once its assignment wrapper and
// trailing commas are removed; anything else is YAML.
func decodeGeneric(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty catalog document")
	}

	switch DetectFormat(data) {
	case FormatScript:
		return decodeJSON(stripTrailingCommas(unwrapScript(data)))
	case FormatJSON:
		return decodeJSON(data)
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	return normalizeYAML(raw), nil
}

// decodeJSON decodes exactly one JSON value. Duplicate object keys and any
// data after the value are errors.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := readJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err != nil {
			return nil, fmt.Errorf("unmarshaling catalog: %w", err)
		}
		return nil, fmt.Errorf("unmarshaling catalog: unexpected %v after top-level value", tok)
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		m := make(map[string]any)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("object key %v is not a string", kt)
			}
			if _, dup := m[key]; dup {
				return nil, fmt.Errorf("duplicate key %q at offset %d", key, dec.InputOffset())
			}
			v, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			m[key] = v
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return m, nil
	case '[':
		a := []any{}
		for dec.More() {
			v, err := readJSONValue(dec)
			if err != nil {
				return nil, err
			}
			a = append(a, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unexpected %v", delim)
	}
}

// stripTrailingCommas removes commas that directly precede a closing brace
// or bracket, outside string literals.
func stripTrailingCommas(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString, escaped := false, false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			out = append(out, c)
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(data) && isJSONSpace(data[j]) {
				j++
			}
			if j < len(data) && (data[j] == '}' || data[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// unwrapScript strips the "const root = " prefix and a trailing semicolon.
func unwrapScript(data []byte) []byte {
	loc := scriptPrefixRe.FindIndex(data)
	if loc == nil {
		return data
	}
	body := bytes.TrimSpace(data[loc[1]:])
	body = bytes.TrimSuffix(body, []byte(";"))
	return body
}

// normalizeYAML recursively converts YAML-decoded values to JSON-compatible
// types. Mappings with non-string keys are re-keyed by their string form.
func normalizeYAML(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[k] = normalizeYAML(v)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalizeYAML(v)
		}
		return m
	case []any:
		a := make([]any, len(val))
		for i, v := range val {
			a[i] = normalizeYAML(v)
		}
		return a
	default:
		return val
	}
}
