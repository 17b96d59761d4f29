package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Format is a catalog serialization format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatScript Format = "script"
)

// scriptVar is the variable name used when writing the script form.
const scriptVar = "root"

// ParseFormat parses a format name. "js" is accepted as an alias for script
// and "yml" for yaml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "script", "js":
		return FormatScript, nil
	default:
		return "", fmt.Errorf("unknown catalog format %q (want json, yaml or script)", s)
	}
}

// DetectFormat guesses the format of catalog bytes.
func DetectFormat(data []byte) Format {
	if scriptPrefixRe.Match(data) {
		return FormatScript
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

// Encode writes r to w in the given format. Loading the output yields a Root
// equal to r.
func Encode(w io.Writer, r *Root, f Format) error {
	doc := r.document()
	switch f {
	case FormatJSON:
		return writeJSON(w, doc, "  ")
	case FormatScript:
		if _, err := fmt.Fprintf(w, "const %s = ", scriptVar); err != nil {
			return err
		}
		return writeJSON(w, doc, "\t")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding catalog as YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown catalog format %q", f)
	}
}

func writeJSON(w io.Writer, doc document, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding catalog as JSON: %w", err)
	}
	return nil
}

// MarshalJSON encodes r in the catalog wire format.
func (r *Root) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.document())
}

// UnmarshalJSON decodes and validates a catalog, replacing r.
func (r *Root) UnmarshalJSON(data []byte) error {
	loaded, err := Decode(data)
	if err != nil {
		return err
	}
	*r = *loaded
	return nil
}
