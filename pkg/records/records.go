// Package records reads and writes tagged-union records in the document
// formats the CLI understands: JSON (including newline-delimited JSON),
// JSONC, YAML and CBOR.
//
// Every format decodes into unions.Record values, string-keyed maps whose
// nested values are maps, slices and scalars. A document may hold a single
// record, an array of records, or a stream of either.
package records

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gork-labs/incomectl/pkg/unions"
)

// Format names a record encoding.
type Format string

const (
	Auto  Format = "auto"
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	CBOR  Format = "cbor"
)

// ParseFormat parses a format name. "yml" is accepted for YAML and "" for
// Auto.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "json", "ndjson", "jsonl":
		return JSON, nil
	case "jsonc":
		return JSONC, nil
	case "yaml", "yml":
		return YAML, nil
	case "cbor":
		return CBOR, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// DetectFormat picks a format from the file extension of name, falling back
// to sniffing data: JSON text starts with '{', '[' or a comment, input that
// is not valid UTF-8 is CBOR, anything else is YAML.
func DetectFormat(name string, data []byte) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".ndjson", ".jsonl":
		return JSON
	case ".jsonc":
		return JSONC
	case ".yaml", ".yml":
		return YAML
	case ".cbor":
		return CBOR
	}

	if !utf8.Valid(data) {
		return CBOR
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return JSON
	case trimmed[0] == '{', trimmed[0] == '[':
		return JSON
	case bytes.HasPrefix(trimmed, []byte("//")), bytes.HasPrefix(trimmed, []byte("/*")):
		return JSONC
	default:
		return YAML
	}
}

// Read decodes every record in data. Auto is resolved with DetectFormat.
func Read(data []byte, f Format) ([]unions.Record, error) {
	if f == Auto {
		f = DetectFormat("", data)
	}
	switch f {
	case JSON, JSONC:
		return readJSON(data)
	case YAML:
		return readYAML(data)
	case CBOR:
		return readCBOR(data)
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

// Write encodes recs to w: one compact JSON object per line, one YAML
// document per record, or a CBOR sequence.
func Write(w io.Writer, f Format, recs []unions.Record) error {
	switch f {
	case JSON, JSONC, Auto:
		return writeJSON(w, recs)
	case YAML:
		return writeYAML(w, recs)
	case CBOR:
		return writeCBOR(w, recs)
	default:
		return fmt.Errorf("unsupported format: %s", f)
	}
}

// appendItems flattens a decoded document into records. Top-level arrays
// contribute each element; every item must be an object.
func appendItems(out []unions.Record, v any) ([]unions.Record, error) {
	switch t := v.(type) {
	case map[string]any:
		return append(out, t), nil
	case []any:
		for _, item := range t {
			rec, ok := item.(map[string]any)
			if !ok {
				return out, fmt.Errorf("record %d: expected object, got %s", len(out), describe(item))
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return out, fmt.Errorf("record %d: expected object, got %s", len(out), describe(v))
	}
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}
