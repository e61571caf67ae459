package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gork-labs/incomectl/pkg/unions"
)

// readYAML decodes a multi-document YAML stream.
func readYAML(data []byte) ([]unions.Record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var out []unions.Record
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("parse yaml: %w", err)
		}
		if out, err = appendItems(out, v); err != nil {
			return out, err
		}
	}
}

func writeYAML(w io.Writer, recs []unions.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return enc.Close()
}
