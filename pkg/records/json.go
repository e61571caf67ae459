package records

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/jsonc"

	"github.com/gork-labs/incomectl/pkg/unions"
)

// readJSON decodes a JSON value stream. Comments and trailing commas are
// stripped first, so JSONC input is accepted too.
func readJSON(data []byte) ([]unions.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))

	var out []unions.Record
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("parse json: %w", err)
		}
		if out, err = appendItems(out, v); err != nil {
			return out, err
		}
	}
}

func writeJSON(w io.Writer, recs []unions.Record) error {
	enc := json.NewEncoder(w)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalJSON decodes a single JSON (or JSONC) object into a record.
func UnmarshalJSON(data []byte) (unions.Record, error) {
	var rec unions.Record
	if err := json.Unmarshal(jsonc.ToJSON(data), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
