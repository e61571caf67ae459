package records

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/gork-labs/incomectl/pkg/unions"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys
// and smallest integer and float encodings, so a record always produces the
// same bytes.
var encMode cbor.EncMode

// decMode decodes untyped maps as map[string]any so CBOR records have the
// same shape as JSON and YAML ones.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("records: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("records: CBOR decoder initialization failed: " + err.Error())
	}
}

// readCBOR decodes a CBOR sequence (RFC 8742).
func readCBOR(data []byte) ([]unions.Record, error) {
	dec := decMode.NewDecoder(bytes.NewReader(data))

	var out []unions.Record
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("parse cbor: %w", err)
		}
		if out, err = appendItems(out, v); err != nil {
			return out, err
		}
	}
}

func writeCBOR(w io.Writer, recs []unions.Record) error {
	enc := encMode.NewEncoder(w)
	for _, rec := range recs {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

// MarshalCBOR encodes a single record deterministically.
func MarshalCBOR(rec unions.Record) ([]byte, error) {
	return encMode.Marshal(rec)
}

// UnmarshalCBOR decodes a single CBOR map into a record.
func UnmarshalCBOR(data []byte) (unions.Record, error) {
	var rec unions.Record
	if err := decMode.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}
