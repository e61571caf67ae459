package unions

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// StructCase builds a Case whose payload is the struct type P. Payload
// fields are the JSON-named fields of P, all required unless tagged
// omitempty, and none may be null unless its Go type can hold nil. Payloads
// are checked against their `validate` tags on both encode and decode.
//
// wrap constructs the union value for a decoded payload; unwrap extracts the
// payload from a union value and reports whether this case is active.
func StructCase[U any, P any](name string, wrap func(P) U, unwrap func(U) (P, bool)) Case[U] {
	pt := reflect.TypeOf((*P)(nil)).Elem()
	fields := structFields(pt)

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	return Case[U]{
		Name:   name,
		Fields: names,
		Encode: func(u U) (Record, error) {
			p, ok := unwrap(u)
			if !ok {
				return nil, fmt.Errorf("case %q is not active", name)
			}
			if pt.Kind() == reflect.Struct {
				if err := getValidator().Struct(p); err != nil {
					return nil, fmt.Errorf("case %q: %w", name, err)
				}
			}
			return payloadToRecord(p)
		},
		Decode: func(rec Record) (U, error) {
			var zero U
			p, err := recordToPayload[P](fields, rec)
			if err != nil {
				return zero, err
			}
			return wrap(p), nil
		},
		Definition: definitionFor(pt, ""),
	}
}

// payloadToRecord flattens a payload struct to its record form.
func payloadToRecord(p any) (Record, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// recordToPayload fills a P from the declared fields of rec. Fields P does
// not declare never reach the JSON decoder, so case-insensitive key matching
// cannot pick them up.
func recordToPayload[P any](fields []structField, rec Record) (P, error) {
	var p P

	subset := make(Record, len(fields))
	for _, f := range fields {
		val, ok := rec[f.Name]
		if !ok {
			if f.Required {
				return p, &MissingFieldError{Name: f.Name}
			}
			continue
		}
		if val == nil && !nullable(f.Field.Type) {
			return p, &NullFieldError{Name: f.Name}
		}
		subset[f.Name] = val
	}

	data, err := json.Marshal(subset)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, err
	}

	if reflect.TypeOf((*P)(nil)).Elem().Kind() == reflect.Struct {
		if err := getValidator().Struct(p); err != nil {
			return p, err
		}
	}
	return p, nil
}

// nullable reports whether JSON null is a meaningful value for t.
func nullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
		return true
	default:
		return false
	}
}
