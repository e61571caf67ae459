// Package unions provides encoding and decoding of discriminated (tagged)
// unions to flat structured records.
//
// A tagged union record carries a single discriminator field whose value
// names the active case. The case payload's own fields sit next to the
// discriminator at the top level:
//
//	{"incomeType": "PassiveIncome", "amount": 1200, "source": "Flat 3", ...}
//
// The nested form ({"PassiveIncome": {...}}) is never produced or accepted.
package unions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Record is the structured form a union value is encoded to: string keys
// and arbitrarily nested values as produced by encoding/json, yaml.v3 or a
// CBOR decoder configured for string-keyed maps.
type Record = map[string]any

// Mode controls how fields outside the selected case are treated on decode.
type Mode int

const (
	// Strict rejects any field other than the discriminator and the fields
	// declared by the selected case.
	Strict Mode = iota
	// Lenient ignores unknown fields.
	Lenient
)

// String returns the mode name as used in configuration files and flags.
func (m Mode) String() string {
	switch m {
	case Strict:
		return "strict"
	case Lenient:
		return "lenient"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "strict" or "lenient".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return Strict, nil
	case "lenient":
		return Lenient, nil
	default:
		return Strict, fmt.Errorf("unknown decode mode %q (want strict or lenient)", s)
	}
}

// Case describes one variant of a union over U.
type Case[U any] struct {
	// Name is the exact discriminator value for this case.
	Name string
	// Fields lists the payload field names the case owns. Strict mode uses
	// it to reject foreign fields.
	Fields []string
	// Encode returns the payload fields for a union value holding this case.
	Encode func(U) (Record, error)
	// Decode builds a union value from the payload fields. The discriminator
	// has already been removed from the record.
	Decode func(Record) (U, error)
	// Definition optionally describes the payload shape for Schema.
	Definition *Definition
}

// Option configures a Tagged codec.
type Option func(*settings)

type settings struct {
	mode Mode
}

// WithMode selects strict or lenient decoding. The default is Strict.
func WithMode(m Mode) Option {
	return func(s *settings) { s.mode = m }
}

// Tagged encodes and decodes a union type U using a discriminator field.
// A Tagged value is immutable after construction and safe for concurrent use.
type Tagged[U Discriminator] struct {
	field string
	mode  Mode
	cases map[string]Case[U]
	known map[string]map[string]struct{}
	names []string
}

// NewTagged builds a codec for U. If field is empty the field name is taken
// from U's DiscriminatorField implementation.
func NewTagged[U Discriminator](field string, cases []Case[U], opts ...Option) (*Tagged[U], error) {
	if field == "" {
		var zero U
		if df, ok := any(zero).(DiscriminatorField); ok {
			field = df.DiscriminatorFieldName()
		}
	}
	if field == "" {
		return nil, errors.New("discriminator field name is required")
	}
	if len(cases) == 0 {
		return nil, errors.New("at least one case is required")
	}

	s := settings{mode: Strict}
	for _, opt := range opts {
		opt(&s)
	}

	t := &Tagged[U]{
		field: field,
		mode:  s.mode,
		cases: make(map[string]Case[U], len(cases)),
		known: make(map[string]map[string]struct{}, len(cases)),
		names: make([]string, 0, len(cases)),
	}
	for _, c := range cases {
		if c.Name == "" {
			return nil, errors.New("case name must not be empty")
		}
		if _, dup := t.cases[c.Name]; dup {
			return nil, fmt.Errorf("duplicate case %q", c.Name)
		}
		if c.Encode == nil || c.Decode == nil {
			return nil, fmt.Errorf("case %q: encode and decode functions are required", c.Name)
		}
		known := make(map[string]struct{}, len(c.Fields))
		for _, f := range c.Fields {
			if f == field {
				return nil, fmt.Errorf("case %q: payload field %q collides with the discriminator", c.Name, f)
			}
			known[f] = struct{}{}
		}
		t.cases[c.Name] = c
		t.known[c.Name] = known
		t.names = append(t.names, c.Name)
	}
	return t, nil
}

// WithMode returns a copy of t decoding in mode m. Case tables are shared.
func (t *Tagged[U]) WithMode(m Mode) *Tagged[U] {
	cp := *t
	cp.mode = m
	return &cp
}

// Field returns the discriminator field name.
func (t *Tagged[U]) Field() string { return t.field }

// Mode returns the decode mode.
func (t *Tagged[U]) Mode() Mode { return t.mode }

// Names returns the case names in registration order.
func (t *Tagged[U]) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Encode converts v to a flat record holding the discriminator and the
// payload fields of the active case.
func (t *Tagged[U]) Encode(v U) (Record, error) {
	name := v.DiscriminatorValue()
	if name == "" {
		return nil, ErrEmptyUnion
	}
	c, ok := t.cases[name]
	if !ok {
		return nil, &UnknownVariantError{Field: t.field, Received: name}
	}

	payload, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	if _, clash := payload[t.field]; clash {
		return nil, fmt.Errorf("case %q: payload sets discriminator field %q", name, t.field)
	}

	out := make(Record, len(payload)+1)
	for k, val := range payload {
		out[k] = val
	}
	out[t.field] = name
	return out, nil
}

// Decode converts a flat record back into a union value. It returns one of
// *MissingDiscriminantError, *UnknownVariantError, *UnexpectedFieldError or
// *PayloadDecodeError on failure and never a partially decoded value.
func (t *Tagged[U]) Decode(rec Record) (U, error) {
	var zero U

	raw, ok := rec[t.field]
	if !ok {
		return zero, &MissingDiscriminantError{Field: t.field}
	}
	name, ok := raw.(string)
	if !ok {
		return zero, &MissingDiscriminantError{Field: t.field}
	}

	c, ok := t.cases[name]
	if !ok {
		return zero, &UnknownVariantError{Field: t.field, Received: name}
	}

	if t.mode == Strict {
		if extra := t.firstUnexpected(name, rec); extra != "" {
			return zero, &UnexpectedFieldError{Variant: name, Name: extra}
		}
	}

	payload := make(Record, len(rec))
	for k, val := range rec {
		if k != t.field {
			payload[k] = val
		}
	}

	v, err := c.Decode(payload)
	if err != nil {
		return zero, &PayloadDecodeError{Variant: name, Cause: err}
	}
	return v, nil
}

// firstUnexpected returns the lexically smallest field of rec that the case
// does not own, or "".
func (t *Tagged[U]) firstUnexpected(name string, rec Record) string {
	known := t.known[name]
	var extra []string
	for k := range rec {
		if k == t.field {
			continue
		}
		if _, ok := known[k]; !ok {
			extra = append(extra, k)
		}
	}
	if len(extra) == 0 {
		return ""
	}
	sort.Strings(extra)
	return extra[0]
}

// Schema describes the union as a JSON Type Definition discriminator form.
// Cases registered without a Definition map to the empty form. In lenient
// mode every mapping entry allows additional properties.
func (t *Tagged[U]) Schema() *Definition {
	mapping := make(map[string]*Definition, len(t.names))
	for _, name := range t.names {
		mapping[name], _ = t.CaseSchema(name)
	}
	return &Definition{
		Discriminator: t.field,
		Mapping:       mapping,
	}
}

// CaseSchema returns the standalone properties form of a single case, the
// same document Schema places under that case's mapping entry. It reports
// false for an unregistered name.
func (t *Tagged[U]) CaseSchema(name string) (*Definition, bool) {
	c, ok := t.cases[name]
	if !ok {
		return nil, false
	}
	def := &Definition{}
	if c.Definition != nil {
		cp := *c.Definition
		def = &cp
	}
	if t.mode == Lenient {
		def.AdditionalProperties = true
	}
	return def, true
}
