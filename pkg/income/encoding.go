package income

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/gork-labs/incomectl/pkg/records"
	"github.com/gork-labs/incomectl/pkg/unions"
)

// MarshalJSON implements json.Marshaler.
func (u Income) MarshalJSON() ([]byte, error) {
	rec, err := Codec.Encode(u)
	if err != nil {
		return nil, err
	}
	return json.Marshal(rec)
}

// UnmarshalJSON implements json.Unmarshaler using the strict codec. A JSON
// null leaves u unchanged.
func (u *Income) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var rec unions.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	v, err := Codec.Decode(rec)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (u Income) MarshalYAML() (interface{}, error) {
	return Codec.Encode(u)
}

// UnmarshalYAML implements yaml.Unmarshaler using the strict codec.
func (u *Income) UnmarshalYAML(node *yaml.Node) error {
	var rec unions.Record
	if err := node.Decode(&rec); err != nil {
		return err
	}
	v, err := Codec.Decode(rec)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalCBOR implements cbor.Marshaler with deterministic encoding.
func (u Income) MarshalCBOR() ([]byte, error) {
	rec, err := Codec.Encode(u)
	if err != nil {
		return nil, err
	}
	return records.MarshalCBOR(rec)
}

// UnmarshalCBOR implements cbor.Unmarshaler using the strict codec.
func (u *Income) UnmarshalCBOR(data []byte) error {
	rec, err := records.UnmarshalCBOR(data)
	if err != nil {
		return err
	}
	v, err := Codec.Decode(rec)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
