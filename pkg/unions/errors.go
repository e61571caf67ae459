package unions

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification with errors.Is.
var (
	ErrMissingDiscriminant = errors.New("missing discriminator")
	ErrUnknownVariant      = errors.New("unknown variant")
	ErrPayloadDecode       = errors.New("payload decode failed")
	ErrUnexpectedField     = errors.New("unexpected field")
	ErrMissingField        = errors.New("missing field")
	ErrNullField           = errors.New("null field")
	ErrEmptyUnion          = errors.New("no value set in union")
)

// MissingDiscriminantError reports a record whose discriminator field is
// absent or not a string.
type MissingDiscriminantError struct {
	Field string
}

func (e *MissingDiscriminantError) Error() string {
	return fmt.Sprintf("missing or non-string discriminator field %q", e.Field)
}

// Is reports whether target is ErrMissingDiscriminant.
func (e *MissingDiscriminantError) Is(target error) bool {
	return target == ErrMissingDiscriminant
}

// UnknownVariantError reports a discriminator value that names no case.
type UnknownVariantError struct {
	Field    string
	Received string
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown %s value %q", e.Field, e.Received)
}

// Is reports whether target is ErrUnknownVariant.
func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// UnexpectedFieldError reports a field outside the discriminator and the
// selected variant's own fields. Only strict mode returns it.
type UnexpectedFieldError struct {
	Variant string
	Name    string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("unexpected field %q for variant %s", e.Name, e.Variant)
}

// Is reports whether target is ErrUnexpectedField.
func (e *UnexpectedFieldError) Is(target error) bool {
	return target == ErrUnexpectedField
}

// PayloadDecodeError wraps a failure returned by a variant's payload decoder.
// The cause is kept intact and reachable through errors.Unwrap.
type PayloadDecodeError struct {
	Variant string
	Cause   error
}

func (e *PayloadDecodeError) Error() string {
	return fmt.Sprintf("decode %s payload: %v", e.Variant, e.Cause)
}

// Unwrap returns the payload decoder's error.
func (e *PayloadDecodeError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrPayloadDecode.
func (e *PayloadDecodeError) Is(target error) bool {
	return target == ErrPayloadDecode
}

// MissingFieldError is returned by struct payload decoders when a required
// payload field is absent from the record.
type MissingFieldError struct {
	Name string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Name)
}

// Is reports whether target is ErrMissingField.
func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}

// NullFieldError is returned by struct payload decoders when a field whose
// Go type cannot hold null is present with a null value.
type NullFieldError struct {
	Name string
}

func (e *NullFieldError) Error() string {
	return fmt.Sprintf("field %q must not be null", e.Name)
}

// Is reports whether target is ErrNullField.
func (e *NullFieldError) Is(target error) bool {
	return target == ErrNullField
}
