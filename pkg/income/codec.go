package income

import (
	"fmt"

	"github.com/gork-labs/incomectl/pkg/unions"
)

// Codec is the strict Income codec. Use Codec.WithMode(unions.Lenient) to
// ignore unknown fields.
var Codec = mustCodec()

func mustCodec() *unions.Tagged[Income] {
	c, err := NewCodec(unions.Strict)
	if err != nil {
		panic(fmt.Sprintf("income: codec initialization failed: %v", err))
	}
	return c
}

// NewCodec builds an Income codec decoding in mode m.
func NewCodec(m unions.Mode) (*unions.Tagged[Income], error) {
	return unions.NewTagged(DiscriminatorField, []unions.Case[Income]{
		unions.StructCase(string(IncomeTypeEmploymentIncome), NewIncomeFromEmploymentIncome, Income.EmploymentIncome),
		unions.StructCase(string(IncomeTypePassiveIncome), NewIncomeFromPassiveIncome, Income.PassiveIncome),
	}, unions.WithMode(m))
}

// Encode converts u to its flat record form.
func Encode(u Income) (unions.Record, error) {
	return Codec.Encode(u)
}

// Decode converts a record to an Income using the strict codec.
func Decode(rec unions.Record) (Income, error) {
	return Codec.Decode(rec)
}
