package income

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gork-labs/incomectl/pkg/unions"
)

var (
	salary = NewIncomeFromEmploymentIncome(IncomeEmploymentIncome{
		Amount:         52000,
		EmploymentType: EmploymentTypeSalaried,
		Source:         "Acme Corp",
	})
	rent = NewIncomeFromPassiveIncome(IncomePassiveIncome{
		Amount:            1200.5,
		PassiveIncomeType: PassiveIncomeTypeRental,
		Source:            "Flat 3",
	})
)

func TestAccessors(t *testing.T) {
	assert.True(t, salary.IsEmploymentIncome())
	assert.False(t, salary.IsPassiveIncome())
	assert.Equal(t, IncomeTypeEmploymentIncome, salary.IncomeType())

	p, ok := salary.EmploymentIncome()
	require.True(t, ok)
	assert.Equal(t, "Acme Corp", p.Source)
	_, ok = salary.PassiveIncome()
	assert.False(t, ok)

	assert.True(t, rent.IsPassiveIncome())
	assert.Equal(t, IncomeTypePassiveIncome, rent.IncomeType())
	assert.Equal(t, IncomePassiveIncome{Amount: 1200.5, PassiveIncomeType: PassiveIncomeTypeRental, Source: "Flat 3"}, rent.Value())

	var zero Income
	assert.Nil(t, zero.Value())
	assert.Equal(t, IncomeType(""), zero.IncomeType())
	assert.Equal(t, "incomeType", zero.DiscriminatorFieldName())
}

func TestPayloadCopiesAreIsolated(t *testing.T) {
	payload := IncomeEmploymentIncome{Amount: 10, EmploymentType: EmploymentTypeHourly, Source: "Cafe"}
	u := NewIncomeFromEmploymentIncome(payload)
	payload.Amount = 99

	got, _ := u.EmploymentIncome()
	assert.Equal(t, float64(10), got.Amount)

	got.Amount = 77
	again, _ := u.EmploymentIncome()
	assert.Equal(t, float64(10), again.Amount)
}

type recordingVisitor struct {
	seen string
}

func (v *recordingVisitor) VisitEmploymentIncome(p IncomeEmploymentIncome) error {
	v.seen = "employment:" + p.Source
	return nil
}

func (v *recordingVisitor) VisitPassiveIncome(p IncomePassiveIncome) error {
	v.seen = "passive:" + p.Source
	return nil
}

func TestVisit(t *testing.T) {
	v := &recordingVisitor{}

	require.NoError(t, salary.Visit(v))
	assert.Equal(t, "employment:Acme Corp", v.seen)

	require.NoError(t, rent.Visit(v))
	assert.Equal(t, "passive:Flat 3", v.seen)

	assert.ErrorIs(t, Income{}.Visit(v), unions.ErrEmptyUnion)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Income
		want unions.Record
	}{
		{
			name: "employment",
			in:   salary,
			want: unions.Record{
				"incomeType":     "EmploymentIncome",
				"amount":         float64(52000),
				"employmentType": "Salaried",
				"source":         "Acme Corp",
			},
		},
		{
			name: "passive",
			in:   rent,
			want: unions.Record{
				"incomeType":        "PassiveIncome",
				"amount":            1200.5,
				"passiveIncomeType": "Rental",
				"source":            "Flat 3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in.DiscriminatorValue(), got[DiscriminatorField])
		})
	}
}

func TestEncodeNonFiniteAmount(t *testing.T) {
	for _, amount := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := Encode(NewIncomeFromEmploymentIncome(IncomeEmploymentIncome{
			Amount: amount, EmploymentType: EmploymentTypeSalaried, Source: "Acme Corp",
		}))
		require.Error(t, err, "amount %v", amount)
		assert.Contains(t, err.Error(), "finite")

		_, err = json.Marshal(NewIncomeFromPassiveIncome(IncomePassiveIncome{
			Amount: amount, PassiveIncomeType: PassiveIncomeTypeRental, Source: "Flat 3",
		}))
		assert.Error(t, err, "amount %v", amount)
	}
}

func TestEncodeZeroValue(t *testing.T) {
	_, err := Encode(Income{})
	assert.ErrorIs(t, err, unions.ErrEmptyUnion)

	_, err = json.Marshal(Income{})
	assert.ErrorIs(t, err, unions.ErrEmptyUnion)
}

func TestRoundTrip(t *testing.T) {
	values := []Income{
		salary,
		rent,
		NewIncomeFromEmploymentIncome(IncomeEmploymentIncome{EmploymentType: EmploymentTypeContract}),
		NewIncomeFromPassiveIncome(IncomePassiveIncome{Amount: -3.75, PassiveIncomeType: PassiveIncomeTypeRoyalties, Source: "Ünïcode"}),
		NewIncomeFromPassiveIncome(IncomePassiveIncome{Amount: 1e9, PassiveIncomeType: PassiveIncomeTypeInvestment}),
	}

	for _, v := range values {
		rec, err := Encode(v)
		require.NoError(t, err)
		got, err := Decode(rec)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		record unions.Record
		want   Income
		check  func(t *testing.T, err error)
	}{
		{
			name: "employment",
			record: unions.Record{
				"incomeType": "EmploymentIncome", "amount": 52000, "source": "Acme Corp", "employmentType": "Salaried",
			},
			want: salary,
		},
		{
			name: "unknown variant",
			record: unions.Record{"incomeType": "Bogus"},
			check: func(t *testing.T, err error) {
				var uv *unions.UnknownVariantError
				require.ErrorAs(t, err, &uv)
				assert.Equal(t, "Bogus", uv.Received)
				assert.Equal(t, `unknown incomeType value "Bogus"`, err.Error())
			},
		},
		{
			name:   "missing discriminator",
			record: unions.Record{},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, unions.ErrMissingDiscriminant)
			},
		},
		{
			name: "lowercase discriminator",
			record: unions.Record{
				"incomeType": "employmentincome", "amount": 1, "source": "x", "employmentType": "Salaried",
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, unions.ErrUnknownVariant)
			},
		},
		{
			name: "amount is not a number",
			record: unions.Record{
				"incomeType": "EmploymentIncome", "amount": "not-a-number", "source": "x", "employmentType": "Salaried",
			},
			check: func(t *testing.T, err error) {
				var pd *unions.PayloadDecodeError
				require.ErrorAs(t, err, &pd)
				assert.Equal(t, "EmploymentIncome", pd.Variant)
				var typeErr *json.UnmarshalTypeError
				require.ErrorAs(t, pd.Cause, &typeErr)
				assert.Equal(t, "amount", typeErr.Field)
			},
		},
		{
			name: "enum value outside the case",
			record: unions.Record{
				"incomeType": "PassiveIncome", "amount": 1, "source": "x", "passiveIncomeType": "Salaried",
			},
			check: func(t *testing.T, err error) {
				var pd *unions.PayloadDecodeError
				require.ErrorAs(t, err, &pd)
				assert.Equal(t, "PassiveIncome", pd.Variant)
			},
		},
		{
			name: "fields of the other case",
			record: unions.Record{
				"incomeType": "PassiveIncome", "amount": 1, "source": "x", "employmentType": "Salaried",
			},
			check: func(t *testing.T, err error) {
				var uf *unions.UnexpectedFieldError
				require.ErrorAs(t, err, &uf)
				assert.Equal(t, "employmentType", uf.Name)
			},
		},
		{
			name: "null amount",
			record: unions.Record{
				"incomeType": "EmploymentIncome", "amount": nil, "source": "Acme Corp", "employmentType": "Salaried",
			},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, unions.ErrPayloadDecode)
				var nf *unions.NullFieldError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "amount", nf.Name)
			},
		},
		{
			name: "null source",
			record: unions.Record{
				"incomeType": "PassiveIncome", "amount": 10, "source": nil, "passiveIncomeType": "Rental",
			},
			check: func(t *testing.T, err error) {
				var nf *unions.NullFieldError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, "source", nf.Name)
			},
		},
		{
			name: "missing payload field",
			record: unions.Record{
				"incomeType": "EmploymentIncome", "amount": 1, "employmentType": "Hourly",
			},
			check: func(t *testing.T, err error) {
				var mf *unions.MissingFieldError
				require.ErrorAs(t, err, &mf)
				assert.Equal(t, "source", mf.Name)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.record)
			if tt.check != nil {
				require.Error(t, err)
				assert.Equal(t, Income{}, got)
				tt.check(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLenientCodec(t *testing.T) {
	c, err := NewCodec(unions.Lenient)
	require.NoError(t, err)

	got, err := c.Decode(unions.Record{
		"incomeType": "PassiveIncome", "amount": 1200.5, "source": "Flat 3",
		"passiveIncomeType": "Rental", "currency": "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, rent, got)

	_, err = Decode(unions.Record{
		"incomeType": "PassiveIncome", "amount": 1200.5, "source": "Flat 3",
		"passiveIncomeType": "Rental", "currency": "EUR",
	})
	assert.ErrorIs(t, err, unions.ErrUnexpectedField)
}

func TestExclusivity(t *testing.T) {
	c := Codec.WithMode(unions.Lenient)
	rec := unions.Record{
		"amount": 5, "source": "both", "employmentType": "Hourly", "passiveIncomeType": "Royalties",
	}

	seen := map[IncomeType]bool{}
	for _, name := range c.Names() {
		rec[DiscriminatorField] = name
		got, err := c.Decode(rec)
		require.NoError(t, err)
		assert.Equal(t, IncomeType(name), got.IncomeType())
		assert.NotEqual(t, got.IsEmploymentIncome(), got.IsPassiveIncome())
		seen[got.IncomeType()] = true
	}
	assert.Len(t, seen, 2)
}

func TestJSON(t *testing.T) {
	data, err := json.Marshal(salary)
	require.NoError(t, err)
	assert.JSONEq(t, `{"incomeType":"EmploymentIncome","amount":52000,"source":"Acme Corp","employmentType":"Salaried"}`, string(data))

	var got Income
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, salary, got)

	type holder struct {
		Incomes []Income `json:"incomes"`
		Primary *Income  `json:"primary"`
	}
	in := holder{Incomes: []Income{salary, rent}}
	data, err = json.Marshal(in)
	require.NoError(t, err)

	var out holder
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestJSONErrors(t *testing.T) {
	var got Income
	err := json.Unmarshal([]byte(`{"incomeType":"Bogus"}`), &got)
	assert.ErrorIs(t, err, unions.ErrUnknownVariant)

	err = json.Unmarshal([]byte(`{"incomeType":"EmploymentIncome","amount":"not-a-number","source":"x","employmentType":"Salaried"}`), &got)
	var pd *unions.PayloadDecodeError
	require.ErrorAs(t, err, &pd)

	got = Income{}
	err = json.Unmarshal([]byte(`{"incomeType":"EmploymentIncome","amount":null,"source":null,"employmentType":"Salaried"}`), &got)
	assert.ErrorIs(t, err, unions.ErrNullField)
	assert.Equal(t, Income{}, got)

	err = json.Unmarshal([]byte(`{"incomeType":"PassiveIncome","amount":null,"source":"Flat 3","passiveIncomeType":"Rental"}`), &got)
	assert.ErrorIs(t, err, unions.ErrNullField)

	err = json.Unmarshal([]byte(`[1,2]`), &got)
	assert.Error(t, err)
	assert.Equal(t, Income{}, got)

	require.NoError(t, json.Unmarshal([]byte(`null`), &got))
	assert.Equal(t, Income{}, got)
}

func TestYAML(t *testing.T) {
	data, err := yaml.Marshal(rent)
	require.NoError(t, err)
	assert.Contains(t, string(data), "incomeType: PassiveIncome")

	var got Income
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, rent, got)

	doc := []byte("incomeType: EmploymentIncome\namount: 52000\nsource: Acme Corp\nemploymentType: Salaried\n")
	require.NoError(t, yaml.Unmarshal(doc, &got))
	assert.Equal(t, salary, got)

	err = yaml.Unmarshal([]byte("incomeType: Bogus\n"), &got)
	assert.True(t, errors.Is(err, unions.ErrUnknownVariant))
}

func TestCBOR(t *testing.T) {
	data, err := cbor.Marshal(salary)
	require.NoError(t, err)

	var got Income
	require.NoError(t, cbor.Unmarshal(data, &got))
	assert.Equal(t, salary, got)

	again, err := cbor.Marshal(salary)
	require.NoError(t, err)
	assert.Equal(t, data, again, "encoding must be deterministic")

	bogus, err := cbor.Marshal(map[string]any{"incomeType": "Bogus"})
	require.NoError(t, err)
	assert.ErrorIs(t, cbor.Unmarshal(bogus, &got), unions.ErrUnknownVariant)
}

func TestSchema(t *testing.T) {
	def := Codec.Schema()
	require.Equal(t, "incomeType", def.Discriminator)
	require.Len(t, def.Mapping, 2)

	emp := def.Mapping["EmploymentIncome"]
	assert.Equal(t, &unions.Definition{Type: "float64"}, emp.Properties["amount"])
	assert.Equal(t, &unions.Definition{Type: "string"}, emp.Properties["source"])
	assert.Equal(t, []string{"Salaried", "Hourly", "Contract"}, emp.Properties["employmentType"].Enum)

	passive := def.Mapping["PassiveIncome"]
	assert.Equal(t, []string{"Investment", "Rental", "Royalties"}, passive.Properties["passiveIncomeType"].Enum)
}
