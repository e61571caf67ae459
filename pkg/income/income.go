// Package income defines the Income tagged union and its payload types.
//
// An Income holds exactly one of two cases, selected on the wire by the
// incomeType field:
//
//	{"incomeType": "EmploymentIncome", "amount": 52000, "source": "Acme", "employmentType": "Salaried"}
//	{"incomeType": "PassiveIncome", "amount": 1200.5, "source": "Flat 3", "passiveIncomeType": "Rental"}
//
// Values are immutable: build one with NewIncomeFromEmploymentIncome or
// NewIncomeFromPassiveIncome, or decode one from a record.
package income

// DiscriminatorField is the record field naming the active Income case.
const DiscriminatorField = "incomeType"

// IncomeType is the discriminator value of an Income.
type IncomeType string

// Income case names.
const (
	IncomeTypeEmploymentIncome IncomeType = "EmploymentIncome"
	IncomeTypePassiveIncome    IncomeType = "PassiveIncome"
)

// EmploymentType classifies employment income.
type EmploymentType string

const (
	EmploymentTypeSalaried EmploymentType = "Salaried"
	EmploymentTypeHourly   EmploymentType = "Hourly"
	EmploymentTypeContract EmploymentType = "Contract"
)

// PassiveIncomeType classifies passive income.
type PassiveIncomeType string

const (
	PassiveIncomeTypeInvestment PassiveIncomeType = "Investment"
	PassiveIncomeTypeRental     PassiveIncomeType = "Rental"
	PassiveIncomeTypeRoyalties  PassiveIncomeType = "Royalties"
)

// IncomeEmploymentIncome is the payload of the EmploymentIncome case.
type IncomeEmploymentIncome struct {
	Amount         float64        `json:"amount" validate:"finite"`
	EmploymentType EmploymentType `json:"employmentType" validate:"oneof=Salaried Hourly Contract"`
	Source         string         `json:"source"`
}

// IncomePassiveIncome is the payload of the PassiveIncome case.
type IncomePassiveIncome struct {
	Amount            float64           `json:"amount" validate:"finite"`
	PassiveIncomeType PassiveIncomeType `json:"passiveIncomeType" validate:"oneof=Investment Rental Royalties"`
	Source            string            `json:"source"`
}

// Income is a closed union of EmploymentIncome and PassiveIncome. The zero
// value holds no case and cannot be encoded.
type Income struct {
	employmentIncome *IncomeEmploymentIncome
	passiveIncome    *IncomePassiveIncome
}
