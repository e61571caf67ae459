package income

import "github.com/gork-labs/incomectl/pkg/unions"

// NewIncomeFromEmploymentIncome creates an Income holding the EmploymentIncome case.
func NewIncomeFromEmploymentIncome(p IncomeEmploymentIncome) Income {
	return Income{employmentIncome: &p}
}

// NewIncomeFromPassiveIncome creates an Income holding the PassiveIncome case.
func NewIncomeFromPassiveIncome(p IncomePassiveIncome) Income {
	return Income{passiveIncome: &p}
}

// IsEmploymentIncome returns true if the union contains IncomeEmploymentIncome
func (u Income) IsEmploymentIncome() bool {
	return u.employmentIncome != nil
}

// EmploymentIncome returns a copy of the IncomeEmploymentIncome payload if present.
func (u Income) EmploymentIncome() (IncomeEmploymentIncome, bool) {
	if u.employmentIncome == nil {
		return IncomeEmploymentIncome{}, false
	}
	return *u.employmentIncome, true
}

// IsPassiveIncome returns true if the union contains IncomePassiveIncome
func (u Income) IsPassiveIncome() bool {
	return u.passiveIncome != nil
}

// PassiveIncome returns a copy of the IncomePassiveIncome payload if present.
func (u Income) PassiveIncome() (IncomePassiveIncome, bool) {
	if u.passiveIncome == nil {
		return IncomePassiveIncome{}, false
	}
	return *u.passiveIncome, true
}

// Value returns the active payload by value, or nil for the zero Income.
func (u Income) Value() interface{} {
	if u.employmentIncome != nil {
		return *u.employmentIncome
	}
	if u.passiveIncome != nil {
		return *u.passiveIncome
	}
	return nil
}

// IncomeType returns the discriminator of the active case, or "" for the
// zero Income.
func (u Income) IncomeType() IncomeType {
	switch {
	case u.employmentIncome != nil:
		return IncomeTypeEmploymentIncome
	case u.passiveIncome != nil:
		return IncomeTypePassiveIncome
	default:
		return ""
	}
}

// DiscriminatorValue implements unions.Discriminator.
func (u Income) DiscriminatorValue() string {
	return string(u.IncomeType())
}

// DiscriminatorFieldName implements unions.DiscriminatorField.
func (Income) DiscriminatorFieldName() string {
	return DiscriminatorField
}

// IncomeVisitor handles each Income case. Adding a case to Income adds a
// method here, so every implementation fails to compile until it handles it.
type IncomeVisitor interface {
	VisitEmploymentIncome(IncomeEmploymentIncome) error
	VisitPassiveIncome(IncomePassiveIncome) error
}

// Visit dispatches the active case to v. The zero Income returns
// unions.ErrEmptyUnion.
func (u Income) Visit(v IncomeVisitor) error {
	switch {
	case u.employmentIncome != nil:
		return v.VisitEmploymentIncome(*u.employmentIncome)
	case u.passiveIncome != nil:
		return v.VisitPassiveIncome(*u.passiveIncome)
	default:
		return unions.ErrEmptyUnion
	}
}
