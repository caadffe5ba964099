// Package loan holds the pure loan-offer pipeline: loan type mapping, amount
// parsing, amortization, maturity rules and response adaptation.
package loan

// Frontend loan categories.
const (
	TypePersonal = "personal"
	TypeNewCar   = "newCar"
	TypeMortgage = "mortgage"
)

// Pricing API loan categories.
const (
	APITypePersonal = "personal"
	APITypeAuto     = "auto"
	APITypeMortgage = "mortgage"
)

var (
	toAPI = map[string]string{
		TypePersonal: APITypePersonal,
		TypeNewCar:   APITypeAuto,
		TypeMortgage: APITypeMortgage,
	}
	fromAPI = map[string]string{
		APITypePersonal: TypePersonal,
		APITypeAuto:     TypeNewCar,
		APITypeMortgage: TypeMortgage,
	}
)

// ToAPILoanType maps a frontend category to the pricing API vocabulary.
// Unknown values pass through unchanged so new backend categories keep working.
func ToAPILoanType(feType string) string {
	if v, ok := toAPI[feType]; ok {
		return v
	}
	return feType
}

// FromAPILoanType is the inverse of ToAPILoanType, with the same fallback.
func FromAPILoanType(apiType string) string {
	if v, ok := fromAPI[apiType]; ok {
		return v
	}
	return apiType
}

// IsKnownLoanType reports whether feType is one of the frontend categories.
func IsKnownLoanType(feType string) bool {
	_, ok := toAPI[feType]
	return ok
}
