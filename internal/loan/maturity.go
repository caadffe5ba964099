package loan

import (
	"errors"
	"math"
)

// DefaultMinAmount is the smallest principal accepted for pricing.
const DefaultMinAmount = 1000

var (
	// ErrInvalidAmount is returned when the amount cannot be parsed
	ErrInvalidAmount = errors.New("amount is not a number")

	// ErrAmountTooLow is returned when the amount is below the minimum
	ErrAmountTooLow = errors.New("amount below minimum")

	// ErrInvalidMaturity is returned when the term is not offered for the loan type
	ErrInvalidMaturity = errors.New("maturity not allowed for loan type")

	// ErrUnknownLoanType is returned for categories without a maturity table
	ErrUnknownLoanType = errors.New("unknown loan type")
)

// MaturityRange describes the terms offered for a loan category.
type MaturityRange struct {
	Min  int
	Max  int
	Step int
}

// Contains reports whether months is one of the offered terms.
func (r MaturityRange) Contains(months int) bool {
	return months >= r.Min && months <= r.Max && (months-r.Min)%r.Step == 0
}

// Options lists every offered term in ascending order.
func (r MaturityRange) Options() []int {
	out := make([]int, 0, (r.Max-r.Min)/r.Step+1)
	for m := r.Min; m <= r.Max; m += r.Step {
		out = append(out, m)
	}
	return out
}

var maturities = map[string]MaturityRange{
	TypePersonal: {Min: 1, Max: 36, Step: 1},
	TypeNewCar:   {Min: 1, Max: 36, Step: 1},
	TypeMortgage: {Min: 6, Max: 240, Step: 6},
}

// Maturities returns the term table for a frontend loan category.
func Maturities(feType string) (MaturityRange, bool) {
	r, ok := maturities[feType]
	return r, ok
}

// IsAllowedMaturity reports whether months is offered for feType.
func IsAllowedMaturity(feType string, months int) bool {
	r, ok := maturities[feType]
	return ok && r.Contains(months)
}

// ValidateRequest checks a parsed request before it is sent upstream.
func ValidateRequest(feType string, amount float64, months int, minAmount float64) error {
	r, ok := maturities[feType]
	if !ok {
		return ErrUnknownLoanType
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return ErrInvalidAmount
	}
	if amount < minAmount {
		return ErrAmountTooLow
	}
	if !r.Contains(months) {
		return ErrInvalidMaturity
	}
	return nil
}
