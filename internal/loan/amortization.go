package loan

import "math"

// Details holds the computed installment figures.
type Details struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalPayment   float64 `json:"total_payment"`
}

// CalculateLoanDetails applies the annuity formula
//
//	r       = interestRate / 100 / 12
//	monthly = amount * r * (1+r)^n / ((1+r)^n - 1)
//
// When (1+r)^n is not finite or equals 1 (zero, missing or degenerate rate)
// the loan is split evenly with no interest. Inputs are not validated.
func CalculateLoanDetails(amount, months, interestRate float64) Details {
	r := interestRate / 100 / 12
	pow := math.Pow(1+r, months)

	if math.IsNaN(pow) || math.IsInf(pow, 0) || pow == 1 {
		return Details{
			MonthlyPayment: amount / months,
			TotalPayment:   amount,
		}
	}

	monthly := amount * r * pow / (pow - 1)
	return Details{
		MonthlyPayment: monthly,
		TotalPayment:   monthly * months,
	}
}
