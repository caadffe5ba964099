package model

// Wire types of the external pricing API (POST /loans/calculations).
// Numeric fields are pointers because the backend omits or nulls them freely.

// CalculationsRequest is the body sent to the pricing API.
type CalculationsRequest struct {
	Amount   float64 `json:"amount"`
	Months   int     `json:"months"`
	LoanType string  `json:"loan_type"`
	Banks    []int64 `json:"banks,omitempty"`
}

// CalculationsResponse is the envelope returned by the pricing API.
type CalculationsResponse struct {
	Data []BankOfferRaw   `json:"data"`
	Meta *CalculationMeta `json:"meta,omitempty"`
}

// CalculationMeta echoes the request parameters back.
type CalculationMeta struct {
	Amount     *float64 `json:"amount,omitempty"`
	Maturity   *float64 `json:"maturity,omitempty"`
	MonthLabel string   `json:"month_label,omitempty"`
}

// BankOfferRaw is a single lender entry as the backend sends it.
type BankOfferRaw struct {
	Bank        *Bank        `json:"bank"`
	Bracket     *Bracket     `json:"bracket"`
	LoanDetails *LoanDetails `json:"loan_details"`
	Redirect    *string      `json:"redirect"`
}

// Bank identifies the lender.
type Bank struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
	Logo string `json:"logo"`
}

// Bracket is the interest-rate tier the offer falls into.
type Bracket struct {
	LoanType      string   `json:"loan_type"`
	InterestRate  *float64 `json:"interestRate"`
	IsApproximate bool     `json:"is_approximate"`
}

// LoanDetails carries the priced terms; payments may be precomputed.
type LoanDetails struct {
	Amount         *float64 `json:"amount"`
	Months         *float64 `json:"months"`
	InterestRate   *float64 `json:"interest_rate"`
	MonthlyPayment *float64 `json:"monthly_payment"`
	TotalPayment   *float64 `json:"total_payment"`
}
