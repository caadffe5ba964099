package model

import "time"

// LoanCalculationRequest is the DTO for POST /api/loans/calculations.
// Amount is either a JSON number or a Turkish formatted string ("10.000").
type LoanCalculationRequest struct {
	Amount   any     `json:"amount" validate:"required"`
	Months   int     `json:"months" validate:"required,gte=1"`
	LoanType string  `json:"loan_type" validate:"required,notblank,loantype"`
	BankIDs  []int64 `json:"bank_ids" validate:"omitempty,max=50,dive,gte=1"`
}

// LoanOffersQuery is bound from the query string of GET /api/loans/offers.
type LoanOffersQuery struct {
	Amount   string `query:"amount" validate:"required,notblank"`
	Maturity int    `query:"maturity" validate:"required,gte=1"`
	LoanType string `query:"type" validate:"required,notblank,loantype"`
	BankID   int64  `query:"bank" validate:"omitempty,gte=1"`
}

// LoanCalculationResponse is returned by the calculation endpoints.
type LoanCalculationResponse struct {
	Offers       []Offer          `json:"offers"`
	Meta         *CalculationMeta `json:"meta"`
	DroppedCount int              `json:"dropped_count"`
}

// MaturitiesResponse lists the terms a loan category accepts.
type MaturitiesResponse struct {
	LoanType   string `json:"loan_type"`
	Min        int    `json:"min"`
	Max        int    `json:"max"`
	Maturities []int  `json:"maturities"`
}

// Offer is a normalized, display-ready quote from one lender.
type Offer struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Logo           string   `json:"logo"`
	LoanType       string   `json:"loanType"`
	Amount         *float64 `json:"amount"`
	Maturity       *int     `json:"maturity"`
	Interest       *float64 `json:"interest"`
	MonthlyPayment string   `json:"monthlyPayment"`
	TotalPayment   string   `json:"totalPayment"`
	IsApproximate  bool     `json:"isApproximate"`
	Redirect       *string  `json:"redirect"`
}

// CalculationLog is one row of the loan_calculations table.
type CalculationLog struct {
	ID           int64
	LoanType     string
	Amount       float64
	Months       int
	BankIDs      []int64
	OfferCount   int
	DroppedCount int
	Cached       bool
	CreatedAt    time.Time
}
