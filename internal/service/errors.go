package service

import (
	"errors"

	"github.com/kampanyaradar/loan-offer-service/internal/loan"
)

var (
	// ErrInvalidRequest is returned when request data is nil or incomplete
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidAmount is returned when the amount is not a number
	ErrInvalidAmount = loan.ErrInvalidAmount

	// ErrAmountTooLow is returned when the amount is below the configured minimum
	ErrAmountTooLow = loan.ErrAmountTooLow

	// ErrInvalidMaturity is returned when the term is not offered for the loan type
	ErrInvalidMaturity = loan.ErrInvalidMaturity

	// ErrUnknownLoanType is returned for loan categories without a maturity table
	ErrUnknownLoanType = loan.ErrUnknownLoanType

	// ErrPricingUnavailable is returned when the pricing API call fails
	ErrPricingUnavailable = errors.New("pricing service unavailable")
)
