package loan

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampanyaradar/loan-offer-service/internal/model"
	"github.com/kampanyaradar/loan-offer-service/pkg/price"
)

func f64(v float64) *float64 {
	return &v
}

func decodeResponse(t *testing.T, raw string) *model.CalculationsResponse {
	t.Helper()
	var resp model.CalculationsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	return &resp
}

func TestAdapt_DropsOffersWithoutBankID(t *testing.T) {
	resp := decodeResponse(t, `{
		"data": [
			{"bank": {"id": 1, "name": "Akbank", "slug": "akbank"}, "bracket": {"loan_type": "personal", "interestRate": 3.5}},
			{"bank": {"name": "Nameless"}, "bracket": {"loan_type": "personal", "interestRate": 3.1}},
			{"bank": {"id": 7, "name": "Garanti BBVA", "slug": "garanti-bbva"}, "bracket": {"loan_type": "personal", "interestRate": 3.2}}
		],
		"meta": {"amount": 10000, "maturity": 12, "month_label": "12 Ay"}
	}`)

	result := AdaptLoanCalculationsResponseToOffers(resp)

	require.Len(t, result.Offers, 2)
	assert.Equal(t, 1, result.Dropped)
	assert.Equal(t, int64(1), result.Offers[0].ID)
	assert.Equal(t, int64(7), result.Offers[1].ID)
	assert.Same(t, resp.Meta, result.Meta, "meta is passed through unchanged")
}

func TestAdapt_MissingBankObjectIsDropped(t *testing.T) {
	resp := &model.CalculationsResponse{
		Data: []model.BankOfferRaw{{LoanDetails: &model.LoanDetails{Amount: f64(10000)}}},
	}

	result := AdaptLoanCalculationsResponseToOffers(resp)

	assert.Empty(t, result.Offers)
	assert.NotNil(t, result.Offers)
	assert.Equal(t, 1, result.Dropped)
}

func TestAdapt_ComputesMissingPayments(t *testing.T) {
	resp := &model.CalculationsResponse{
		Data: []model.BankOfferRaw{{
			Bank:    &model.Bank{ID: 3, Name: "Ziraat Bankası", Slug: "ziraat", Logo: "ziraat.png"},
			Bracket: &model.Bracket{LoanType: APITypeAuto, InterestRate: f64(99), IsApproximate: true},
			LoanDetails: &model.LoanDetails{
				Amount:       f64(10000),
				Months:       f64(12),
				InterestRate: f64(24),
			},
		}},
	}

	result := AdaptLoanCalculationsResponseToOffers(resp)
	require.Len(t, result.Offers, 1)

	offer := result.Offers[0]
	expected := CalculateLoanDetails(10000, 12, 24)
	assert.Equal(t, price.Format(expected.MonthlyPayment, price.WithFallback("-")), offer.MonthlyPayment)
	assert.Equal(t, price.Format(expected.TotalPayment, price.WithFallback("-")), offer.TotalPayment)
	assert.Equal(t, "945,60 ₺", offer.MonthlyPayment)
	assert.Equal(t, "11.347,15 ₺", offer.TotalPayment)

	assert.Equal(t, TypeNewCar, offer.LoanType, "loan type is mapped back to frontend vocabulary")
	assert.Equal(t, 24.0, *offer.Interest, "loan_details rate wins over bracket rate")
	assert.Equal(t, 12, *offer.Maturity)
	assert.Equal(t, 10000.0, *offer.Amount)
	assert.True(t, offer.IsApproximate)
	assert.Equal(t, "ziraat", offer.Slug)
	assert.Equal(t, "ziraat.png", offer.Logo)
	assert.Nil(t, offer.Redirect)
}

func TestAdapt_BackendPaymentsWin(t *testing.T) {
	redirect := "https://example.com/apply"
	resp := &model.CalculationsResponse{
		Data: []model.BankOfferRaw{{
			Bank:     &model.Bank{ID: 9, Name: "QNB"},
			Bracket:  &model.Bracket{LoanType: APITypeMortgage},
			Redirect: &redirect,
			LoanDetails: &model.LoanDetails{
				Amount:         f64(10000),
				Months:         f64(12),
				InterestRate:   f64(24),
				MonthlyPayment: f64(950.5),
				TotalPayment:   f64(11406),
			},
		}},
	}

	offer := AdaptLoanCalculationsResponseToOffers(resp).Offers[0]

	assert.Equal(t, "950,50 ₺", offer.MonthlyPayment)
	assert.Equal(t, "11.406,00 ₺", offer.TotalPayment)
	assert.Equal(t, TypeMortgage, offer.LoanType)
	require.NotNil(t, offer.Redirect)
	assert.Equal(t, redirect, *offer.Redirect)
}

func TestAdapt_FallsBackToMetaAndBracket(t *testing.T) {
	resp := &model.CalculationsResponse{
		Data: []model.BankOfferRaw{{
			Bank:    &model.Bank{ID: 4, Name: "Halkbank"},
			Bracket: &model.Bracket{LoanType: APITypePersonal, InterestRate: f64(0)},
		}},
		Meta: &model.CalculationMeta{Amount: f64(12000), Maturity: f64(12)},
	}

	offer := AdaptLoanCalculationsResponseToOffers(resp).Offers[0]

	assert.Equal(t, "1.000,00 ₺", offer.MonthlyPayment)
	assert.Equal(t, "12.000,00 ₺", offer.TotalPayment)
	assert.Equal(t, 0.0, *offer.Interest, "a zero rate is a value, not a missing one")
	assert.Equal(t, 12000.0, *offer.Amount)
}

func TestAdapt_UnformattablePaymentsUseDash(t *testing.T) {
	resp := &model.CalculationsResponse{
		Data: []model.BankOfferRaw{{Bank: &model.Bank{ID: 5, Name: "Vakıfbank"}}},
	}

	offer := AdaptLoanCalculationsResponseToOffers(resp).Offers[0]

	assert.Equal(t, PaymentFallback, offer.MonthlyPayment)
	assert.Equal(t, PaymentFallback, offer.TotalPayment)
	assert.Nil(t, offer.Amount)
	assert.Nil(t, offer.Maturity)
	assert.Equal(t, "", offer.LoanType)
}

func TestAdapt_NilResponse(t *testing.T) {
	result := AdaptLoanCalculationsResponseToOffers(nil)

	assert.NotNil(t, result.Offers)
	assert.Empty(t, result.Offers)
	assert.Nil(t, result.Meta)
	assert.Zero(t, result.Dropped)
}

// Request {amount: 10000, months: 12, loan_type: personal} priced by two banks,
// one with backend payments and one with only a rate.
func TestAdapt_EndToEndScenario(t *testing.T) {
	apiType := ToAPILoanType(TypePersonal)
	require.Equal(t, "personal", apiType)

	resp := decodeResponse(t, `{
		"data": [
			{
				"bank": {"id": 11, "name": "İş Bankası", "slug": "is-bankasi", "logo": "is.png"},
				"bracket": {"loan_type": "personal", "interestRate": 3.49, "is_approximate": false},
				"loan_details": {"amount": 10000, "months": 12, "interest_rate": 3.49, "monthly_payment": 1012.34, "total_payment": 12148.08},
				"redirect": "https://isbank.example/apply"
			},
			{
				"bank": {"id": 12, "name": "Yapı Kredi", "slug": "yapi-kredi", "logo": "yk.png"},
				"bracket": {"loan_type": "personal"},
				"loan_details": {"interest_rate": 24},
				"redirect": null
			}
		],
		"meta": {"amount": 10000, "maturity": 12, "month_label": "12 Ay"}
	}`)

	result := AdaptLoanCalculationsResponseToOffers(resp)
	require.Len(t, result.Offers, 2)
	assert.Zero(t, result.Dropped)

	first := result.Offers[0]
	assert.Equal(t, "1.012,34 ₺", first.MonthlyPayment)
	assert.Equal(t, "12.148,08 ₺", first.TotalPayment)
	assert.Equal(t, TypePersonal, first.LoanType)

	second := result.Offers[1]
	local := CalculateLoanDetails(10000, 12, 24)
	assert.Equal(t, price.Format(local.MonthlyPayment, price.WithFallback("-")), second.MonthlyPayment)
	assert.Equal(t, price.Format(local.TotalPayment, price.WithFallback("-")), second.TotalPayment)
	assert.Nil(t, second.Redirect)
	assert.Equal(t, "12 Ay", result.Meta.MonthLabel)
}
