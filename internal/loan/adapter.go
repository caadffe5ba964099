package loan

import (
	"math"

	"github.com/kampanyaradar/loan-offer-service/internal/model"
	"github.com/kampanyaradar/loan-offer-service/pkg/price"
)

// PaymentFallback is shown when a payment cannot be computed.
const PaymentFallback = "-"

// Result is the adapted pricing response.
// Dropped counts raw entries discarded for lacking a bank id.
type Result struct {
	Offers  []model.Offer
	Meta    *model.CalculationMeta
	Dropped int
}

// AdaptLoanCalculationsResponseToOffers normalizes the pricing API response.
//
// Amount and months come from loan_details, then meta; the rate comes from
// loan_details, then the bracket. Payments the backend did not supply are
// computed with CalculateLoanDetails. Entries without a bank id are dropped.
func AdaptLoanCalculationsResponseToOffers(resp *model.CalculationsResponse) Result {
	if resp == nil {
		return Result{Offers: []model.Offer{}}
	}

	meta := resp.Meta
	if meta == nil {
		meta = &model.CalculationMeta{}
	}

	offers := make([]model.Offer, 0, len(resp.Data))
	dropped := 0
	for i := range resp.Data {
		offer := adaptOffer(&resp.Data[i], meta)
		if offer.ID == 0 {
			dropped++
			continue
		}
		offers = append(offers, offer)
	}

	return Result{Offers: offers, Meta: resp.Meta, Dropped: dropped}
}

func adaptOffer(item *model.BankOfferRaw, meta *model.CalculationMeta) model.Offer {
	bank := item.Bank
	if bank == nil {
		bank = &model.Bank{}
	}
	bracket := item.Bracket
	if bracket == nil {
		bracket = &model.Bracket{}
	}
	details := item.LoanDetails
	if details == nil {
		details = &model.LoanDetails{}
	}

	amount := coalesce(details.Amount, meta.Amount)
	months := coalesce(details.Months, meta.Maturity)
	rate := coalesce(details.InterestRate, bracket.InterestRate)

	computed := CalculateLoanDetails(value(amount), value(months), value(rate))

	monthly := computed.MonthlyPayment
	if details.MonthlyPayment != nil {
		monthly = *details.MonthlyPayment
	}
	total := computed.TotalPayment
	if details.TotalPayment != nil {
		total = *details.TotalPayment
	}

	return model.Offer{
		ID:             bank.ID,
		Name:           bank.Name,
		Slug:           bank.Slug,
		Logo:           bank.Logo,
		LoanType:       FromAPILoanType(bracket.LoanType),
		Amount:         amount,
		Maturity:       toInt(months),
		Interest:       rate,
		MonthlyPayment: price.Format(monthly, price.WithFallback(PaymentFallback)),
		TotalPayment:   price.Format(total, price.WithFallback(PaymentFallback)),
		IsApproximate:  bracket.IsApproximate,
		Redirect:       item.Redirect,
	}
}

func coalesce(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func value(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

func toInt(p *float64) *int {
	if p == nil {
		return nil
	}
	n := int(math.Round(*p))
	return &n
}
