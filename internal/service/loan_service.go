package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kampanyaradar/loan-offer-service/internal/cache"
	"github.com/kampanyaradar/loan-offer-service/internal/loan"
	"github.com/kampanyaradar/loan-offer-service/internal/metrics"
	"github.com/kampanyaradar/loan-offer-service/internal/model"
	"github.com/kampanyaradar/loan-offer-service/internal/pricing"
)

// PricingClient defines the interface for the external pricing API.
type PricingClient interface {
	Calculate(ctx context.Context, req model.CalculationsRequest) (*model.CalculationsResponse, []byte, error)
}

// CalculationRepositoryInterface defines the interface for calculation log access.
type CalculationRepositoryInterface interface {
	Insert(ctx context.Context, calc *model.CalculationLog) error
	CountByLoanType(ctx context.Context) (map[string]int, error)
}

// Options tunes LoanService. Zero values fall back to defaults.
type Options struct {
	MinAmount float64
	CacheTTL  time.Duration
	Tracer    trace.Tracer
}

// LoanService prices loans and normalizes the offers.
type LoanService struct {
	pricing   PricingClient
	repo      CalculationRepositoryInterface
	cache     cache.Store
	cacheTTL  time.Duration
	minAmount float64
	tracer    trace.Tracer
}

// NewLoanService creates a LoanService. A nil store disables caching.
func NewLoanService(pricing PricingClient, repo CalculationRepositoryInterface, store cache.Store, opts Options) *LoanService {
	if store == nil {
		store = cache.Noop{}
	}
	if opts.MinAmount <= 0 {
		opts.MinAmount = loan.DefaultMinAmount
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Tracer == nil {
		opts.Tracer = otel.Tracer("loan-service")
	}
	return &LoanService{
		pricing:   pricing,
		repo:      repo,
		cache:     store,
		cacheTTL:  opts.CacheTTL,
		minAmount: opts.MinAmount,
		tracer:    opts.Tracer,
	}
}

// Calculate validates the request, prices it upstream (or from cache) and
// returns the adapted offers.
// Returns:
//   - ErrInvalidRequest if req is nil
//   - ErrInvalidAmount, ErrAmountTooLow, ErrInvalidMaturity, ErrUnknownLoanType on validation failure
//   - ErrPricingUnavailable wrapping the upstream error when pricing fails
func (s *LoanService) Calculate(ctx context.Context, req *model.LoanCalculationRequest) (*model.LoanCalculationResponse, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}

	amount := loan.ParseAmountToNumber(req.Amount)
	if err := loan.ValidateRequest(req.LoanType, amount, req.Months, s.minAmount); err != nil {
		metrics.LoanCalculations.WithLabelValues(metricLabel(req.LoanType), "validation_error").Inc()
		return nil, err
	}

	apiType := loan.ToAPILoanType(req.LoanType)

	ctx, span := s.tracer.Start(ctx, "loan.calculate")
	defer span.End()
	span.SetAttributes(
		attribute.String("loan_type", apiType),
		attribute.Float64("amount", amount),
		attribute.Int("months", req.Months),
		attribute.Int("bank_count", len(req.BankIDs)),
	)

	key := cache.CalculationKey(apiType, amount, req.Months, req.BankIDs)
	resp, cached := s.fromCache(ctx, key)

	if resp == nil {
		var raw []byte
		var err error
		resp, raw, err = s.callPricing(ctx, model.CalculationsRequest{
			Amount:   amount,
			Months:   req.Months,
			LoanType: apiType,
			Banks:    req.BankIDs,
		})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "pricing failed")
			metrics.LoanCalculations.WithLabelValues(req.LoanType, "pricing_error").Inc()
			return nil, fmt.Errorf("%w: %w", ErrPricingUnavailable, err)
		}
		if err := s.cache.Set(ctx, key, raw, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("cache_key", key).Msg("failed to cache pricing response")
		}
	}

	result := loan.AdaptLoanCalculationsResponseToOffers(resp)
	if result.Dropped > 0 {
		metrics.DroppedOffers.WithLabelValues(req.LoanType).Add(float64(result.Dropped))
		log.Warn().
			Str("loan_type", req.LoanType).
			Int("dropped_count", result.Dropped).
			Int("raw_count", len(resp.Data)).
			Msg("dropped pricing offers without bank id")
	}

	span.SetAttributes(
		attribute.Int("offer_count", len(result.Offers)),
		attribute.Int("dropped_count", result.Dropped),
		attribute.Bool("cached", cached),
	)

	s.record(ctx, &model.CalculationLog{
		LoanType:     req.LoanType,
		Amount:       amount,
		Months:       req.Months,
		BankIDs:      req.BankIDs,
		OfferCount:   len(result.Offers),
		DroppedCount: result.Dropped,
		Cached:       cached,
	})

	metrics.LoanCalculations.WithLabelValues(req.LoanType, "success").Inc()

	return &model.LoanCalculationResponse{
		Offers:       result.Offers,
		Meta:         result.Meta,
		DroppedCount: result.Dropped,
	}, nil
}

// Maturities returns the term table for a frontend loan category.
// Returns ErrUnknownLoanType for categories without one.
func (s *LoanService) Maturities(loanType string) (*model.MaturitiesResponse, error) {
	r, ok := loan.Maturities(loanType)
	if !ok {
		return nil, ErrUnknownLoanType
	}
	return &model.MaturitiesResponse{
		LoanType:   loanType,
		Min:        r.Min,
		Max:        r.Max,
		Maturities: r.Options(),
	}, nil
}

// Stats returns the number of recorded calculations per loan type.
func (s *LoanService) Stats(ctx context.Context) (map[string]int, error) {
	if s.repo == nil {
		return map[string]int{}, nil
	}
	counts, err := s.repo.CountByLoanType(ctx)
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return counts, nil
}

func (s *LoanService) fromCache(ctx context.Context, key string) (*model.CalculationsResponse, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("cache_key", key).Msg("pricing cache unavailable")
		return nil, false
	}
	if !ok {
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}

	resp, err := pricing.Decode(raw)
	if err != nil {
		metrics.CacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Str("cache_key", key).Msg("discarding unreadable cache entry")
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("hit").Inc()
	return resp, true
}

func (s *LoanService) callPricing(ctx context.Context, req model.CalculationsRequest) (*model.CalculationsResponse, []byte, error) {
	start := time.Now()
	resp, raw, err := s.pricing.Calculate(ctx, req)
	metrics.PricingLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PricingRequests.WithLabelValues("error").Inc()
		return nil, nil, err
	}
	metrics.PricingRequests.WithLabelValues("success").Inc()
	return resp, raw, nil
}

// record stores the calculation log; failures do not affect the response.
func (s *LoanService) record(ctx context.Context, calc *model.CalculationLog) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Insert(ctx, calc); err != nil {
		log.Error().
			Err(err).
			Str("loan_type", calc.LoanType).
			Float64("amount", calc.Amount).
			Int("months", calc.Months).
			Msg("failed to record loan calculation")
	}
}

// metricLabel keeps arbitrary client input out of metric labels.
func metricLabel(loanType string) string {
	if loan.IsKnownLoanType(loanType) {
		return loanType
	}
	return "unknown"
}
