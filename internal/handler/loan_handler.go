package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/kampanyaradar/loan-offer-service/internal/model"
	"github.com/kampanyaradar/loan-offer-service/internal/service"
)

// LoanServiceInterface defines the interface for loan business logic.
type LoanServiceInterface interface {
	Calculate(ctx context.Context, req *model.LoanCalculationRequest) (*model.LoanCalculationResponse, error)
	Maturities(loanType string) (*model.MaturitiesResponse, error)
	Stats(ctx context.Context) (map[string]int, error)
}

// LoanHandler handles HTTP requests for loan offers.
type LoanHandler struct {
	service   LoanServiceInterface
	validator *validator.Validate
}

// NewLoanHandler creates a new LoanHandler with the given service and validator.
func NewLoanHandler(svc LoanServiceInterface, v *validator.Validate) *LoanHandler {
	return &LoanHandler{service: svc, validator: v}
}

// formatValidationError converts validator errors to client-facing messages.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()
			// dive errors are reported as "BankIDs[0]"
			if i := strings.IndexByte(field, '['); i >= 0 {
				field = field[:i]
			}

			switch field {
			case "Amount":
				if tag == "required" || tag == "notblank" {
					return "invalid request: amount is required"
				}
				return "invalid request: amount is invalid"
			case "Months", "Maturity":
				if tag == "required" {
					return "invalid request: months is required"
				}
				return "invalid request: months must be at least 1"
			case "LoanType":
				if tag == "required" || tag == "notblank" {
					return "invalid request: loan_type is required"
				}
				return "invalid request: unknown loan_type"
			case "BankIDs", "BankID":
				if tag == "max" {
					return "invalid request: too many bank_ids"
				}
				return "invalid request: bank_ids must be positive"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// Calculate handles POST /api/loans/calculations requests.
func (h *LoanHandler) Calculate(c *fiber.Ctx) error {
	var req model.LoanCalculationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	return h.calculate(c, &req)
}

// Offers handles GET /api/loans/offers requests. It is the query string
// flavour of Calculate used on page load.
func (h *LoanHandler) Offers(c *fiber.Ctx) error {
	var q model.LoanOffersQuery

	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}

	if err := h.validator.Struct(q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": formatValidationError(err)})
	}

	req := &model.LoanCalculationRequest{
		Amount:   q.Amount,
		Months:   q.Maturity,
		LoanType: q.LoanType,
	}
	if q.BankID > 0 {
		req.BankIDs = []int64{q.BankID}
	}
	return h.calculate(c, req)
}

func (h *LoanHandler) calculate(c *fiber.Ctx, req *model.LoanCalculationRequest) error {
	resp, err := h.service.Calculate(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAmount):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: amount is invalid"})
		case errors.Is(err, service.ErrAmountTooLow):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: amount is below the minimum"})
		case errors.Is(err, service.ErrInvalidMaturity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: maturity is not offered for this loan type"})
		case errors.Is(err, service.ErrUnknownLoanType):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request: unknown loan_type"})
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request"})
		case errors.Is(err, service.ErrPricingUnavailable):
			log.Error().
				Err(err).
				Str("request_id", requestID(c)).
				Str("loan_type", req.LoanType).
				Int("months", req.Months).
				Msg("pricing api request failed")
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "pricing service unavailable"})
		}
		log.Error().Err(err).Str("request_id", requestID(c)).Msg("failed to calculate loan offers")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}

	log.Info().
		Str("request_id", requestID(c)).
		Str("loan_type", req.LoanType).
		Int("months", req.Months).
		Int("offers_count", len(resp.Offers)).
		Int("dropped_count", resp.DroppedCount).
		Msg("loan offers calculated")

	return c.JSON(resp)
}

// Maturities handles GET /api/loans/maturities/:type requests.
func (h *LoanHandler) Maturities(c *fiber.Ctx) error {
	loanType := c.Params("type")
	if loanType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request: loan_type is required",
		})
	}

	resp, err := h.service.Maturities(loanType)
	if err != nil {
		if errors.Is(err, service.ErrUnknownLoanType) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "loan type not found",
			})
		}
		log.Error().Err(err).Str("loan_type", loanType).Msg("failed to get maturities")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}

	return c.JSON(resp)
}

// Stats handles GET /api/loans/stats requests.
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.service.Stats(c.UserContext())
	if err != nil {
		log.Error().Err(err).Msg("failed to get calculation stats")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "internal server error",
		})
	}
	return c.JSON(fiber.Map{"calculations": counts})
}

// requestID returns the id set by the requestid middleware, if any.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
