package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/einfield/engine/internal/api/shared"
	"github.com/einfield/engine/internal/domain"
)

// Calculator is the service interface the handler depends on.
type Calculator interface {
	Calculate(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error)
}

// CalculationHandler handles metric and derived-quantity calculation requests.
type CalculationHandler struct {
	calculator Calculator
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewCalculationHandler creates a handler backed by the given calculator.
func NewCalculationHandler(calculator Calculator, logger *slog.Logger) *CalculationHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculationHandler{
		calculator: calculator,
		validator:  validator.New(),
		logger:     logger.With("component", "calculation_handler"),
	}
}

// Calculate handles POST /api/v1/calculate.
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.logger.With("trace_id", shared.GetTraceID(ctx))

	var req CalculateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("failed to decode calculation request", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		log.Debug("calculation request failed validation", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing required fields: type and inputs")
		return
	}

	result, err := h.calculator.Calculate(ctx, domain.CalculationRequest{
		Type:   domain.CalculationType(req.Type),
		Inputs: req.Inputs,
	})
	if err != nil {
		h.respondCalculationError(w, r, err)
		return
	}

	resp := CalculateResponse{
		Results:         resultToPayload(result),
		CalculationTime: result.Elapsed.Seconds(),
		TraceID:         shared.GetTraceID(ctx),
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// respondCalculationError maps domain error kinds to HTTP statuses. Client
// mistakes are 400, physically undefined points are 422, everything else is
// an opaque 500.
func (h *CalculationHandler) respondCalculationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnsupportedMetric),
		errors.Is(err, domain.ErrUnsupportedDerivation):
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrSingularity):
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Internal calculation error", err)
	}
}
