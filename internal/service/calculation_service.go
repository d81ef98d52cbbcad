// Package service provides the dispatch facade external collaborators
// invoke: validate, resolve the evaluator, consult the memoizer, evaluate,
// attach derived quantities, and return a structured result.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/einfield/engine/internal/cache"
	"github.com/einfield/engine/internal/domain"
	"github.com/einfield/engine/internal/metric"
	"github.com/einfield/engine/internal/tensor"
)

// CalculationService is the single entry point for calculations. It owns no
// state of its own; the injected memoizer is the only shared mutable
// resource, so concurrent Calculate calls need no further coordination.
type CalculationService struct {
	registry *metric.Registry
	memo     *cache.Memoizer
	logger   *slog.Logger
}

// NewCalculationService wires the facade with its registry, memoizer and
// logger.
func NewCalculationService(registry *metric.Registry, memo *cache.Memoizer, logger *slog.Logger) *CalculationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculationService{registry: registry, memo: memo, logger: logger}
}

// Calculate runs the full pipeline for a request and records the elapsed
// wall-clock time on the result. The returned result is owned exclusively
// by the caller. Errors are structured domain errors; anything unexpected
// is logged with full input context and surfaced opaquely.
func (s *CalculationService) Calculate(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	start := time.Now()

	var (
		res *domain.CalculationResult
		err error
	)
	switch {
	case req.Type.IsMetric():
		res, err = s.metricResult(req)
	case req.Type.IsDerived():
		res, err = s.derivedResult(req)
	default:
		err = &domain.UnsupportedMetricError{Type: req.Type}
	}
	if err != nil {
		return nil, s.classify(ctx, req, err)
	}

	out := res.Clone()
	out.Elapsed = time.Since(start)
	return out, nil
}

// metricResult serves the schwarzschild, kerr and flrw calculation types.
func (s *CalculationService) metricResult(req domain.CalculationRequest) (*domain.CalculationResult, error) {
	ev, err := s.registry.Resolve(req.Type)
	if err != nil {
		return nil, err
	}
	params, err := ev.Validate(req.Inputs)
	if err != nil {
		return nil, err
	}
	return s.memo.GetOrCompute(req.CanonicalKey(), func() (*domain.CalculationResult, error) {
		return s.evaluateMetric(ev, params)
	})
}

func (s *CalculationService) evaluateMetric(ev metric.Evaluator, params domain.Parameters) (*domain.CalculationResult, error) {
	components, derived, err := ev.Evaluate(params)
	if err != nil {
		return nil, err
	}

	christoffel, err := tensor.Christoffel(ev, params)
	if err != nil {
		return nil, err
	}

	res := &domain.CalculationResult{
		Components:  components,
		Derived:     derived,
		Christoffel: christoffel,
	}

	// The simplified Riemann/Ricci tables only exist for some solutions;
	// metrics without one simply omit them.
	riemann, err := tensor.Riemann(params)
	switch {
	case err == nil:
		res.Riemann = riemann
		res.Ricci = tensor.Ricci(riemann)
	case !errors.Is(err, domain.ErrUnsupportedDerivation):
		return nil, err
	}

	r, _ := params.Coordinates()
	if derived.EventHorizonRadius != nil && r < *derived.EventHorizonRadius {
		res.IsInsideHorizon = true
	}
	return res, nil
}

// derivedResult serves the christoffel, ricci-tensor and riemann-tensor
// calculation types. The base metric is inferred from the parameter shape:
// scale_factor selects FLRW, angular_momentum selects Kerr, anything else
// defaults to Schwarzschild (the platform's historical default).
func (s *CalculationService) derivedResult(req domain.CalculationRequest) (*domain.CalculationResult, error) {
	ev, err := s.registry.Resolve(inferBaseType(req.Inputs))
	if err != nil {
		return nil, err
	}
	params, err := ev.Validate(req.Inputs)
	if err != nil {
		return nil, err
	}
	return s.memo.GetOrCompute(req.CanonicalKey(), func() (*domain.CalculationResult, error) {
		return s.evaluateDerived(req.Type, ev, params)
	})
}

func (s *CalculationService) evaluateDerived(t domain.CalculationType, ev metric.Evaluator, params domain.Parameters) (*domain.CalculationResult, error) {
	r, theta := params.Coordinates()
	components, err := ev.ComponentsAt(params, r, theta)
	if err != nil {
		return nil, err
	}
	res := &domain.CalculationResult{Components: components}

	switch t {
	case domain.TypeChristoffel:
		christoffel, err := tensor.Christoffel(ev, params)
		if err != nil {
			return nil, err
		}
		res.Christoffel = christoffel

	case domain.TypeRiemannTensor:
		riemann, err := tensor.Riemann(params)
		if err != nil {
			return nil, err
		}
		res.Riemann = riemann

	case domain.TypeRicciTensor:
		riemann, err := tensor.Riemann(params)
		if err != nil {
			return nil, err
		}
		ricci := tensor.Ricci(riemann)
		res.Ricci = ricci
		res.Derived.RicciScalar = domain.Float(tensor.RicciScalar(ricci, components))
	}
	return res, nil
}

// inferBaseType picks the base metric for a derived-quantity request from
// the shape of its inputs.
func inferBaseType(inputs map[string]float64) domain.CalculationType {
	if _, ok := inputs["scale_factor"]; ok {
		return domain.TypeFLRW
	}
	if _, ok := inputs["angular_momentum"]; ok {
		return domain.TypeKerr
	}
	return domain.TypeSchwarzschild
}

// classify keeps known error kinds intact and converts anything unexpected
// into an opaque internal error after logging the full input context.
func (s *CalculationService) classify(ctx context.Context, req domain.CalculationRequest, err error) error {
	known := errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, domain.ErrUnsupportedMetric) ||
		errors.Is(err, domain.ErrUnsupportedDerivation) ||
		errors.Is(err, domain.ErrSingularity)
	if known {
		return err
	}

	s.logger.ErrorContext(ctx, "unexpected calculation failure",
		"calculation_type", req.Type,
		"inputs", req.Inputs,
		"error", err)
	if errors.Is(err, domain.ErrInternalComputation) {
		return err
	}
	return &domain.InternalComputationError{Type: req.Type, Quantity: "result"}
}
