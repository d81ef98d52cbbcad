// Package metric implements the metric evaluators, their parameter
// validation, and the registry that dispatches calculation types to them.
package metric

import (
	"github.com/einfield/engine/internal/domain"
)

// Evaluator is the common contract every metric solution implements.
// Implementations are pure and deterministic: no I/O, no shared mutable
// state, safe for concurrent use.
type Evaluator interface {
	// Type returns the calculation type this evaluator serves.
	Type() domain.CalculationType

	// Validate checks the physical preconditions for the raw inputs and
	// returns the type-safe parameter projection. It is pure and performs
	// no numeric work beyond the checks themselves.
	Validate(inputs map[string]float64) (domain.Parameters, error)

	// Evaluate computes the metric components and solution-specific derived
	// scalars for validated parameters. Arithmetic producing a non-finite
	// component is reported as a *domain.SingularityError.
	Evaluate(p domain.Parameters) (domain.MetricComponents, domain.DerivedScalars, error)

	// ComponentsAt re-evaluates the metric components at shifted
	// coordinates. The derived-quantity calculator differentiates the
	// metric through this hook.
	ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error)
}
