// Package domain defines the core calculation entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers match with errors.Is; the transport layer
// maps kinds to status codes, the core itself never deals in wire status.
var (
	// ErrValidation marks bad or out-of-domain input. The caller may retry
	// with corrected input.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidParameter marks a non-finite (NaN or infinite) input value.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNakedSingularity marks Kerr inputs violating the extremal bound
	// |angular_momentum| <= mass. Rejected before any arithmetic runs.
	ErrNakedSingularity = errors.New("naked singularity")

	// ErrUnsupportedMetric marks an unknown metric type. Never retryable.
	ErrUnsupportedMetric = errors.New("unsupported metric type")

	// ErrUnsupportedDerivation marks a derived-quantity request for a base
	// metric the calculator has no derivation for. Never retryable.
	ErrUnsupportedDerivation = errors.New("unsupported derivation")

	// ErrSingularity marks an arithmetic singularity at specific
	// coordinates. The caller may retry with different coordinates.
	ErrSingularity = errors.New("coordinate singularity")

	// ErrInternalComputation marks an unexpected NaN or infinity not
	// attributable to a known singularity. Treated as a defect and logged
	// with full input context.
	ErrInternalComputation = errors.New("internal computation failure")
)

// ValidationError reports a parameter outside its physical domain of
// definition.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InvalidParameterError reports a non-finite numeric input.
type InvalidParameterError struct {
	Field string
	Value float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("parameter %s is not a finite number (%v)", e.Field, e.Value)
}

func (e *InvalidParameterError) Unwrap() []error {
	return []error{ErrInvalidParameter, ErrValidation}
}

// NakedSingularityError reports Kerr inputs whose spin exceeds the extremal
// bound, which would expose the singularity.
type NakedSingularityError struct {
	Mass float64
	Spin float64
}

func (e *NakedSingularityError) Error() string {
	return fmt.Sprintf(
		"angular momentum %v exceeds extremal bound for mass %v: naked singularity",
		e.Spin, e.Mass,
	)
}

func (e *NakedSingularityError) Unwrap() []error {
	return []error{ErrNakedSingularity, ErrValidation}
}

// UnsupportedMetricError reports a metric type with no registered evaluator.
type UnsupportedMetricError struct {
	Type CalculationType
}

func (e *UnsupportedMetricError) Error() string {
	return fmt.Sprintf("no evaluator registered for metric type %q", e.Type)
}

func (e *UnsupportedMetricError) Unwrap() error { return ErrUnsupportedMetric }

// UnsupportedDerivationError reports a derived-quantity request the
// calculator cannot serve for the given base metric.
type UnsupportedDerivationError struct {
	Quantity string
	Type     CalculationType
}

func (e *UnsupportedDerivationError) Error() string {
	return fmt.Sprintf("%s derivation is not supported for metric type %q", e.Quantity, e.Type)
}

func (e *UnsupportedDerivationError) Unwrap() error { return ErrUnsupportedDerivation }

// SingularityError reports an arithmetic singularity, carrying the
// coordinate location that produced it.
type SingularityError struct {
	Type   CalculationType
	Radius float64
	Theta  float64
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%s metric is singular at r=%v, theta=%v", e.Type, e.Radius, e.Theta)
}

func (e *SingularityError) Unwrap() error { return ErrSingularity }

// InternalComputationError reports an unexpected non-finite intermediate
// value.
type InternalComputationError struct {
	Type     CalculationType
	Quantity string
}

func (e *InternalComputationError) Error() string {
	return fmt.Sprintf("unexpected non-finite %s while evaluating %s metric", e.Quantity, e.Type)
}

func (e *InternalComputationError) Unwrap() error { return ErrInternalComputation }
