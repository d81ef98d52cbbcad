package domain

import (
	"fmt"
	"time"
)

// CalculationType identifies a supported calculation.
type CalculationType string

// Supported calculation types. The first three select a metric evaluator
// directly; the remaining ones request a derived quantity computed from a
// base metric inferred from the supplied inputs.
const (
	TypeSchwarzschild CalculationType = "schwarzschild"
	TypeKerr          CalculationType = "kerr"
	TypeFLRW          CalculationType = "flrw"
	TypeChristoffel   CalculationType = "christoffel"
	TypeRicciTensor   CalculationType = "ricci-tensor"
	TypeRiemannTensor CalculationType = "riemann-tensor"
)

// IsMetric reports whether the type names a metric solution rather than a
// derived-quantity request.
func (t CalculationType) IsMetric() bool {
	switch t {
	case TypeSchwarzschild, TypeKerr, TypeFLRW:
		return true
	default:
		return false
	}
}

// IsDerived reports whether the type requests a derived quantity.
func (t CalculationType) IsDerived() bool {
	switch t {
	case TypeChristoffel, TypeRicciTensor, TypeRiemannTensor:
		return true
	default:
		return false
	}
}

// Valid reports whether the type is one of the supported calculation types.
func (t CalculationType) Valid() bool {
	return t.IsMetric() || t.IsDerived()
}

// CalculationRequest is the immutable input to the dispatch facade.
// Inputs holds the raw, unvalidated numeric parameters by name.
type CalculationRequest struct {
	Type   CalculationType
	Inputs map[string]float64
}

// MetricComponents holds the diagonal metric tensor in the solution's
// natural coordinate basis. All components are finite real numbers on any
// successful evaluation; g_tt is intentionally signed.
type MetricComponents struct {
	GTT         float64 `json:"g_tt"`
	GRR         float64 `json:"g_rr"`
	GThetaTheta float64 `json:"g_theta_theta"`
	GPhiPhi     float64 `json:"g_phi_phi"`
}

// DerivedScalars holds solution-dependent named scalars. Fields that a
// metric type does not produce are nil and omitted from serialized
// responses, never null-filled.
type DerivedScalars struct {
	RicciScalar        *float64 `json:"ricci_scalar,omitempty"`
	EventHorizonRadius *float64 `json:"event_horizon_radius,omitempty"`
	HubbleParameter    *float64 `json:"hubble_parameter,omitempty"`
}

// Float returns a pointer to v, for populating optional scalar fields.
func Float(v float64) *float64 { return &v }

// ChristoffelSymbols is a sparse mapping from symbol index triples to
// values. Only non-zero, defined entries are populated. Keys use the
// platform's historical format Γ<upper>_<lower1><lower2>, e.g. "Γ1_00".
type ChristoffelSymbols map[string]float64

// ChristoffelKey formats a symbol index triple.
func ChristoffelKey(upper, lower1, lower2 int) string {
	return fmt.Sprintf("Γ%d_%d%d", upper, lower1, lower2)
}

// RiemannTensor is a sparse mapping of Riemann curvature components,
// keyed R<upper>_<lower1><lower2><lower3>, e.g. "R0_101".
type RiemannTensor map[string]float64

// RiemannKey formats a Riemann component index quadruple.
func RiemannKey(upper, a, b, c int) string {
	return fmt.Sprintf("R%d_%d%d%d", upper, a, b, c)
}

// RicciTensor is a sparse mapping of Ricci tensor components, keyed
// R_<i><j>, e.g. "R_00".
type RicciTensor map[string]float64

// RicciKey formats a Ricci component index pair.
func RicciKey(i, j int) string {
	return fmt.Sprintf("R_%d%d", i, j)
}

// CalculationResult is the structured output of a calculation. A result is
// either fully populated or not produced at all; the engine never returns a
// partially computed result alongside an error. After Calculate returns,
// the caller owns the result exclusively.
type CalculationResult struct {
	Components      MetricComponents   `json:"metric_components"`
	Derived         DerivedScalars     `json:"derived"`
	Christoffel     ChristoffelSymbols `json:"christoffel,omitempty"`
	Riemann         RiemannTensor      `json:"riemann,omitempty"`
	Ricci           RicciTensor        `json:"ricci,omitempty"`
	IsInsideHorizon bool               `json:"is_inside_horizon,omitempty"`
	Elapsed         time.Duration      `json:"elapsed"`
}

// Clone returns a deep copy of the result. The memoizer hands out clones so
// that a cached entry is never aliased by a caller.
func (r *CalculationResult) Clone() *CalculationResult {
	out := *r
	if r.Christoffel != nil {
		out.Christoffel = make(ChristoffelSymbols, len(r.Christoffel))
		for k, v := range r.Christoffel {
			out.Christoffel[k] = v
		}
	}
	if r.Riemann != nil {
		out.Riemann = make(RiemannTensor, len(r.Riemann))
		for k, v := range r.Riemann {
			out.Riemann[k] = v
		}
	}
	if r.Ricci != nil {
		out.Ricci = make(RicciTensor, len(r.Ricci))
		for k, v := range r.Ricci {
			out.Ricci[k] = v
		}
	}
	return &out
}
