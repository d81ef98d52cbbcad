package metric

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// defaultPolarAngle is the equatorial plane, used when an FLRW request
// omits theta. The FLRW form only touches theta through g_φφ.
const defaultPolarAngle = math.Pi / 2

// FLRW evaluates the homogeneous, isotropic cosmological solution:
//
//	g_tt = -1
//	g_rr = a²           (k = 0)
//	      a²/(1 - r²)   (k = +1)
//	      a²/(1 + r²)   (k = -1)
//	g_θθ = a²r²          g_φφ = a²r² sin²θ
//
// with ricci_scalar = 6(a² + k)/a⁴. The hubble_parameter passes through an
// optional input and otherwise takes the configured default; it is never a
// constant buried in the evaluation.
type FLRW struct {
	defaultHubble float64
}

// NewFLRW returns an evaluator whose hubble_parameter falls back to the
// given configured default.
func NewFLRW(defaultHubble float64) *FLRW {
	return &FLRW{defaultHubble: defaultHubble}
}

func (f *FLRW) Type() domain.CalculationType { return domain.TypeFLRW }

// Validate enforces scale_factor > 0, radius >= 0 and a curvature index of
// exactly -1, 0 or 1. Any other index fails; there is no silent fallback to
// the flat case.
func (f *FLRW) Validate(inputs map[string]float64) (domain.Parameters, error) {
	if err := checkFinite(inputs); err != nil {
		return nil, err
	}
	scale, err := required(inputs, "scale_factor")
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, &domain.ValidationError{Field: "scale_factor", Reason: "must be positive"}
	}
	kRaw, err := required(inputs, "k")
	if err != nil {
		return nil, err
	}
	if kRaw != -1 && kRaw != 0 && kRaw != 1 {
		return nil, &domain.ValidationError{Field: "k", Reason: "curvature index must be exactly -1, 0 or 1"}
	}
	radius, err := required(inputs, "radius")
	if err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: "must be non-negative"}
	}
	theta := optional(inputs, "theta", defaultPolarAngle)
	if err := checkPolarAngle(theta); err != nil {
		return nil, err
	}
	hubble := optional(inputs, "hubble_parameter", f.defaultHubble)

	return domain.FLRWParams{
		ScaleFactor: scale,
		Curvature:   int(kRaw),
		Radius:      radius,
		Theta:       theta,
		Hubble:      hubble,
	}, nil
}

func (f *FLRW) ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error) {
	fp := p.(domain.FLRWParams)
	a2 := fp.ScaleFactor * fp.ScaleFactor

	var grr float64
	switch fp.Curvature {
	case 0:
		grr = a2
	case 1:
		denom := 1 - r*r
		if denom == 0 {
			return domain.MetricComponents{}, &domain.SingularityError{
				Type: domain.TypeFLRW, Radius: r, Theta: theta,
			}
		}
		grr = a2 / denom
	case -1:
		grr = a2 / (1 + r*r)
	}

	sinTheta := math.Sin(theta)
	g := domain.MetricComponents{
		GTT:         -1,
		GRR:         grr,
		GThetaTheta: a2 * r * r,
		GPhiPhi:     a2 * r * r * sinTheta * sinTheta,
	}
	if !componentsFinite(g) {
		return domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeFLRW, Radius: r, Theta: theta,
		}
	}
	return g, nil
}

func (f *FLRW) Evaluate(p domain.Parameters) (domain.MetricComponents, domain.DerivedScalars, error) {
	fp := p.(domain.FLRWParams)
	g, err := f.ComponentsAt(p, fp.Radius, fp.Theta)
	if err != nil {
		return domain.MetricComponents{}, domain.DerivedScalars{}, err
	}

	a2 := fp.ScaleFactor * fp.ScaleFactor
	ricci := 6 * (a2 + float64(fp.Curvature)) / (a2 * a2)
	if !isFinite(ricci) {
		return domain.MetricComponents{}, domain.DerivedScalars{}, &domain.InternalComputationError{
			Type: domain.TypeFLRW, Quantity: "ricci scalar",
		}
	}

	derived := domain.DerivedScalars{
		RicciScalar:     domain.Float(ricci),
		HubbleParameter: domain.Float(fp.Hubble),
	}
	return g, derived, nil
}
