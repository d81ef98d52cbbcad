package metric

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// Schwarzschild evaluates the static, spherically symmetric vacuum solution
// in Schwarzschild coordinates:
//
//	g_tt = -(1 - r_s/r)    g_rr = 1/(1 - r_s/r)
//	g_θθ = r²              g_φφ = r² sin²θ
//
// with r_s = 2Gm/c². G and c are injected from configuration; the defaults
// are SI values, so masses are kilograms and radii meters. The reported
// ricci_scalar is the platform's historical r_s/r³ convention, not the
// vanishing Ricci scalar of the true vacuum solution.
type Schwarzschild struct {
	g float64 // gravitational constant
	c float64 // speed of light
}

// NewSchwarzschild returns an evaluator using the given gravitational
// constant and speed of light.
func NewSchwarzschild(gravitationalConstant, speedOfLight float64) *Schwarzschild {
	return &Schwarzschild{g: gravitationalConstant, c: speedOfLight}
}

func (s *Schwarzschild) Type() domain.CalculationType { return domain.TypeSchwarzschild }

// SchwarzschildRadius returns r_s = 2Gm/c² for the given mass.
func (s *Schwarzschild) SchwarzschildRadius(mass float64) float64 {
	return 2 * s.g * mass / (s.c * s.c)
}

// Validate enforces mass > 0 and radius > 0. A radius at or inside the
// horizon is accepted (the interior region evaluates and is flagged on the
// result), but radius exactly 0 is a hard validation error.
func (s *Schwarzschild) Validate(inputs map[string]float64) (domain.Parameters, error) {
	if err := checkFinite(inputs); err != nil {
		return nil, err
	}
	mass, err := required(inputs, "mass")
	if err != nil {
		return nil, err
	}
	if mass <= 0 {
		return nil, &domain.ValidationError{Field: "mass", Reason: "must be positive"}
	}
	radius, err := required(inputs, "radius")
	if err != nil {
		return nil, err
	}
	if radius == 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: "must be non-zero"}
	}
	if radius < 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: "must be positive"}
	}
	theta, err := required(inputs, "theta")
	if err != nil {
		return nil, err
	}
	if err := checkPolarAngle(theta); err != nil {
		return nil, err
	}
	return domain.SchwarzschildParams{
		Mass:                mass,
		Radius:              radius,
		Theta:               theta,
		SchwarzschildRadius: s.SchwarzschildRadius(mass),
	}, nil
}

func (s *Schwarzschild) ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error) {
	sp := p.(domain.SchwarzschildParams)
	rs := sp.SchwarzschildRadius
	f := 1 - rs/r
	if f == 0 {
		// r == r_s exactly: g_rr diverges.
		return domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeSchwarzschild, Radius: r, Theta: theta,
		}
	}
	sinTheta := math.Sin(theta)
	g := domain.MetricComponents{
		GTT:         -f,
		GRR:         1 / f,
		GThetaTheta: r * r,
		GPhiPhi:     r * r * sinTheta * sinTheta,
	}
	if !componentsFinite(g) {
		return domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeSchwarzschild, Radius: r, Theta: theta,
		}
	}
	return g, nil
}

func (s *Schwarzschild) Evaluate(p domain.Parameters) (domain.MetricComponents, domain.DerivedScalars, error) {
	sp := p.(domain.SchwarzschildParams)
	g, err := s.ComponentsAt(p, sp.Radius, sp.Theta)
	if err != nil {
		return domain.MetricComponents{}, domain.DerivedScalars{}, err
	}

	rs := sp.SchwarzschildRadius
	ricci := rs / (sp.Radius * sp.Radius * sp.Radius)
	if !isFinite(ricci) || !isFinite(rs) {
		return domain.MetricComponents{}, domain.DerivedScalars{}, &domain.InternalComputationError{
			Type: domain.TypeSchwarzschild, Quantity: "derived scalars",
		}
	}

	derived := domain.DerivedScalars{
		RicciScalar:        domain.Float(ricci),
		EventHorizonRadius: domain.Float(rs),
	}
	return g, derived, nil
}

// MetricDerivativesAt returns the closed-form partial derivatives of the
// metric components with respect to r and theta. The derived-quantity
// calculator prefers this over finite differencing when available.
func (s *Schwarzschild) MetricDerivativesAt(p domain.Parameters, r, theta float64) (dgdr, dgdtheta domain.MetricComponents, err error) {
	sp := p.(domain.SchwarzschildParams)
	rs := sp.SchwarzschildRadius
	f := 1 - rs/r
	if f == 0 {
		return domain.MetricComponents{}, domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeSchwarzschild, Radius: r, Theta: theta,
		}
	}
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)

	dgdr = domain.MetricComponents{
		GTT:         -rs / (r * r),
		GRR:         -(rs / (r * r)) / (f * f),
		GThetaTheta: 2 * r,
		GPhiPhi:     2 * r * sinTheta * sinTheta,
	}
	dgdtheta = domain.MetricComponents{
		GPhiPhi: 2 * r * r * sinTheta * cosTheta,
	}
	return dgdr, dgdtheta, nil
}
