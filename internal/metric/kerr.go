package metric

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// Kerr evaluates the rotating vacuum solution in Boyer-Lindquist
// coordinates and geometric units (G = c = 1):
//
//	ρ² = r² + a²cos²θ      Δ = r² - 2mr + a²
//	g_tt = -(1 - 2mr/ρ²)   g_rr = ρ²/Δ
//	g_θθ = ρ²              g_φφ = (r² + a² + 2mr·a²sin²θ/ρ²) sin²θ
//
// The ricci_scalar is reported as exactly 0: Kerr is vacuum by construction.
type Kerr struct{}

func NewKerr() *Kerr { return &Kerr{} }

func (k *Kerr) Type() domain.CalculationType { return domain.TypeKerr }

// Validate enforces mass > 0, radius > 0, theta in [0, pi] and the extremal
// bound |angular_momentum| <= mass. Spins beyond the bound would expose the
// singularity and fail before any arithmetic runs.
func (k *Kerr) Validate(inputs map[string]float64) (domain.Parameters, error) {
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
	spin, err := required(inputs, "angular_momentum")
	if err != nil {
		return nil, err
	}
	if math.Abs(spin) > mass {
		return nil, &domain.NakedSingularityError{Mass: mass, Spin: spin}
	}
	radius, err := required(inputs, "radius")
	if err != nil {
		return nil, err
	}
	if radius <= 0 {
		return nil, &domain.ValidationError{Field: "radius", Reason: "must be positive"}
	}
	theta, err := required(inputs, "theta")
	if err != nil {
		return nil, err
	}
	if err := checkPolarAngle(theta); err != nil {
		return nil, err
	}
	return domain.KerrParams{Mass: mass, Spin: spin, Radius: radius, Theta: theta}, nil
}

func (k *Kerr) ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error) {
	kp := p.(domain.KerrParams)
	m, a := kp.Mass, kp.Spin
	sinTheta, cosTheta := math.Sin(theta), math.Cos(theta)
	sin2, cos2 := sinTheta*sinTheta, cosTheta*cosTheta

	rho2 := r*r + a*a*cos2
	delta := r*r - 2*m*r + a*a
	if rho2 == 0 || delta == 0 {
		return domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeKerr, Radius: r, Theta: theta,
		}
	}

	g := domain.MetricComponents{
		GTT:         -(1 - 2*m*r/rho2),
		GRR:         rho2 / delta,
		GThetaTheta: rho2,
		GPhiPhi:     (r*r + a*a + 2*m*r*a*a*sin2/rho2) * sin2,
	}
	if !componentsFinite(g) {
		return domain.MetricComponents{}, &domain.SingularityError{
			Type: domain.TypeKerr, Radius: r, Theta: theta,
		}
	}
	return g, nil
}

func (k *Kerr) Evaluate(p domain.Parameters) (domain.MetricComponents, domain.DerivedScalars, error) {
	kp := p.(domain.KerrParams)
	g, err := k.ComponentsAt(p, kp.Radius, kp.Theta)
	if err != nil {
		return domain.MetricComponents{}, domain.DerivedScalars{}, err
	}

	// Outer horizon only. The discriminant is non-negative: validation
	// enforced |a| <= m.
	horizon := kp.Mass + math.Sqrt(kp.Mass*kp.Mass-kp.Spin*kp.Spin)
	derived := domain.DerivedScalars{
		RicciScalar:        domain.Float(0),
		EventHorizonRadius: domain.Float(horizon),
	}
	return g, derived, nil
}
