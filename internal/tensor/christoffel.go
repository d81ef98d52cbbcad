// Package tensor computes derived curvature quantities from the metric
// components an evaluator produces. Coordinates are indexed 0=t, 1=r,
// 2=theta, 3=phi throughout.
package tensor

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// MetricField provides metric components at arbitrary coordinates. Every
// metric.Evaluator satisfies it.
type MetricField interface {
	ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error)
}

// DerivativeProvider is optionally implemented by evaluators with a
// closed-form derivative table. Christoffel prefers it over numerical
// differencing.
type DerivativeProvider interface {
	MetricDerivativesAt(p domain.Parameters, r, theta float64) (dgdr, dgdtheta domain.MetricComponents, err error)
}

const (
	// DefaultRelativeStep is the central-difference step as a fraction of
	// the coordinate magnitude.
	DefaultRelativeStep = 1e-5

	// stepFloor bounds the step away from zero for near-zero coordinates,
	// avoiding catastrophic cancellation.
	stepFloor = 1e-8
)

// Christoffel computes the Christoffel symbols of the second kind,
//
//	Γ^μ_αβ = ½ g^μσ (∂_α g_βσ + ∂_β g_ασ - ∂_σ g_αβ),
//
// at the parameters' coordinates. Metrics supplying closed-form derivatives
// are differentiated symbolically; all others via central finite
// differences at DefaultRelativeStep. Symmetry in the lower index pair is
// exploited: only α <= β is computed and mirrored. Only non-zero, defined
// entries appear in the result.
func Christoffel(field MetricField, p domain.Parameters) (domain.ChristoffelSymbols, error) {
	r, theta := p.Coordinates()

	var dgdr, dgdtheta domain.MetricComponents
	var err error
	if dp, ok := field.(DerivativeProvider); ok {
		dgdr, dgdtheta, err = dp.MetricDerivativesAt(p, r, theta)
	} else {
		dgdr, dgdtheta, err = numericDerivatives(field, p, r, theta, DefaultRelativeStep)
	}
	if err != nil {
		return nil, err
	}

	base, err := field.ComponentsAt(p, r, theta)
	if err != nil {
		return nil, err
	}
	return assemble(base, dgdr, dgdtheta), nil
}

// ChristoffelNumeric is the pure finite-difference path with an explicit
// relative step, used directly by convergence tests.
func ChristoffelNumeric(field MetricField, p domain.Parameters, relativeStep float64) (domain.ChristoffelSymbols, error) {
	r, theta := p.Coordinates()
	dgdr, dgdtheta, err := numericDerivatives(field, p, r, theta, relativeStep)
	if err != nil {
		return nil, err
	}
	base, err := field.ComponentsAt(p, r, theta)
	if err != nil {
		return nil, err
	}
	return assemble(base, dgdr, dgdtheta), nil
}

// assemble builds the sparse symbol map from the diagonal metric and its
// two non-trivial derivative vectors. The metrics here are static and
// axisymmetric, so t- and phi-derivatives vanish identically.
func assemble(base, dgdr, dgdtheta domain.MetricComponents) domain.ChristoffelSymbols {
	g := asArray(base)

	// d[c][i] = ∂_c g_ii; only the r and theta rows are non-zero.
	var d [4][4]float64
	d[1] = asArray(dgdr)
	d[2] = asArray(dgdtheta)

	syms := make(domain.ChristoffelSymbols)
	for mu := 0; mu < 4; mu++ {
		if g[mu] == 0 {
			// Degenerate component (e.g. g_φφ on the axis): the inverse
			// metric row is undefined, so these symbols are not populated.
			continue
		}
		ginv := 1 / g[mu]
		for alpha := 0; alpha < 4; alpha++ {
			for beta := alpha; beta < 4; beta++ {
				// The metric is diagonal, so ∂_α g_βμ survives only when
				// β == μ, and ∂_μ g_αβ only when α == β.
				v := 0.0
				if beta == mu {
					v += d[alpha][mu]
				}
				if alpha == mu {
					v += d[beta][mu]
				}
				if alpha == beta {
					v -= d[mu][alpha]
				}
				v *= 0.5 * ginv
				if v == 0 {
					continue
				}
				syms[domain.ChristoffelKey(mu, alpha, beta)] = v
				if alpha != beta {
					syms[domain.ChristoffelKey(mu, beta, alpha)] = v
				}
			}
		}
	}
	return syms
}

func numericDerivatives(field MetricField, p domain.Parameters, r, theta, relativeStep float64) (dgdr, dgdtheta domain.MetricComponents, err error) {
	hr := stepFor(r, relativeStep)
	rPlus, err := field.ComponentsAt(p, r+hr, theta)
	if err != nil {
		return dgdr, dgdtheta, err
	}
	rMinus, err := field.ComponentsAt(p, r-hr, theta)
	if err != nil {
		return dgdr, dgdtheta, err
	}
	dgdr = centralDiff(rPlus, rMinus, hr)

	ht := stepFor(theta, relativeStep)
	tPlus, err := field.ComponentsAt(p, r, theta+ht)
	if err != nil {
		return dgdr, dgdtheta, err
	}
	tMinus, err := field.ComponentsAt(p, r, theta-ht)
	if err != nil {
		return dgdr, dgdtheta, err
	}
	dgdtheta = centralDiff(tPlus, tMinus, ht)
	return dgdr, dgdtheta, nil
}

func stepFor(x, relativeStep float64) float64 {
	h := relativeStep * math.Abs(x)
	if h < stepFloor {
		h = stepFloor
	}
	return h
}

func centralDiff(plus, minus domain.MetricComponents, h float64) domain.MetricComponents {
	inv := 1 / (2 * h)
	return domain.MetricComponents{
		GTT:         (plus.GTT - minus.GTT) * inv,
		GRR:         (plus.GRR - minus.GRR) * inv,
		GThetaTheta: (plus.GThetaTheta - minus.GThetaTheta) * inv,
		GPhiPhi:     (plus.GPhiPhi - minus.GPhiPhi) * inv,
	}
}

func asArray(g domain.MetricComponents) [4]float64 {
	return [4]float64{g.GTT, g.GRR, g.GThetaTheta, g.GPhiPhi}
}
