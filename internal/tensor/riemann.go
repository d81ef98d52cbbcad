package tensor

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// Riemann returns the simplified sparse Riemann component table for the
// base solution. These are the key components the platform has always
// reported, in geometric units, not a full curvature derivation; the
// behavior is preserved as documented. Solutions without a table return a
// *domain.UnsupportedDerivationError.
func Riemann(p domain.Parameters) (domain.RiemannTensor, error) {
	switch sp := p.(type) {
	case domain.SchwarzschildParams:
		return schwarzschildRiemann(sp)
	case domain.KerrParams:
		return kerrRiemann(sp), nil
	case domain.FLRWParams:
		return nil, &domain.UnsupportedDerivationError{
			Quantity: "riemann tensor", Type: domain.TypeFLRW,
		}
	default:
		return nil, &domain.UnsupportedDerivationError{Quantity: "riemann tensor"}
	}
}

func schwarzschildRiemann(p domain.SchwarzschildParams) (domain.RiemannTensor, error) {
	rs, r := p.SchwarzschildRadius, p.Radius
	f := 1 - rs/r
	if f == 0 {
		return nil, &domain.SingularityError{
			Type: domain.TypeSchwarzschild, Radius: r, Theta: p.Theta,
		}
	}
	tr := rs / (r * r * r * f)
	ang := rs / r
	out := domain.RiemannTensor{
		domain.RiemannKey(0, 1, 0, 1): tr,
		domain.RiemannKey(0, 1, 1, 0): -tr,
		domain.RiemannKey(2, 3, 2, 3): ang,
		domain.RiemannKey(2, 3, 3, 2): -ang,
	}
	return out, nil
}

func kerrRiemann(p domain.KerrParams) domain.RiemannTensor {
	m, a, r := p.Mass, p.Spin, p.Radius
	cosTheta := math.Cos(p.Theta)
	rho2 := r*r + a*a*cosTheta*cosTheta

	out := make(domain.RiemannTensor, 2)
	if v := m * (r*r - a*a*cosTheta*cosTheta) / (rho2 * rho2 * rho2); v != 0 {
		out[domain.RiemannKey(0, 1, 0, 1)] = v
	}
	if v := -m * r / (rho2 * rho2); v != 0 {
		out[domain.RiemannKey(0, 2, 0, 2)] = v
	}
	return out
}

// Ricci contracts the sparse Riemann map, R_ij = R^k_ikj. Only non-zero
// entries are populated.
func Ricci(riemann domain.RiemannTensor) domain.RicciTensor {
	var dense [4][4]float64
	for key, v := range riemann {
		u, i, k, j, ok := parseRiemannKey(key)
		if !ok || k != u {
			continue
		}
		dense[i][j] += v
	}

	out := make(domain.RicciTensor)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if dense[i][j] != 0 {
				out[domain.RicciKey(i, j)] = dense[i][j]
			}
		}
	}
	return out
}

// RicciScalar contracts the Ricci tensor with the inverse of the diagonal
// metric, R = g^ij R_ij.
func RicciScalar(ricci domain.RicciTensor, g domain.MetricComponents) float64 {
	diag := asArray(g)
	scalar := 0.0
	for i := 0; i < 4; i++ {
		v, ok := ricci[domain.RicciKey(i, i)]
		if !ok || diag[i] == 0 {
			continue
		}
		scalar += v / diag[i]
	}
	return scalar
}

// parseRiemannKey reads keys of the form R<u>_<i><k><j>.
func parseRiemannKey(key string) (u, i, k, j int, ok bool) {
	if len(key) != 6 || key[0] != 'R' || key[2] != '_' {
		return 0, 0, 0, 0, false
	}
	digits := [4]byte{key[1], key[3], key[4], key[5]}
	var idx [4]int
	for n, d := range digits {
		if d < '0' || d > '3' {
			return 0, 0, 0, 0, false
		}
		idx[n] = int(d - '0')
	}
	return idx[0], idx[1], idx[2], idx[3], true
}
