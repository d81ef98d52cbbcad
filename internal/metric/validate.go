package metric

import (
	"math"

	"github.com/einfield/engine/internal/domain"
)

// checkFinite rejects NaN and infinite values for every supplied parameter,
// known or not. Validation is pure and never mutates the input map.
func checkFinite(inputs map[string]float64) error {
	for name, v := range inputs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &domain.InvalidParameterError{Field: name, Value: v}
		}
	}
	return nil
}

// required fetches a named parameter, failing validation when it is absent.
func required(inputs map[string]float64, name string) (float64, error) {
	v, ok := inputs[name]
	if !ok {
		return 0, &domain.ValidationError{Field: name, Reason: "parameter is required"}
	}
	return v, nil
}

// optional fetches a named parameter, falling back to def when absent.
func optional(inputs map[string]float64, name string, def float64) float64 {
	if v, ok := inputs[name]; ok {
		return v
	}
	return def
}

// checkPolarAngle enforces theta in [0, pi].
func checkPolarAngle(theta float64) error {
	if theta < 0 || theta > math.Pi {
		return &domain.ValidationError{Field: "theta", Reason: "must be in [0, pi]"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// componentsFinite enforces the MetricComponents invariant: every component
// is a finite real number.
func componentsFinite(g domain.MetricComponents) bool {
	return isFinite(g.GTT) && isFinite(g.GRR) && isFinite(g.GThetaTheta) && isFinite(g.GPhiPhi)
}
