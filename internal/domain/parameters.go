package domain

// Parameters is a validated, metric-specific projection of request inputs.
// Values are constructed only by an evaluator's Validate method; an
// evaluator never receives unvalidated input.
type Parameters interface {
	// Coordinates returns the radial and polar coordinates the metric is
	// evaluated at. Derived-quantity calculators differentiate around this
	// point.
	Coordinates() (r, theta float64)
}

// SchwarzschildParams are validated inputs for the Schwarzschild solution.
// SchwarzschildRadius carries r_s = 2Gm/c², fixed at validation time with
// the configured constants so downstream calculators need no unit knowledge.
type SchwarzschildParams struct {
	Mass                float64
	Radius              float64
	Theta               float64
	SchwarzschildRadius float64
}

func (p SchwarzschildParams) Coordinates() (float64, float64) { return p.Radius, p.Theta }

// KerrParams are validated inputs for the Kerr solution in Boyer-Lindquist
// coordinates. Spin is the angular momentum per unit mass, bounded by
// |Spin| <= Mass.
type KerrParams struct {
	Mass   float64
	Spin   float64
	Radius float64
	Theta  float64
}

func (p KerrParams) Coordinates() (float64, float64) { return p.Radius, p.Theta }

// FLRWParams are validated inputs for the FLRW solution. Curvature is
// exactly -1, 0 or 1. Hubble carries either the caller-supplied
// hubble_parameter or the configured default.
type FLRWParams struct {
	ScaleFactor float64
	Curvature   int
	Radius      float64
	Theta       float64
	Hubble      float64
}

func (p FLRWParams) Coordinates() (float64, float64) { return p.Radius, p.Theta }
