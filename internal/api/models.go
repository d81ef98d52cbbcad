package api

import (
	"github.com/einfield/engine/internal/domain"
)

// CalculateRequest is the request envelope for POST /api/v1/calculate.
type CalculateRequest struct {
	Type   string             `json:"type" validate:"required"`
	Inputs map[string]float64 `json:"inputs" validate:"required"`
}

// MetricComponentsPayload carries the diagonal metric tensor components.
type MetricComponentsPayload struct {
	GTT         float64 `json:"g_tt"`
	GRR         float64 `json:"g_rr"`
	GThetaTheta float64 `json:"g_theta_theta"`
	GPhiPhi     float64 `json:"g_phi_phi"`
}

// ResultsPayload holds the calculation output under the platform's
// historical field names. Quantities a calculation does not produce are
// omitted, never null-filled.
type ResultsPayload struct {
	MetricComponents   *MetricComponentsPayload `json:"metricComponents,omitempty"`
	RicciScalar        *float64                 `json:"ricciscalar,omitempty"`
	EventHorizon       *float64                 `json:"eventHorizon,omitempty"`
	HubbleParameter    *float64                 `json:"hubbleParameter,omitempty"`
	ChristoffelSymbols map[string]float64       `json:"christoffelSymbols,omitempty"`
	RiemannTensor      map[string]float64       `json:"riemannTensor,omitempty"`
	RicciTensor        map[string]float64       `json:"ricciTensor,omitempty"`
	IsInsideHorizon    bool                     `json:"is_inside_horizon,omitempty"`
}

// CalculateResponse is the success envelope. CalculationTime is the elapsed
// wall-clock time in seconds.
type CalculateResponse struct {
	Results         ResultsPayload `json:"results"`
	CalculationTime float64        `json:"calculation_time"`
	TraceID         string         `json:"trace_id,omitempty"`
}

// resultToPayload converts a domain result to the transport representation.
func resultToPayload(res *domain.CalculationResult) ResultsPayload {
	payload := ResultsPayload{
		MetricComponents: &MetricComponentsPayload{
			GTT:         res.Components.GTT,
			GRR:         res.Components.GRR,
			GThetaTheta: res.Components.GThetaTheta,
			GPhiPhi:     res.Components.GPhiPhi,
		},
		RicciScalar:        res.Derived.RicciScalar,
		EventHorizon:       res.Derived.EventHorizonRadius,
		HubbleParameter:    res.Derived.HubbleParameter,
		ChristoffelSymbols: res.Christoffel,
		RiemannTensor:      res.Riemann,
		RicciTensor:        res.Ricci,
		IsInsideHorizon:    res.IsInsideHorizon,
	}
	return payload
}
