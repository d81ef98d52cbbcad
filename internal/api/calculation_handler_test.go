package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einfield/engine/internal/api"
	"github.com/einfield/engine/internal/cache"
	"github.com/einfield/engine/internal/domain"
)

// stubCalculator returns a canned result or error and records the request
// it received.
type stubCalculator struct {
	result  *domain.CalculationResult
	err     error
	lastReq domain.CalculationRequest
}

func (s *stubCalculator) Calculate(ctx context.Context, req domain.CalculationRequest) (*domain.CalculationResult, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func postCalculate(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/calculate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCalculateHandler_Success(t *testing.T) {
	t.Parallel()

	calc := &stubCalculator{
		result: &domain.CalculationResult{
			Components: domain.MetricComponents{GTT: -0.8, GRR: 1.25, GThetaTheta: 100, GPhiPhi: 100},
			Derived: domain.DerivedScalars{
				RicciScalar:        domain.Float(0.002),
				EventHorizonRadius: domain.Float(2),
			},
			Christoffel: domain.ChristoffelSymbols{"Γ1_00": 0.008},
			Riemann:     domain.RiemannTensor{"R0_101": 0.0025},
			Ricci:       domain.RicciTensor{"R_11": 0.0025},
			Elapsed:     1500 * time.Microsecond,
		},
	}
	handler := api.NewCalculationHandler(calc, nil)

	rec := postCalculate(t, handler.Calculate,
		`{"type":"schwarzschild","inputs":{"mass":1,"radius":10,"theta":1.5707}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	assert.Equal(t, domain.TypeSchwarzschild, calc.lastReq.Type)
	assert.Equal(t, 10.0, calc.lastReq.Inputs["radius"])

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "results")
	require.Contains(t, body, "calculation_time")

	var calcTime float64
	require.NoError(t, json.Unmarshal(body["calculation_time"], &calcTime))
	assert.InDelta(t, 0.0015, calcTime, 1e-9)

	var results map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body["results"], &results))
	for _, field := range []string{
		"metricComponents", "ricciscalar", "eventHorizon",
		"christoffelSymbols", "riemannTensor", "ricciTensor",
	} {
		assert.Contains(t, results, field)
	}
	assert.NotContains(t, results, "hubbleParameter",
		"scalars the calculation does not produce must be omitted")
	assert.NotContains(t, results, "is_inside_horizon")

	var components map[string]float64
	require.NoError(t, json.Unmarshal(results["metricComponents"], &components))
	assert.Equal(t, -0.8, components["g_tt"])
	assert.Equal(t, 1.25, components["g_rr"])
}

func TestCalculateHandler_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		calcErr    error
		wantStatus int
	}{
		{
			name:       "malformed JSON",
			body:       `{"type": "schwarzschild",`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing inputs",
			body:       `{"type":"schwarzschild"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing type",
			body:       `{"inputs":{"mass":1}}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown metric type",
			body:       `{"type":"warp","inputs":{"mass":1}}`,
			calcErr:    &domain.UnsupportedMetricError{Type: "warp"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure",
			body:       `{"type":"schwarzschild","inputs":{"mass":-1,"radius":10,"theta":1}}`,
			calcErr:    &domain.ValidationError{Field: "mass", Reason: "must be positive"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "naked singularity",
			body:       `{"type":"kerr","inputs":{"mass":1,"angular_momentum":2,"radius":10,"theta":1}}`,
			calcErr:    &domain.NakedSingularityError{Mass: 1, Spin: 2},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unsupported derivation",
			body:       `{"type":"riemann-tensor","inputs":{"scale_factor":1,"k":0,"radius":2}}`,
			calcErr:    &domain.UnsupportedDerivationError{Quantity: "riemann tensor", Type: domain.TypeFLRW},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "coordinate singularity",
			body:       `{"type":"schwarzschild","inputs":{"mass":1,"radius":2,"theta":1}}`,
			calcErr:    &domain.SingularityError{Type: domain.TypeSchwarzschild, Radius: 2, Theta: 1},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			handler := api.NewCalculationHandler(&stubCalculator{err: tc.calcErr}, nil)
			rec := postCalculate(t, handler.Calculate, tc.body)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestCalculateHandler_InternalErrorsAreOpaque(t *testing.T) {
	t.Parallel()

	handler := api.NewCalculationHandler(&stubCalculator{err: errors.New("pointer deref in tensor assembly")}, nil)
	rec := postCalculate(t, handler.Calculate,
		`{"type":"schwarzschild","inputs":{"mass":1,"radius":10,"theta":1}}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "pointer deref",
		"internal error details must not reach the client")
	assert.Contains(t, rec.Body.String(), "Internal calculation error")
}

func TestSystemHandler_Health(t *testing.T) {
	t.Parallel()

	handler := api.NewSystemHandler(cache.New(4, time.Minute, 0))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestSystemHandler_CacheStats(t *testing.T) {
	t.Parallel()

	memo := cache.New(4, time.Minute, 0)
	_, err := memo.GetOrCompute("k", func() (*domain.CalculationResult, error) {
		return &domain.CalculationResult{}, nil
	})
	require.NoError(t, err)
	_, err = memo.GetOrCompute("k", func() (*domain.CalculationResult, error) {
		return &domain.CalculationResult{}, nil
	})
	require.NoError(t, err)

	handler := api.NewSystemHandler(memo)
	req := httptest.NewRequest(http.MethodGet, "/cache/stats", nil)
	rec := httptest.NewRecorder()
	handler.CacheStats(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]float64
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 1.0, stats["hits"])
	assert.Equal(t, 1.0, stats["misses"])
	assert.Equal(t, 1.0, stats["entries"])
}
