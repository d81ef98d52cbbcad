package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einfield/engine/internal/cache"
	"github.com/einfield/engine/internal/domain"
	"github.com/einfield/engine/internal/metric"
	"github.com/einfield/engine/internal/service"
)

// Geometric units keep the horizon at r = 2m, which makes interior and
// singular coordinates easy to pick.
func newTestService(t *testing.T) (*service.CalculationService, *cache.Memoizer) {
	t.Helper()
	registry := metric.NewRegistry(nil,
		metric.NewSchwarzschild(1, 1),
		metric.NewKerr(),
		metric.NewFLRW(70),
	)
	memo := cache.New(64, time.Minute, 0)
	return service.NewCalculationService(registry, memo, nil), memo
}

func TestCalculate_SchwarzschildPipeline(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
		Type:   domain.TypeSchwarzschild,
		Inputs: map[string]float64{"mass": 1, "radius": 10, "theta": math.Pi / 2},
	})
	require.NoError(t, err)

	f := 1 - 2.0/10
	assert.InDelta(t, -f, res.Components.GTT, 1e-15)
	assert.InDelta(t, 1/f, res.Components.GRR, 1e-15)

	require.NotNil(t, res.Derived.RicciScalar)
	require.NotNil(t, res.Derived.EventHorizonRadius)
	assert.Equal(t, 2.0, *res.Derived.EventHorizonRadius)
	assert.Nil(t, res.Derived.HubbleParameter)

	assert.NotEmpty(t, res.Christoffel)
	assert.NotEmpty(t, res.Riemann)
	assert.NotEmpty(t, res.Ricci)
	assert.False(t, res.IsInsideHorizon)
	assert.GreaterOrEqual(t, res.Elapsed, time.Duration(0))
}

func TestCalculate_IdenticalRequestsAreIdempotent(t *testing.T) {
	t.Parallel()

	svc, memo := newTestService(t)
	req := domain.CalculationRequest{
		Type:   domain.TypeKerr,
		Inputs: map[string]float64{"mass": 1, "angular_momentum": 0.5, "radius": 10, "theta": 1.2},
	}

	first, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	// Bit-identical payloads; only the elapsed time may differ.
	assert.Equal(t, first.Components, second.Components)
	assert.Equal(t, first.Derived, second.Derived)
	assert.Equal(t, first.Christoffel, second.Christoffel)
	assert.Equal(t, first.Riemann, second.Riemann)
	assert.Equal(t, first.Ricci, second.Ricci)

	assert.Equal(t, uint64(1), memo.Stats().Hits,
		"the second identical request must be served from the memoizer")
}

func TestCalculate_InsideHorizonFlag(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
		Type:   domain.TypeSchwarzschild,
		Inputs: map[string]float64{"mass": 1, "radius": 1.5, "theta": math.Pi / 2},
	})
	require.NoError(t, err)
	assert.True(t, res.IsInsideHorizon)
}

func TestCalculate_FLRWOmitsBlackHoleQuantities(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
		Type:   domain.TypeFLRW,
		Inputs: map[string]float64{"scale_factor": 1, "k": 0, "radius": 2},
	})
	require.NoError(t, err)

	assert.Nil(t, res.Derived.EventHorizonRadius)
	require.NotNil(t, res.Derived.HubbleParameter)
	assert.Equal(t, 70.0, *res.Derived.HubbleParameter)
	assert.False(t, res.IsInsideHorizon)

	// No simplified curvature table exists for FLRW; the fields are
	// omitted rather than zero-filled.
	assert.Nil(t, res.Riemann)
	assert.Nil(t, res.Ricci)
	assert.NotEmpty(t, res.Christoffel)
}

func TestCalculate_DerivedQuantities(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	schwarzschildInputs := map[string]float64{"mass": 1, "radius": 10, "theta": 1.0}

	t.Run("christoffel infers schwarzschild base", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
			Type:   domain.TypeChristoffel,
			Inputs: schwarzschildInputs,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Christoffel)
		assert.Nil(t, res.Riemann)
		assert.Nil(t, res.Ricci)
	})

	t.Run("riemann infers kerr base from angular momentum", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
			Type:   domain.TypeRiemannTensor,
			Inputs: map[string]float64{"mass": 1, "angular_momentum": 0.5, "radius": 10, "theta": 1.0},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Riemann)
		assert.Nil(t, res.Christoffel)
	})

	t.Run("ricci tensor includes contracted scalar", func(t *testing.T) {
		t.Parallel()
		res, err := svc.Calculate(context.Background(), domain.CalculationRequest{
			Type:   domain.TypeRicciTensor,
			Inputs: schwarzschildInputs,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, res.Ricci)
		require.NotNil(t, res.Derived.RicciScalar)
		assert.NotZero(t, *res.Derived.RicciScalar)
	})

	t.Run("riemann infers flrw base and fails as unsupported", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Calculate(context.Background(), domain.CalculationRequest{
			Type:   domain.TypeRiemannTensor,
			Inputs: map[string]float64{"scale_factor": 1, "k": 0, "radius": 2},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrUnsupportedDerivation)
	})
}

func TestCalculate_ErrorKindsPassThrough(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		req     domain.CalculationRequest
		wantErr error
	}{
		{
			name: "unknown type",
			req: domain.CalculationRequest{
				Type:   "warp",
				Inputs: map[string]float64{"mass": 1},
			},
			wantErr: domain.ErrUnsupportedMetric,
		},
		{
			name: "validation failure",
			req: domain.CalculationRequest{
				Type:   domain.TypeSchwarzschild,
				Inputs: map[string]float64{"mass": -1, "radius": 10, "theta": 1},
			},
			wantErr: domain.ErrValidation,
		},
		{
			name: "naked singularity",
			req: domain.CalculationRequest{
				Type:   domain.TypeKerr,
				Inputs: map[string]float64{"mass": 1, "angular_momentum": 2, "radius": 10, "theta": 1},
			},
			wantErr: domain.ErrNakedSingularity,
		},
		{
			name: "coordinate singularity",
			req: domain.CalculationRequest{
				Type:   domain.TypeSchwarzschild,
				Inputs: map[string]float64{"mass": 1, "radius": 2, "theta": 1},
			},
			wantErr: domain.ErrSingularity,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Calculate(context.Background(), tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// brokenEvaluator simulates an evaluator failing with an unclassified error.
type brokenEvaluator struct{}

func (b *brokenEvaluator) Type() domain.CalculationType { return domain.TypeSchwarzschild }

func (b *brokenEvaluator) Validate(inputs map[string]float64) (domain.Parameters, error) {
	return domain.SchwarzschildParams{Mass: 1, Radius: 10, Theta: 1, SchwarzschildRadius: 2}, nil
}

func (b *brokenEvaluator) Evaluate(p domain.Parameters) (domain.MetricComponents, domain.DerivedScalars, error) {
	return domain.MetricComponents{}, domain.DerivedScalars{}, errors.New("boom")
}

func (b *brokenEvaluator) ComponentsAt(p domain.Parameters, r, theta float64) (domain.MetricComponents, error) {
	return domain.MetricComponents{}, errors.New("boom")
}

func TestCalculate_UnexpectedErrorsSurfaceOpaquely(t *testing.T) {
	t.Parallel()

	registry := metric.NewRegistry(nil, &brokenEvaluator{})
	memo := cache.New(4, time.Minute, 0)
	svc := service.NewCalculationService(registry, memo, nil)

	_, err := svc.Calculate(context.Background(), domain.CalculationRequest{
		Type:   domain.TypeSchwarzschild,
		Inputs: map[string]float64{"mass": 1, "radius": 10, "theta": 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInternalComputation)
	assert.NotContains(t, err.Error(), "boom", "raw internal errors must not leak")
}
