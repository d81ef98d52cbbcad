package metric_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/einfield/engine/internal/domain"
	"github.com/einfield/engine/internal/metric"
)

func newTestRegistry(logger *slog.Logger) *metric.Registry {
	return metric.NewRegistry(logger,
		metric.NewSchwarzschild(1, 1),
		metric.NewKerr(),
		metric.NewFLRW(testDefaultHubble),
	)
}

func TestRegistry_ResolveKnownTypes(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(nil)

	for _, typ := range []domain.CalculationType{
		domain.TypeSchwarzschild, domain.TypeKerr, domain.TypeFLRW,
	} {
		ev, err := reg.Resolve(typ)
		require.NoError(t, err)
		assert.Equal(t, typ, ev.Type())
	}
	assert.Len(t, reg.Types(), 3)
}

func TestRegistry_UnknownTypeFails(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry(nil)

	_, err := reg.Resolve("warp")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedMetric)

	var umErr *domain.UnsupportedMetricError
	require.ErrorAs(t, err, &umErr)
	assert.Equal(t, domain.CalculationType("warp"), umErr.Type)
}

func TestRegistry_DuplicateRegistrationReplacesAndWarns(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := newTestRegistry(logger)
	assert.Empty(t, buf.String())

	replacement := metric.NewSchwarzschild(1, 1)
	reg.Register(replacement)

	assert.Contains(t, buf.String(), "replacing registered metric evaluator")
	assert.Contains(t, buf.String(), "schwarzschild")

	ev, err := reg.Resolve(domain.TypeSchwarzschild)
	require.NoError(t, err)
	assert.Same(t, replacement, ev.(*metric.Schwarzschild))
	assert.Len(t, reg.Types(), 3)
}
