package metric

import (
	"log/slog"
	"sync"

	"github.com/einfield/engine/internal/domain"
)

// Registry maps metric types to evaluators. It is populated once at process
// start from the built-in list plus any externally supplied evaluators, and
// is safe for concurrent resolution afterwards.
type Registry struct {
	mu         sync.RWMutex
	evaluators map[domain.CalculationType]Evaluator
	logger     *slog.Logger
}

// NewRegistry creates a registry holding the given evaluators.
func NewRegistry(logger *slog.Logger, evaluators ...Evaluator) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		evaluators: make(map[domain.CalculationType]Evaluator, len(evaluators)),
		logger:     logger,
	}
	for _, e := range evaluators {
		r.Register(e)
	}
	return r
}

// Register adds an evaluator under its metric type. At most one evaluator
// per type: registering a duplicate replaces the previous one and logs a
// warning.
func (r *Registry) Register(e Evaluator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.evaluators[e.Type()]; exists {
		r.logger.Warn("replacing registered metric evaluator", "metric_type", e.Type())
	}
	r.evaluators[e.Type()] = e
}

// Resolve returns the evaluator for the given metric type, or a
// *domain.UnsupportedMetricError when none is registered.
func (r *Registry) Resolve(t domain.CalculationType) (Evaluator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.evaluators[t]
	if !ok {
		return nil, &domain.UnsupportedMetricError{Type: t}
	}
	return e, nil
}

// Types returns the registered metric types, for startup logging.
func (r *Registry) Types() []domain.CalculationType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]domain.CalculationType, 0, len(r.evaluators))
	for t := range r.evaluators {
		types = append(types, t)
	}
	return types
}
