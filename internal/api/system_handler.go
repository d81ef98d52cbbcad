package api

import (
	"net/http"

	"github.com/einfield/engine/internal/api/shared"
	"github.com/einfield/engine/internal/cache"
)

// StatsProvider reports memoizer counters.
type StatsProvider interface {
	Stats() cache.Stats
}

// SystemHandler serves operational endpoints: health and cache statistics.
type SystemHandler struct {
	stats StatsProvider
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(stats StatsProvider) *SystemHandler {
	return &SystemHandler{stats: stats}
}

// Health handles GET /health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// CacheStats handles GET /cache/stats.
func (h *SystemHandler) CacheStats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.stats.Stats())
}
