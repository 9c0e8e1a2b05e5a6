package handler

import (
	"fmt"
	"net/http"

	"github.com/cympfh/shanghai/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "shanghai_journal_cache_hits_total %d\n", snap.JournalCacheHits)
	writeMetric(w, "shanghai_journal_cache_misses_total %d\n", snap.JournalCacheMisses)
	writeMetric(w, "shanghai_journal_fetch_errors_total %d\n", snap.JournalFetchErrors)
	writeMetric(w, "shanghai_journal_fetch_duration_seconds_count %d\n", snap.FetchDurationCount)
	writeMetric(w, "shanghai_journal_fetch_duration_seconds_sum %.6f\n", float64(snap.FetchDurationTotalNs)/1e9)

	writeMetric(w, "shanghai_memos_posted_total{type=\"payment\"} %d\n", snap.PaymentsPosted)
	writeMetric(w, "shanghai_memos_posted_total{type=\"cancel\"} %d\n", snap.CancelsPosted)
	writeMetric(w, "shanghai_memos_posted_total{type=\"note\"} %d\n", snap.NotesPosted)
	writeMetric(w, "shanghai_memos_rejected_total %d\n", snap.MemosRejected)

	writeMetric(w, "shanghai_cache_invalidations_total %d\n", snap.CacheInvalidations)
	writeMetric(w, "shanghai_rate_limited_total %d\n", snap.RateLimited)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
