// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Journal fetch metrics
	IncJournalCacheHit()
	IncJournalCacheMiss()
	IncJournalFetchError()
	ObserveFetchDuration(duration time.Duration)

	// Memo metrics
	IncMemoPosted(memoType string) // memoType: "Payment", "Cancel", "Note"
	IncMemoRejected()

	// Cache metrics
	IncCacheInvalidation()

	// Rate limiting metrics
	IncRateLimited()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
