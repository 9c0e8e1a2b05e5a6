package metrics

import "time"

// NoopRecorder discards all metrics. Used when instrumentation is disabled.
type NoopRecorder struct{}

// NewNoop returns a Recorder that does nothing.
func NewNoop() *NoopRecorder {
	return &NoopRecorder{}
}

func (n *NoopRecorder) IncJournalCacheHit()                  {}
func (n *NoopRecorder) IncJournalCacheMiss()                 {}
func (n *NoopRecorder) IncJournalFetchError()                {}
func (n *NoopRecorder) ObserveFetchDuration(_ time.Duration) {}
func (n *NoopRecorder) IncMemoPosted(_ string)               {}
func (n *NoopRecorder) IncMemoRejected()                     {}
func (n *NoopRecorder) IncCacheInvalidation()                {}
func (n *NoopRecorder) IncRateLimited()                      {}
