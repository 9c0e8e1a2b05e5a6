package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	JournalCacheHits     uint64
	JournalCacheMisses   uint64
	JournalFetchErrors   uint64
	FetchDurationCount   uint64
	FetchDurationTotalNs int64
	PaymentsPosted       uint64
	CancelsPosted        uint64
	NotesPosted          uint64
	MemosRejected        uint64
	CacheInvalidations   uint64
	RateLimited          uint64
}

// InMemoryRecorder stores metrics in memory.
type InMemoryRecorder struct {
	journalCacheHits     uint64
	journalCacheMisses   uint64
	journalFetchErrors   uint64
	fetchDurationCount   uint64
	fetchDurationTotalNs int64
	paymentsPosted       uint64
	cancelsPosted        uint64
	notesPosted          uint64
	memosRejected        uint64
	cacheInvalidations   uint64
	rateLimited          uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		JournalCacheHits:     atomic.LoadUint64(&m.journalCacheHits),
		JournalCacheMisses:   atomic.LoadUint64(&m.journalCacheMisses),
		JournalFetchErrors:   atomic.LoadUint64(&m.journalFetchErrors),
		FetchDurationCount:   atomic.LoadUint64(&m.fetchDurationCount),
		FetchDurationTotalNs: atomic.LoadInt64(&m.fetchDurationTotalNs),
		PaymentsPosted:       atomic.LoadUint64(&m.paymentsPosted),
		CancelsPosted:        atomic.LoadUint64(&m.cancelsPosted),
		NotesPosted:          atomic.LoadUint64(&m.notesPosted),
		MemosRejected:        atomic.LoadUint64(&m.memosRejected),
		CacheInvalidations:   atomic.LoadUint64(&m.cacheInvalidations),
		RateLimited:          atomic.LoadUint64(&m.rateLimited),
	}
}

func (m *InMemoryRecorder) IncJournalCacheHit() {
	atomic.AddUint64(&m.journalCacheHits, 1)
}

func (m *InMemoryRecorder) IncJournalCacheMiss() {
	atomic.AddUint64(&m.journalCacheMisses, 1)
}

func (m *InMemoryRecorder) IncJournalFetchError() {
	atomic.AddUint64(&m.journalFetchErrors, 1)
}

func (m *InMemoryRecorder) ObserveFetchDuration(duration time.Duration) {
	atomic.AddUint64(&m.fetchDurationCount, 1)
	atomic.AddInt64(&m.fetchDurationTotalNs, duration.Nanoseconds())
}

func (m *InMemoryRecorder) IncMemoPosted(memoType string) {
	switch memoType {
	case "Payment":
		atomic.AddUint64(&m.paymentsPosted, 1)
	case "Cancel":
		atomic.AddUint64(&m.cancelsPosted, 1)
	case "Note":
		atomic.AddUint64(&m.notesPosted, 1)
	}
}

func (m *InMemoryRecorder) IncMemoRejected() {
	atomic.AddUint64(&m.memosRejected, 1)
}

func (m *InMemoryRecorder) IncCacheInvalidation() {
	atomic.AddUint64(&m.cacheInvalidations, 1)
}

func (m *InMemoryRecorder) IncRateLimited() {
	atomic.AddUint64(&m.rateLimited, 1)
}
