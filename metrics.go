package docidx

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// promcollector package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordAdd is called after each add operation.
	// duration is the total time taken, err is nil if successful.
	RecordAdd(duration time.Duration, err error)

	// RecordUpdate is called after each update operation.
	RecordUpdate(duration time.Duration, err error)

	// RecordRemove is called after each single-document remove.
	RecordRemove(duration time.Duration, err error)

	// RecordFind is called after each query. clauses is the number of fields
	// in the query, matched the number of ids found.
	RecordFind(clauses, matched int, duration time.Duration, err error)

	// RecordRemoveMatched is called after each remove-by-query with the number
	// of documents removed.
	RecordRemoveMatched(removed int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(time.Duration, error)                {}
func (NoopMetricsCollector) RecordUpdate(time.Duration, error)             {}
func (NoopMetricsCollector) RecordRemove(time.Duration, error)             {}
func (NoopMetricsCollector) RecordFind(int, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordRemoveMatched(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount            atomic.Int64
	AddErrors           atomic.Int64
	AddTotalNanos       atomic.Int64
	UpdateCount         atomic.Int64
	UpdateErrors        atomic.Int64
	RemoveCount         atomic.Int64
	RemoveErrors        atomic.Int64
	FindCount           atomic.Int64
	FindErrors          atomic.Int64
	FindMatched         atomic.Int64
	FindTotalNanos      atomic.Int64
	RemoveMatchedCount  atomic.Int64
	RemoveMatchedErrors atomic.Int64
	RemoveMatchedDocs   atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(duration time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordUpdate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpdate(duration time.Duration, err error) {
	b.UpdateCount.Add(1)
	if err != nil {
		b.UpdateErrors.Add(1)
	}
}

// RecordRemove implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemove(duration time.Duration, err error) {
	b.RemoveCount.Add(1)
	if err != nil {
		b.RemoveErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(clauses, matched int, duration time.Duration, err error) {
	b.FindCount.Add(1)
	b.FindTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FindErrors.Add(1)
		return
	}
	b.FindMatched.Add(int64(matched))
}

// RecordRemoveMatched implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRemoveMatched(removed int, duration time.Duration, err error) {
	b.RemoveMatchedCount.Add(1)
	b.RemoveMatchedDocs.Add(int64(removed))
	if err != nil {
		b.RemoveMatchedErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		AddCount:            b.AddCount.Load(),
		AddErrors:           b.AddErrors.Load(),
		AddAvgNanos:         avg(b.AddTotalNanos.Load(), b.AddCount.Load()),
		UpdateCount:         b.UpdateCount.Load(),
		UpdateErrors:        b.UpdateErrors.Load(),
		RemoveCount:         b.RemoveCount.Load(),
		RemoveErrors:        b.RemoveErrors.Load(),
		FindCount:           b.FindCount.Load(),
		FindErrors:          b.FindErrors.Load(),
		FindMatched:         b.FindMatched.Load(),
		FindAvgNanos:        avg(b.FindTotalNanos.Load(), b.FindCount.Load()),
		RemoveMatchedCount:  b.RemoveMatchedCount.Load(),
		RemoveMatchedErrors: b.RemoveMatchedErrors.Load(),
		RemoveMatchedDocs:   b.RemoveMatchedDocs.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	AddCount            int64
	AddErrors           int64
	AddAvgNanos         int64
	UpdateCount         int64
	UpdateErrors        int64
	RemoveCount         int64
	RemoveErrors        int64
	FindCount           int64
	FindErrors          int64
	FindMatched         int64
	FindAvgNanos        int64
	RemoveMatchedCount  int64
	RemoveMatchedErrors int64
	RemoveMatchedDocs   int64
}
