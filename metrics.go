package flashlog

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with a monitoring system; on
// embedded targets a collector typically feeds a diagnostics page or a
// counters region rather than a scrape endpoint.
type MetricsCollector interface {
	// RecordAppend is called after each append operation.
	// duration is the total time taken, err is nil if successful.
	RecordAppend(duration time.Duration, err error)

	// RecordRead is called after each read operation.
	RecordRead(duration time.Duration, err error)

	// RecordErase is called after each eviction erase with the number of
	// entries removed. Erase counts are the wear signal for NOR flash.
	RecordErase(entries int, duration time.Duration)

	// RecordRecovery is called after the open-time recovery scan.
	// slots is the number of slot headers scanned.
	RecordRecovery(slots int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAppend(time.Duration, error)        {}
func (NoopMetricsCollector) RecordRead(time.Duration, error)          {}
func (NoopMetricsCollector) RecordErase(int, time.Duration)           {}
func (NoopMetricsCollector) RecordRecovery(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AppendCount      atomic.Int64
	AppendErrors     atomic.Int64
	AppendTotalNanos atomic.Int64
	ReadCount        atomic.Int64
	ReadErrors       atomic.Int64
	ReadTotalNanos   atomic.Int64
	EraseCount       atomic.Int64
	EvictedEntries   atomic.Int64
	RecoveryCount    atomic.Int64
	RecoveryErrors   atomic.Int64
	ScannedSlots     atomic.Int64
}

// RecordAppend implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAppend(duration time.Duration, err error) {
	b.AppendCount.Add(1)
	b.AppendTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AppendErrors.Add(1)
	}
}

// RecordRead implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRead(duration time.Duration, err error) {
	b.ReadCount.Add(1)
	b.ReadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ReadErrors.Add(1)
	}
}

// RecordErase implements MetricsCollector.
func (b *BasicMetricsCollector) RecordErase(entries int, _ time.Duration) {
	b.EraseCount.Add(1)
	b.EvictedEntries.Add(int64(entries))
}

// RecordRecovery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRecovery(slots int, _ time.Duration, err error) {
	b.RecoveryCount.Add(1)
	b.ScannedSlots.Add(int64(slots))
	if err != nil {
		b.RecoveryErrors.Add(1)
	}
}
