package colmem

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/hupe1980/colmem/memory"
)

// MetricsCollector defines an interface for collecting construction metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    builds    *prometheus.CounterVec
//	    buildTime prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordBuild(kind string, length, bytes int, d time.Duration, err error) {
//	    p.builds.WithLabelValues(kind).Inc()
//	    p.buildTime.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordBuild is called after each construction.
	// kind names the structure, length and bytes describe the result (0 on
	// failure), err is nil if successful.
	RecordBuild(kind string, length, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, int, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildTotalNanos atomic.Int64
	ElementsBuilt   atomic.Int64
	BytesBuilt      atomic.Int64

	mu     sync.Mutex
	byKind map[string]int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(kind string, length, bytes int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.ElementsBuilt.Add(int64(length))
	b.BytesBuilt.Add(int64(bytes))

	b.mu.Lock()
	if b.byKind == nil {
		b.byKind = make(map[string]int64)
	}
	b.byKind[kind]++
	b.mu.Unlock()
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	b.mu.Lock()
	byKind := make(map[string]int64, len(b.byKind))
	for k, v := range b.byKind {
		byKind[k] = v
	}
	b.mu.Unlock()

	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildAvgNanos: b.getAvgBuildNanos(),
		ElementsBuilt: b.ElementsBuilt.Load(),
		BytesBuilt:    b.BytesBuilt.Load(),
		BuildsByKind:  byKind,
	}
}

func (b *BasicMetricsCollector) getAvgBuildNanos() int64 {
	count := b.BuildCount.Load()
	if count == 0 {
		return 0
	}
	return b.BuildTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildAvgNanos int64
	ElementsBuilt int64
	BytesBuilt    int64
	// BuildsByKind counts successful builds per kind.
	BuildsByKind map[string]int64
}

type metricsObserver struct {
	mc MetricsCollector
}

func (o metricsObserver) ObserveBuild(ev memory.BuildEvent) {
	o.mc.RecordBuild(ev.Kind, ev.Len, ev.Bytes, ev.Duration, ev.Err)
}

// ObserveMetrics adapts mc into a memory.Observer. Combine it with a Logger
// through memory.Observers.
func ObserveMetrics(mc MetricsCollector) memory.Observer {
	if mc == nil {
		mc = NoopMetricsCollector{}
	}
	return metricsObserver{mc: mc}
}
