package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("avail-crawler")

// otelMetrics records values on OpenTelemetry gauges, creating one gauge per
// metric name on first use. Values not allowed for the sink's origin are
// dropped without error.
type otelMetrics struct {
	origin Origin

	mu     sync.Mutex
	gauges map[string]metric.Float64Gauge
}

// NewMetrics creates a Metrics sink serving the given origin, backed by the
// globally registered meter provider.
func NewMetrics(origin Origin) (Metrics, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}
	return &otelMetrics{
		origin: origin,
		gauges: make(map[string]metric.Float64Gauge),
	}, nil
}

func (m *otelMetrics) Record(ctx context.Context, value Value) error {
	if !value.Allowed(m.origin) {
		return nil
	}

	gauge, err := m.gauge(value.Name())
	if err != nil {
		return err
	}

	// record even when the crawl cycle was canceled mid-flight
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	gauge.Record(ctx, value.Float64())
	return nil
}

func (m *otelMetrics) gauge(name string) (metric.Float64Gauge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gauge, ok := m.gauges[name]; ok {
		return gauge, nil
	}
	gauge, err := meter.Float64Gauge(name)
	if err != nil {
		return nil, err
	}
	m.gauges[name] = gauge
	return gauge, nil
}
