// Package telemetry defines the metric recording boundary of the crawler and
// an OpenTelemetry-backed implementation of it.
//
// Every metric value declares which audience may receive it. A sink is
// created for one audience (its origin) and silently drops values not
// allowed for that audience, so operator-only metrics never reach external
// telemetry consumers.
package telemetry

import (
	"context"
	"fmt"
)

// Origin identifies the audience a metrics pipeline serves.
type Origin string

const (
	// OriginInternal is the operator's own pipeline.
	OriginInternal Origin = "internal"
	// OriginExternal is a third-party telemetry consumer.
	OriginExternal Origin = "external"
)

func (o Origin) Validate() error {
	switch o {
	case OriginInternal, OriginExternal:
		return nil
	default:
		return fmt.Errorf("telemetry: unknown origin %q", o)
	}
}

// Value is a single named metric observation.
type Value interface {
	// Name is the fixed metric name the value is recorded under.
	Name() string
	// Float64 is the observation payload.
	Float64() float64
	// Allowed reports whether the value may be delivered to a pipeline
	// serving the given origin.
	Allowed(Origin) bool
}

// Metrics is the sink metric values are handed to. Recording is best-effort:
// callers log and ignore returned errors rather than propagating them.
type Metrics interface {
	Record(ctx context.Context, value Value) error
}

type noopMetrics struct{}

// NoopMetrics returns a Metrics sink that discards every value. It is used
// when telemetry is disabled.
func NoopMetrics() Metrics {
	return noopMetrics{}
}

func (noopMetrics) Record(context.Context, Value) error { return nil }
