package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testValue struct {
	name    string
	value   float64
	allowed Origin
}

func (v testValue) Name() string          { return v.name }
func (v testValue) Float64() float64      { return v.value }
func (v testValue) Allowed(o Origin) bool { return o == v.allowed }

func TestOriginValidate(t *testing.T) {
	assert.NoError(t, OriginInternal.Validate())
	assert.NoError(t, OriginExternal.Validate())
	assert.Error(t, Origin("operator").Validate())
}

func TestNewMetrics_RejectsUnknownOrigin(t *testing.T) {
	_, err := NewMetrics(Origin("bogus"))
	assert.Error(t, err)
}

func TestRecord_FiltersByOrigin(t *testing.T) {
	sink, err := NewMetrics(OriginExternal)
	require.NoError(t, err)

	internal := testValue{name: "internal_only", value: 1, allowed: OriginInternal}
	require.NoError(t, sink.Record(context.Background(), internal))

	// the disallowed value must not even instantiate an instrument
	assert.Empty(t, sink.(*otelMetrics).gauges)
}

func TestRecord_AllowedValue(t *testing.T) {
	sink, err := NewMetrics(OriginInternal)
	require.NoError(t, err)

	v := testValue{name: "crawl_rate", value: 0.25, allowed: OriginInternal}
	require.NoError(t, sink.Record(context.Background(), v))
	assert.Contains(t, sink.(*otelMetrics).gauges, "crawl_rate")

	// repeated recording reuses the gauge
	require.NoError(t, sink.Record(context.Background(), v))
	assert.Len(t, sink.(*otelMetrics).gauges, 1)
}

func TestNoopMetrics(t *testing.T) {
	assert.NoError(t, NoopMetrics().Record(context.Background(), testValue{}))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.NoError(t, cfg.Validate())

	cfg.Endpoint = ""
	assert.Error(t, cfg.Validate())

	cfg.Endpoint = "collector:4318"
	cfg.Origin = "bogus"
	assert.Error(t, cfg.Validate())
}
