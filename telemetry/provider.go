package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdk "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.11.0"
)

const defaultExportInterval = 10 * time.Second

// Config configures metric export.
type Config struct {
	// Enabled toggles metric export. When disabled no provider is created
	// and recording is a no-op.
	Enabled bool
	// Endpoint is the OTLP HTTP collector address, host:port.
	Endpoint string
	// Insecure disables TLS towards the collector.
	Insecure bool
	// Origin is the audience this process's pipeline serves. Metric values
	// restricted to another audience are not exported.
	Origin Origin
}

func DefaultConfig() Config {
	return Config{
		Enabled:  false,
		Endpoint: "localhost:4318",
		Insecure: true,
		Origin:   OriginInternal,
	}
}

func (cfg *Config) Validate() error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Endpoint == "" {
		return fmt.Errorf("telemetry: endpoint must be set when telemetry is enabled")
	}
	return cfg.Origin.Validate()
}

// NewMeterProvider creates an OTLP-exporting meter provider for the given
// config. The caller registers it globally and shuts it down on exit.
func NewMeterProvider(ctx context.Context, cfg Config) (*sdk.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithCompression(otlpmetrichttp.GzipCompression),
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP metric exporter: %w", err)
	}

	provider := sdk.NewMeterProvider(
		sdk.WithReader(
			sdk.NewPeriodicReader(exp,
				sdk.WithTimeout(defaultExportInterval),
				sdk.WithInterval(defaultExportInterval))),
		sdk.WithResource(
			resource.NewWithAttributes(
				semconv.SchemaURL,
				semconv.ServiceNameKey.String("avail-crawler"),
			)))

	return provider, nil
}
