package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/dikit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider with an OTLP/HTTP
// exporter. The returned provider should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := NewResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns the container meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Resolution outcomes.
const (
	OutcomeResolved = "resolved"
	OutcomeAbsent   = "absent"
	OutcomeFailed   = "failed"
)

// Metrics holds the container's OpenTelemetry instruments. A nil *Metrics
// records nothing.
type Metrics struct {
	resolutions          metric.Int64Counter
	realized             metric.Int64Counter
	constructionDuration metric.Float64Histogram
	duplicates           metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	resolutions, err := meter.Int64Counter("di.resolutions",
		metric.WithDescription("Service resolutions by type, lifetime and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.resolutions counter: %w", err)
	}

	realized, err := meter.Int64Counter("di.singletons.realized",
		metric.WithDescription("Singletons realized on first resolution"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.singletons.realized counter: %w", err)
	}

	constructionDuration, err := meter.Float64Histogram("di.construction.duration",
		metric.WithDescription("Duration of producer invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.construction.duration histogram: %w", err)
	}

	duplicates, err := meter.Int64Counter("di.registrations.duplicate",
		metric.WithDescription("Duplicate registrations by type and policy"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating di.registrations.duplicate counter: %w", err)
	}

	return &Metrics{
		resolutions:          resolutions,
		realized:             realized,
		constructionDuration: constructionDuration,
		duplicates:           duplicates,
	}, nil
}

// RecordResolution counts one resolution call.
func (m *Metrics) RecordResolution(ctx context.Context, container, typeName, lifetime, outcome string) {
	if m == nil {
		return
	}
	m.resolutions.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrContainer, container),
		attribute.String(AttrType, typeName),
		attribute.String(AttrLifetime, lifetime),
		attribute.String(AttrOutcome, outcome),
	))
}

// RecordConstruction records one producer invocation.
func (m *Metrics) RecordConstruction(ctx context.Context, container, typeName, lifetime string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeResolved
	if err != nil {
		outcome = OutcomeFailed
	}
	m.constructionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrContainer, container),
		attribute.String(AttrType, typeName),
		attribute.String(AttrLifetime, lifetime),
		attribute.String(AttrOutcome, outcome),
	))
}

// RecordRealized counts a singleton transitioning to initialized.
func (m *Metrics) RecordRealized(ctx context.Context, container, typeName string) {
	if m == nil {
		return
	}
	m.realized.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrContainer, container),
		attribute.String(AttrType, typeName),
	))
}

// RecordDuplicate counts a duplicate registration and the policy applied.
func (m *Metrics) RecordDuplicate(ctx context.Context, container, typeName, policy string) {
	if m == nil {
		return
	}
	m.duplicates.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrContainer, container),
		attribute.String(AttrType, typeName),
		attribute.String(AttrPolicy, policy),
	))
}
