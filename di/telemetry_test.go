package di

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTelemetryContainer(t *testing.T) (*Container, *tracetest.SpanRecorder, *sdkmetric.ManualReader) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	c := newTestContainer(
		WithName("telemetry"),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)
	return c, sr, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func counterTotal(t *testing.T, m metricdata.Metrics, match func(attribute.Set) bool) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected %s to be an int64 sum, got %T", m.Name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		if match == nil || match(dp.Attributes) {
			total += dp.Value
		}
	}
	return total
}

func hasAttr(set attribute.Set, key, value string) bool {
	v, ok := set.Value(attribute.Key(key))
	return ok && v.AsString() == value
}

func TestTelemetry_SingletonSpan(t *testing.T) {
	c, sr, _ := newTelemetryContainer(t)
	_ = AddSingletonFunc(c, func() (*englishGreeter, error) { return &englishGreeter{}, nil })

	_ = MustGetService[*englishGreeter](c)
	_ = MustGetService[*englishGreeter](c)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one construct span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name() != "di.construct" {
		t.Errorf("expected span di.construct, got %q", span.Name())
	}

	attrs := attribute.NewSet(span.Attributes()...)
	if !hasAttr(attrs, "di.type", "*github.com/kbukum/dikit/di.englishGreeter") {
		t.Errorf("expected di.type attribute, got %v", span.Attributes())
	}
	if !hasAttr(attrs, "di.lifetime", "singleton") || !hasAttr(attrs, "di.container", "telemetry") {
		t.Errorf("expected lifetime and container attributes, got %v", span.Attributes())
	}
	if !hasAttr(attrs, "di.container.id", c.ID()) {
		t.Error("expected container id attribute")
	}
}

func TestTelemetry_FailedSingletonSpan(t *testing.T) {
	c, sr, _ := newTelemetryContainer(t)
	_ = AddSingletonFunc(c, func() (*englishGreeter, error) { return nil, fmt.Errorf("down") })

	_, _ = GetRequiredService[*englishGreeter](c)

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if spans[0].Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", spans[0].Status())
	}
}

func TestTelemetry_Metrics(t *testing.T) {
	c, sr, reader := newTelemetryContainer(t)
	_ = AddSingletonFunc(c, func() (*englishGreeter, error) { return &englishGreeter{}, nil })
	_ = AddTransient[Greeter, *englishGreeter](c)

	_ = MustGetService[*englishGreeter](c)
	_ = MustGetService[*englishGreeter](c)
	_ = MustGetService[Greeter](c)
	_, _, _ = GetService[Store](c)
	_ = AddTransient[Greeter, *englishGreeter](c) // rejected duplicate

	metrics := collect(t, reader)

	resolutions, ok := metrics["di.resolutions"]
	if !ok {
		t.Fatal("expected di.resolutions metric")
	}
	if got := counterTotal(t, resolutions, nil); got != 4 {
		t.Errorf("expected 4 resolutions, got %d", got)
	}
	absent := counterTotal(t, resolutions, func(s attribute.Set) bool { return hasAttr(s, "di.outcome", "absent") })
	if absent != 1 {
		t.Errorf("expected 1 absent resolution, got %d", absent)
	}

	if got := counterTotal(t, metrics["di.singletons.realized"], nil); got != 1 {
		t.Errorf("expected 1 realized singleton, got %d", got)
	}

	dup := counterTotal(t, metrics["di.registrations.duplicate"], func(s attribute.Set) bool {
		return hasAttr(s, "di.policy", "reject")
	})
	if dup != 1 {
		t.Errorf("expected 1 rejected duplicate, got %d", dup)
	}

	hist, ok := metrics["di.construction.duration"].Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("expected construction histogram, got %T", metrics["di.construction.duration"].Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 2 {
		t.Errorf("expected 2 producer invocations, got %d", count)
	}

	// Transients are not traced.
	if len(sr.Ended()) != 1 {
		t.Errorf("expected only the singleton span, got %d", len(sr.Ended()))
	}
}
