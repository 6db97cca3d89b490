package di

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/dikit/logger"
	"github.com/kbukum/dikit/observability"
)

// realize runs the first successful construction of a singleton inside a
// di.construct span.
func (c *Container) realize(r Resolver, e *entry, build Producer) (any, error) {
	ctx, span := c.tracer.Start(context.Background(), observability.SpanConstruct,
		trace.WithAttributes(
			attribute.String(observability.AttrType, e.name),
			attribute.String(observability.AttrLifetime, e.lifetime.String()),
			attribute.String(observability.AttrShape, e.shape.String()),
			attribute.String(observability.AttrContainer, c.name),
			attribute.String(observability.AttrContainerID, c.id),
		),
	)
	defer span.End()

	start := time.Now()
	v, err := build(r)
	elapsed := time.Since(start)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	c.metrics.RecordRealized(ctx, c.name, e.name)
	c.log.Debug("singleton realized", logger.MergeWithDuration(logger.Fields(
		logger.FieldType, e.name,
		logger.FieldShape, e.shape.String(),
	), elapsed))
	return v, nil
}

// The helpers below rely on *observability.Metrics being nil-safe.

func (c *Container) recordConstruction(typeName, lifetime string, d time.Duration, err error) {
	c.metrics.RecordConstruction(context.Background(), c.name, typeName, lifetime, d, err)
}

func (c *Container) recordResolution(typeName, lifetime, outcome string) {
	c.metrics.RecordResolution(context.Background(), c.name, typeName, lifetime, outcome)
}

func (c *Container) recordDuplicate(typeName string) {
	c.metrics.RecordDuplicate(context.Background(), c.name, typeName, c.policy.String())
}
