package di

import (
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/dikit/errors"
	"github.com/kbukum/dikit/logger"
	"github.com/kbukum/dikit/observability"
)

// Resolver is the read-only side of a container. Producers receive one so
// they can resolve their own dependencies; it cannot register services.
type Resolver interface {
	// Resolve returns the instance registered under id. found is false with
	// a nil error when id is not registered.
	Resolve(id Identity) (v any, found bool, err error)
	// Contains reports whether id is registered.
	Contains(id Identity) bool
}

// RegistrationInfo describes a registration for introspection.
type RegistrationInfo struct {
	Identity Identity
	Name     string
	Lifetime Lifetime
	Shape    Shape
	Realized bool // singleton created; always false for transients
}

// Container maps service identities to producers and caches singletons.
// A Container must not be copied after first use; pass *Container.
type Container struct {
	id     string
	name   string
	policy DuplicatePolicy
	log    *logger.Logger

	meter   metric.Meter
	tracer  trace.Tracer
	metrics *observability.Metrics

	registry *registry
	cache    *singletonCache
	view     *view

	closeMu sync.Mutex
	closed  atomic.Bool
}

// Option configures a Container.
type Option func(*Container)

// WithName sets the container name used in logs, errors and telemetry.
func WithName(name string) Option {
	return func(c *Container) { c.name = name }
}

// WithLogger sets the logger. Events are logged under the "di" component.
func WithLogger(l *logger.Logger) Option {
	return func(c *Container) { c.log = l }
}

// WithDuplicatePolicy sets what happens when an identity is registered twice.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(c *Container) { c.policy = p }
}

// WithMeter records resolution and construction metrics on m.
func WithMeter(m metric.Meter) Option {
	return func(c *Container) { c.meter = m }
}

// WithTracer traces singleton realization with t.
func WithTracer(t trace.Tracer) Option {
	return func(c *Container) { c.tracer = t }
}

// New creates an empty container.
func New(opts ...Option) *Container {
	c := &Container{
		id:       uuid.NewString(),
		name:     "default",
		policy:   DuplicateReject,
		registry: newRegistry(),
	}
	c.view = &view{c: c}
	for _, opt := range opts {
		opt(c)
	}
	c.cache = newSingletonCache(c.name)

	if c.log == nil {
		c.log = logger.Get("di")
	} else {
		c.log = c.log.WithComponent("di")
	}
	c.log = c.log.WithFields(logger.Fields(
		logger.FieldContainer, c.name,
		logger.FieldContainerID, c.id,
	))

	if c.tracer == nil {
		c.tracer = noop.NewTracerProvider().Tracer(observability.InstrumentationName)
	}
	if c.meter != nil {
		m, err := observability.NewMetrics(c.meter)
		if err != nil {
			c.log.Warn("metrics disabled", logger.Fields(logger.FieldError, err.Error()))
		} else {
			c.metrics = m
		}
	}
	return c
}

// ID returns the unique instance id of the container.
func (c *Container) ID() string { return c.id }

// Name returns the container name.
func (c *Container) Name() string { return c.name }

// Resolve implements Resolver.
func (c *Container) Resolve(id Identity) (any, bool, error) {
	if c == nil {
		return nil, false, invalidArgument("resolver", "nil container resolving "+id.String())
	}
	if c.closed.Load() {
		return nil, false, errors.ContainerClosed(c.name)
	}
	if id.IsZero() {
		return nil, false, invalidArgument("identity", "zero identity")
	}

	for {
		e, ok, err := c.registry.lookup(id)
		if err != nil {
			c.recordResolution(id.String(), "", observability.OutcomeFailed)
			return nil, false, err
		}
		if !ok {
			c.recordResolution(id.String(), "", observability.OutcomeAbsent)
			return nil, false, nil
		}

		v, err := e.producer(c.view)
		if err == errRetired {
			// Replaced between lookup and realization; use the new entry.
			continue
		}
		if err != nil {
			c.recordResolution(e.name, e.lifetime.String(), observability.OutcomeFailed)
			return nil, false, err
		}
		c.recordResolution(e.name, e.lifetime.String(), observability.OutcomeResolved)
		return v, true, nil
	}
}

// Contains implements Resolver.
func (c *Container) Contains(id Identity) bool {
	return c != nil && c.registry.contains(id)
}

// Registrations lists every registration sorted by type name.
func (c *Container) Registrations() []RegistrationInfo {
	entries := c.registry.snapshot()
	infos := make([]RegistrationInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, RegistrationInfo{
			Identity: e.id,
			Name:     e.name,
			Lifetime: e.lifetime,
			Shape:    e.shape,
			Realized: e.cell.realized(),
		})
	}
	return infos
}

// Close closes realized singletons implementing io.Closer, newest first, and
// rejects every later call. Instances registered with AddSingletonInstance
// belong to the caller and are not closed. A singleton whose build finishes
// after Close is closed at once and its resolution fails with
// CONTAINER_CLOSED. Calling Close again is a no-op.
func (c *Container) Close() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	if c.closed.Load() {
		return nil
	}
	c.closed.Store(true)

	var errs []error
	closedCount := 0
	for _, v := range c.cache.drain() {
		closer, ok := v.(io.Closer)
		if !ok {
			continue
		}
		closedCount++
		if err := closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %T: %w", v, err))
		}
	}

	err := stderrors.Join(errs...)
	fields := logger.Fields("closed", closedCount)
	if err != nil {
		c.log.Error("container closed with errors", logger.MergeWithError(fields, err))
	} else {
		c.log.Debug("container closed", fields)
	}
	return err
}

// register stores a producer built by one of the Add functions. buildErr is
// the error the producer constructor returned, if any.
func (c *Container) register(id Identity, lifetime Lifetime, shape Shape, raw Producer, buildErr error) error {
	if c.closed.Load() {
		return errors.ContainerClosed(c.name)
	}
	if buildErr != nil {
		return buildErr
	}

	e := &entry{
		id:       id,
		name:     id.String(),
		lifetime: lifetime,
		shape:    shape,
	}
	e.producer = c.wrap(e, raw)

	res, err := c.registry.add(e, c.policy)
	fields := logger.Fields(
		logger.FieldType, e.name,
		logger.FieldLifetime, lifetime.String(),
		logger.FieldShape, shape.String(),
	)

	switch res {
	case added:
		c.log.Debug("service registered", fields)
	case replaced:
		c.recordDuplicate(e.name)
		fields[logger.FieldPolicy] = c.policy.String()
		c.log.Warn("service registration replaced", fields)
	case kept:
		c.recordDuplicate(e.name)
		fields[logger.FieldPolicy] = c.policy.String()
		c.log.Warn("duplicate registration ignored, keeping first", fields)
	case rejected:
		c.recordDuplicate(e.name)
	}
	return err
}

// wrap adds failure handling around raw and, for singletons, memoization.
func (c *Container) wrap(e *entry, raw Producer) Producer {
	guarded := func(r Resolver) (any, error) {
		return c.construct(r, e, raw)
	}
	if e.lifetime != Singleton {
		return guarded
	}
	e.cell = &cell{}
	return c.cache.memoize(e.cell, e.shape != ShapeInstance, func(r Resolver) (any, error) {
		return c.realize(r, e, guarded)
	})
}

// construct runs one producer call. Errors and panics come back as
// CONSTRUCTION_FAILED naming the type.
func (c *Container) construct(r Resolver, e *entry, raw Producer) (v any, err error) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			v, err = nil, errors.ConstructionFailed(e.name, fmt.Errorf("panic: %v", rec))
			c.log.Error("producer panicked", logger.MergeWithError(logger.Fields(logger.FieldType, e.name), err))
		}
		c.recordConstruction(e.name, e.lifetime.String(), time.Since(start), err)
	}()

	v, err = raw(r)
	if err == nil && v == nil {
		err = fmt.Errorf("producer returned nil")
	}
	if err != nil {
		err = errors.ConstructionFailed(e.name, err)
		c.log.Error("construction failed", logger.MergeWithError(logger.Fields(
			logger.FieldType, e.name,
			logger.FieldLifetime, e.lifetime.String(),
		), err))
		return nil, err
	}
	return v, nil
}
