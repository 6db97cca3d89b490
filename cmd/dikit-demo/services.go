package main

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/dikit/di"
	"github.com/kbukum/dikit/logger"
)

// Clock abstracts time for the demo services.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Store keeps greeting counts per name.
type Store interface {
	Increment(name string) int
	Close() error
}

// memoryStore is default-constructed by the container; Init pulls its clock.
type memoryStore struct {
	mu      sync.Mutex
	counts  map[string]int
	clock   Clock
	started time.Time
}

func (s *memoryStore) Init(r di.Resolver) error {
	clock, err := di.GetRequiredService[Clock](r)
	if err != nil {
		return err
	}
	s.clock = clock
	s.counts = make(map[string]int)
	s.started = clock.Now()
	return nil
}

func (s *memoryStore) Increment(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[name]++
	return s.counts[name]
}

func (s *memoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.Info("store closed", logger.Fields(
		"names", len(s.counts),
		"uptime", s.clock.Now().Sub(s.started).String(),
	))
	return nil
}

// Formatter renders a greeting line.
type Formatter interface {
	Format(salutation, name string) string
}

type titleFormatter struct{}

func (*titleFormatter) Format(salutation, name string) string {
	if name == "" {
		return salutation + "!"
	}
	return fmt.Sprintf("%s, %s%s!", salutation, strings.ToUpper(name[:1]), name[1:])
}

// Envelope is a prototype copied for every greeting.
type Envelope struct {
	RequestID string
	Line      string
	Count     int
}

// RequestID is a per-resolution identifier.
type RequestID string

// Stats counts greetings across the process.
type Stats struct {
	greetings atomic.Int64
}

// Greeter produces greetings from the other services.
type Greeter struct {
	salutation string
	store      Store
	format     Formatter
	log        *logger.Logger
	stats      *Stats
	r          di.Resolver
}

func (g *Greeter) Greet(name string) (*Envelope, error) {
	env, err := di.GetRequiredService[*Envelope](g.r)
	if err != nil {
		return nil, err
	}
	id, err := di.GetRequiredService[RequestID](g.r)
	if err != nil {
		return nil, err
	}
	env.RequestID = string(id)
	env.Line = g.format.Format(g.salutation, name)
	env.Count = g.store.Increment(name)
	g.stats.greetings.Add(1)
	g.log.Debug("greeted", logger.Fields("request_id", env.RequestID, "count", env.Count))
	return env, nil
}

// register wires every demo service into c.
func register(c *di.Container, cfg GreetingConfig, log *logger.Logger) error {
	lifetime, err := di.ParseLifetime(cfg.Lifetime)
	if err != nil {
		return err
	}

	newGreeter := func(r di.Resolver) (*Greeter, error) {
		store, err := di.GetRequiredService[Store](r)
		if err != nil {
			return nil, err
		}
		format, err := di.GetRequiredService[Formatter](r)
		if err != nil {
			return nil, err
		}
		stats, err := di.GetRequiredService[*Stats](r)
		if err != nil {
			return nil, err
		}
		return &Greeter{
			salutation: cfg.Salutation,
			store:      store,
			format:     format,
			log:        log.WithComponent("greeter"),
			stats:      stats,
			r:          r,
		}, nil
	}

	steps := []func() error{
		func() error { return di.AddSingletonInstance[Clock](c, systemClock{}) },
		func() error { return di.AddSingleton[Store, *memoryStore](c) },
		func() error { return di.AddTransient[Formatter, *titleFormatter](c) },
		func() error { return di.AddTransientInstance(c, &Envelope{}) },
		func() error {
			return di.AddTransientFunc(c, func() (RequestID, error) { return RequestID(uuid.NewString()), nil })
		},
		func() error { return di.AddSingletonFunc(c, func() (*Stats, error) { return &Stats{}, nil }) },
		func() error {
			if lifetime == di.Singleton {
				return di.AddSingletonProvider(c, newGreeter)
			}
			return di.AddTransientProvider(c, newGreeter)
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
