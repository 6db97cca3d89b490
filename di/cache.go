package di

import (
	stderrors "errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/kbukum/dikit/errors"
)

// errRetired is returned by the producer of a replaced registration. Resolve
// retries the lookup when it sees it; it never reaches callers.
var errRetired = stderrors.New("di: registration replaced")

// cell holds the singleton of one registration. mu serializes the producer;
// done is set after value is written so the fast path can read without
// locking.
type cell struct {
	mu      sync.Mutex
	done    atomic.Bool
	retired bool // guarded by mu
	value   any
}

// retire marks an unrealized cell as superseded. It fails when the value
// exists or a build currently holds mu.
func (c *cell) retire() bool {
	if c.done.Load() || !c.mu.TryLock() {
		return false
	}
	defer c.mu.Unlock()
	if c.done.Load() {
		return false
	}
	c.retired = true
	return true
}

func (c *cell) realized() bool { return c != nil && c.done.Load() }

// singletonCache tracks the singletons a container has realized and owns.
type singletonCache struct {
	name   string
	mu     sync.Mutex
	order  []any // owned realized values, oldest first
	closed bool
}

func newSingletonCache(name string) *singletonCache {
	return &singletonCache{name: name}
}

// memoize wraps build so it runs at most once successfully for c. A failed
// build leaves the cell empty and the next call tries again. owned values
// are released by Close.
func (s *singletonCache) memoize(c *cell, owned bool, build Producer) Producer {
	return func(r Resolver) (any, error) {
		if c.done.Load() {
			return c.value, nil
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		if c.done.Load() {
			return c.value, nil
		}
		if c.retired {
			return nil, errRetired
		}

		v, err := build(r)
		if err != nil {
			return nil, err
		}
		if err := s.keep(v, owned); err != nil {
			return nil, err
		}
		c.value = v
		c.done.Store(true)
		return v, nil
	}
}

// keep records v for Close. Once the cache is drained it closes an owned v
// instead and fails with CONTAINER_CLOSED.
func (s *singletonCache) keep(v any, owned bool) error {
	s.mu.Lock()
	if !s.closed {
		if owned {
			s.order = append(s.order, v)
		}
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	err := errors.ContainerClosed(s.name)
	if closer, ok := v.(io.Closer); ok && owned {
		if cerr := closer.Close(); cerr != nil {
			err = err.WithCause(fmt.Errorf("closing %T: %w", v, cerr))
		}
	}
	return err
}

// drain returns the owned values newest first and closes the cache.
func (s *singletonCache) drain() []any {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	out := make([]any, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		out = append(out, s.order[i])
	}
	s.order = nil
	return out
}
