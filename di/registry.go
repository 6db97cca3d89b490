package di

import (
	"sort"
	"sync"

	"github.com/kbukum/dikit/errors"
)

// DuplicatePolicy decides what happens when an identity is registered twice.
type DuplicatePolicy int

const (
	// DuplicateReject fails the second registration with ALREADY_REGISTERED.
	DuplicateReject DuplicatePolicy = iota
	// DuplicateReplace lets the last registration win unless the existing
	// singleton has already been realized.
	DuplicateReplace
	// DuplicateKeep keeps the first registration and logs a warning.
	DuplicateKeep
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateReject:
		return "reject"
	case DuplicateReplace:
		return "replace"
	case DuplicateKeep:
		return "keep"
	default:
		return "unknown"
	}
}

// ParseDuplicatePolicy parses "reject", "replace" or "keep". The empty
// string parses as DuplicateReject.
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch s {
	case "", "reject":
		return DuplicateReject, nil
	case "replace":
		return DuplicateReplace, nil
	case "keep":
		return DuplicateKeep, nil
	default:
		return 0, invalidArgument("duplicate_policy", "unknown duplicate policy "+s)
	}
}

// entry is one registration.
type entry struct {
	id       Identity
	name     string
	lifetime Lifetime
	shape    Shape
	producer Producer
	cell     *cell // singletons only
}

type addResult int

const (
	added addResult = iota
	replaced
	kept
	rejected
)

type registry struct {
	mu      sync.RWMutex
	entries map[Identity]*entry
}

func newRegistry() *registry {
	return &registry{entries: make(map[Identity]*entry)}
}

// add inserts e according to policy. Replacing a singleton retires its cell
// under the registry lock, so a realized or in-flight singleton is never
// replaced.
func (r *registry) add(e *entry, policy DuplicatePolicy) (addResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev, exists := r.entries[e.id]
	if !exists {
		r.entries[e.id] = e
		return added, nil
	}

	switch policy {
	case DuplicateReplace:
		if prev.cell != nil && !prev.cell.retire() {
			return rejected, errors.AlreadyResolved(e.name)
		}
		r.entries[e.id] = e
		return replaced, nil
	case DuplicateKeep:
		return kept, nil
	default:
		return rejected, errors.AlreadyRegistered(e.name)
	}
}

// lookup returns the entry stored for id. Keys are reflect.Type values, so a
// mismatch means the map was populated incorrectly.
func (r *registry) lookup(id Identity) (*entry, bool, error) {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.id != id {
		return nil, false, errors.IdentityCollision(id.String(), e.id.String())
	}
	return e, true, nil
}

func (r *registry) contains(id Identity) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[id]
	return ok
}

// snapshot returns the entries sorted by type name.
func (r *registry) snapshot() []*entry {
	r.mu.RLock()
	out := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
