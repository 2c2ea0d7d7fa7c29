package options

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

// Mutator customizes a base-configured options instance in place using the
// current tenant's data. Mutators run after generic configuration and before
// the instance is cached, so every consumer of the instance observes the
// tenant-specific values.
type Mutator[T any] func(o *T, tn *tenant.Tenant) error

// mutatorEntry is a type-erased registration. The apply field holds a
// Mutator[T] and is cast back at the resolution boundary.
type mutatorEntry struct {
	name    string
	anyName bool
	apply   any
}

// Registry holds per-type ordered lists of tenant mutators. It is mutated
// only during the startup phase and becomes read-only once sealed, so
// resolution-time reads take no lock.
type Registry struct {
	mu      sync.Mutex
	sealed  atomic.Bool
	entries map[string][]mutatorEntry
}

// NewRegistry creates an empty mutator registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string][]mutatorEntry)}
}

// typeName returns the registry/cache identifier for the option type T.
func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Register appends a mutator for instances of T configured under the given
// name. Registrations are cumulative: registering the same mutator twice
// applies it twice, in registration order.
//
// Panics wrapping ErrInvalidRegistration on a nil mutator or a sealed
// registry. Registration is a startup concern and misconfiguration should
// prevent startup rather than surface at resolution time.
func Register[T any](r *Registry, name string, fn Mutator[T]) {
	r.register(typeName[T](), mutatorEntry{name: name, apply: fn}, fn == nil)
}

// RegisterAny appends a mutator for instances of T under every name.
// Panics wrapping ErrInvalidRegistration on a nil mutator or a sealed registry.
func RegisterAny[T any](r *Registry, fn Mutator[T]) {
	r.register(typeName[T](), mutatorEntry{anyName: true, apply: fn}, fn == nil)
}

func (r *Registry) register(key string, entry mutatorEntry, nilFn bool) {
	if nilFn {
		panic(fmt.Errorf("%w: nil mutator for %s", ErrInvalidRegistration, key))
	}
	if r.sealed.Load() {
		panic(fmt.Errorf("%w: registry sealed, register mutators during startup only", ErrInvalidRegistration))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = append(r.entries[key], entry)
}

// seal freezes the registry. Subsequent Register calls panic.
func (r *Registry) seal() {
	r.sealed.Store(true)
}

// mutatorsFor returns the mutators registered for (T, name) in registration
// order. Entries registered for any name match every name. Zero matches is
// not an error: it denotes no tenant customization for this option.
func mutatorsFor[T any](r *Registry, name string) []Mutator[T] {
	key := typeName[T]()

	if !r.sealed.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}

	entries := r.entries[key]
	if len(entries) == 0 {
		return nil
	}

	matched := make([]Mutator[T], 0, len(entries))
	for _, e := range entries {
		if e.anyName || e.name == name {
			matched = append(matched, e.apply.(Mutator[T]))
		}
	}
	return matched
}
