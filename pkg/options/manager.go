package options

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

// DefaultName is the name of the default (unnamed) options instance.
const DefaultName = ""

// Factory produces a freshly configured base instance for the given name.
// It is the boundary to the generic (non-tenant) configuration pipeline and
// must return a new instance on every call: resolved instances are mutated
// per tenant and cached, so sharing one instance across calls would leak
// one tenant's values into another's.
type Factory[T any] func(ctx context.Context, name string) (*T, error)

// ValueFactory returns a Factory producing shallow copies of base.
// Suitable for option types without reference-typed fields; types holding
// maps or slices need a Factory that deep-copies them.
func ValueFactory[T any](base T) Factory[T] {
	return func(ctx context.Context, name string) (*T, error) {
		o := base
		return &o, nil
	}
}

// Manager resolves per-tenant instances of the option type T. One manager
// exists per concrete option type; managers share the process-wide Cache
// and Registry so invalidation and registration stay consistent across
// types.
type Manager[T any] struct {
	cache    *Cache
	registry *Registry
	factory  Factory[T]
	typ      string
}

// NewManager creates a resolution manager for T backed by the shared cache
// and mutator registry. Panics wrapping ErrInvalidRegistration on nil
// arguments: manager construction is a startup concern.
func NewManager[T any](cache *Cache, registry *Registry, factory Factory[T]) *Manager[T] {
	typ := typeName[T]()
	if cache == nil || registry == nil {
		panic(fmt.Errorf("%w: nil cache or registry for %s manager", ErrInvalidRegistration, typ))
	}
	if factory == nil {
		panic(fmt.Errorf("%w: nil factory for %s manager", ErrInvalidRegistration, typ))
	}
	return &Manager[T]{
		cache:    cache,
		registry: registry,
		factory:  factory,
		typ:      typ,
	}
}

// Resolve returns the options instance of type T for the given name,
// customized for the tenant carried by ctx. The first resolution per
// (type, name, tenant) runs the base factory and the matching mutators in
// registration order, then caches the result; subsequent resolutions return
// the cached instance.
//
// Returns ErrNoTenantContext when ctx carries no tenant,
// ErrBaseConfiguration when the base factory fails, and ErrMutationFailed
// when a mutator fails. Failed resolutions leave no cache entry.
func (m *Manager[T]) Resolve(ctx context.Context, name string) (*T, error) {
	tn, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("%w: resolving %s %q", ErrNoTenantContext, m.typ, name)
	}

	key := m.key(name, tn)
	v, err := m.cache.GetOrCreate(key, func() (any, error) {
		o, err := m.factory(ctx, name)
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("%w: %s %q", ErrBaseConfiguration, m.typ, name), err)
		}
		if o == nil {
			return nil, fmt.Errorf("%w: %s %q: factory returned nil", ErrBaseConfiguration, m.typ, name)
		}

		for _, mutate := range mutatorsFor[T](m.registry, name) {
			if err := mutate(o, tn); err != nil {
				return nil, errors.Join(
					fmt.Errorf("%w: %s %q tenant %s", ErrMutationFailed, m.typ, name, key.TenantID), err)
			}
		}
		return o, nil
	})
	if err != nil {
		return nil, err
	}

	o, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrTypeMismatch, m.typ, name)
	}
	return o, nil
}

// ResolveDefault resolves the default (unnamed) instance of T for the
// tenant carried by ctx.
func (m *Manager[T]) ResolveDefault(ctx context.Context) (*T, error) {
	return m.Resolve(ctx, DefaultName)
}

// Invalidate drops the cached instance of (T, name) for the tenant carried
// by ctx. The next Resolve re-runs the full factory path.
func (m *Manager[T]) Invalidate(ctx context.Context, name string) error {
	tn, ok := tenant.FromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: invalidating %s %q", ErrNoTenantContext, m.typ, name)
	}
	m.cache.Invalidate(m.key(name, tn))
	return nil
}

// InvalidateAll drops every cached instance of T across all tenants and
// names, e.g. after a change to the base configuration source.
func (m *Manager[T]) InvalidateAll() {
	m.cache.InvalidateType(m.typ)
}

func (m *Manager[T]) key(name string, tn *tenant.Tenant) Key {
	return Key{Type: m.typ, Name: name, TenantID: tn.ID.String()}
}
