package options

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

// StoreFactory constructs a tenant store at build time. The context is the
// one passed to Build, so construction can dial external backends.
type StoreFactory func(ctx context.Context) (tenant.Store, error)

// ResolverFactory constructs a tenant resolution strategy at build time.
type ResolverFactory func(ctx context.Context) (tenant.Resolver, error)

// Builder assembles the per-tenant options runtime during application
// startup. All registrations happen on the builder; Build seals the mutator
// registry and returns the read-only runtime used for the process lifetime.
//
// Store and resolver registrations are pass-through: the options core never
// interprets what they do.
type Builder struct {
	registry        *Registry
	cache           *Cache
	store           tenant.Store
	storeFactory    StoreFactory
	resolver        tenant.Resolver
	resolverFactory ResolverFactory
	logger          *slog.Logger
}

// New creates a builder with a fresh cache and mutator registry.
func New() *Builder {
	return &Builder{
		registry: NewRegistry(),
		cache:    NewCache(),
	}
}

// WithCache replaces the cache instance, e.g. to share one cache between
// two builders in tests. Panics wrapping ErrInvalidRegistration on nil.
func (b *Builder) WithCache(c *Cache) *Builder {
	if c == nil {
		panic(fmt.Errorf("%w: nil cache", ErrInvalidRegistration))
	}
	b.cache = c
	return b
}

// WithStore registers the tenant store implementation.
// Panics wrapping ErrInvalidRegistration on nil.
func (b *Builder) WithStore(s tenant.Store) *Builder {
	if s == nil {
		panic(fmt.Errorf("%w: nil tenant store", ErrInvalidRegistration))
	}
	b.store = s
	b.storeFactory = nil
	return b
}

// WithStoreFactory registers a factory constructing the tenant store at
// Build time. Panics wrapping ErrInvalidRegistration on nil.
func (b *Builder) WithStoreFactory(fn StoreFactory) *Builder {
	if fn == nil {
		panic(fmt.Errorf("%w: nil tenant store factory", ErrInvalidRegistration))
	}
	b.storeFactory = fn
	b.store = nil
	return b
}

// WithResolver registers the tenant resolution strategy.
// Panics wrapping ErrInvalidRegistration on nil.
func (b *Builder) WithResolver(r tenant.Resolver) *Builder {
	if r == nil {
		panic(fmt.Errorf("%w: nil tenant resolver", ErrInvalidRegistration))
	}
	b.resolver = r
	b.resolverFactory = nil
	return b
}

// WithResolverFactory registers a factory constructing the tenant resolver
// at Build time. Panics wrapping ErrInvalidRegistration on nil.
func (b *Builder) WithResolverFactory(fn ResolverFactory) *Builder {
	if fn == nil {
		panic(fmt.Errorf("%w: nil tenant resolver factory", ErrInvalidRegistration))
	}
	b.resolverFactory = fn
	b.resolver = nil
	return b
}

// WithLogger sets the logger passed to the runtime middleware.
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// PerTenant registers a mutator for instances of T configured under name.
// Returns the builder for chaining. Go methods cannot introduce type
// parameters, hence the package-level function.
func PerTenant[T any](b *Builder, name string, fn Mutator[T]) *Builder {
	Register(b.registry, name, fn)
	return b
}

// PerTenantAny registers a mutator for instances of T under every name.
// Returns the builder for chaining.
func PerTenantAny[T any](b *Builder, fn Mutator[T]) *Builder {
	RegisterAny(b.registry, fn)
	return b
}

// Build runs the registered factories, seals the mutator registry, and
// returns the runtime. After Build, mutator registration panics.
func (b *Builder) Build(ctx context.Context) (*Runtime, error) {
	store := b.store
	if b.storeFactory != nil {
		s, err := b.storeFactory(ctx)
		if err != nil {
			return nil, fmt.Errorf("build tenant store: %w", err)
		}
		if s == nil {
			return nil, fmt.Errorf("%w: store factory returned nil", ErrInvalidRegistration)
		}
		store = s
	}

	resolver := b.resolver
	if b.resolverFactory != nil {
		r, err := b.resolverFactory(ctx)
		if err != nil {
			return nil, fmt.Errorf("build tenant resolver: %w", err)
		}
		if r == nil {
			return nil, fmt.Errorf("%w: resolver factory returned nil", ErrInvalidRegistration)
		}
		resolver = r
	}

	b.registry.seal()

	return &Runtime{
		cache:    b.cache,
		registry: b.registry,
		store:    store,
		resolver: resolver,
		logger:   b.logger,
	}, nil
}

// Runtime is the sealed per-tenant options subsystem: the shared cache, the
// read-only mutator registry, and the registered tenant collaborators.
type Runtime struct {
	cache    *Cache
	registry *Registry
	store    tenant.Store
	resolver tenant.Resolver
	logger   *slog.Logger
}

// Cache exposes the shared multiplexed instance cache.
func (rt *Runtime) Cache() *Cache { return rt.cache }

// Registry exposes the sealed mutator registry.
func (rt *Runtime) Registry() *Registry { return rt.registry }

// Store returns the registered tenant store, or nil if none was registered.
func (rt *Runtime) Store() tenant.Store { return rt.store }

// Resolver returns the registered tenant resolver, or nil if none was registered.
func (rt *Runtime) Resolver() tenant.Resolver { return rt.resolver }

// InvalidateTenant drops every cached options instance for the tenant,
// across all option types and names. Call it when tenant data changes.
func (rt *Runtime) InvalidateTenant(tenantID string) {
	rt.cache.InvalidateTenant(tenantID)
}

// Middleware returns HTTP middleware wiring the registered resolver and
// store into the request context. Panics wrapping ErrInvalidRegistration
// when either was not registered.
func (rt *Runtime) Middleware(opts ...tenant.Option) func(http.Handler) http.Handler {
	if rt.resolver == nil || rt.store == nil {
		panic(fmt.Errorf("%w: middleware requires a tenant resolver and store", ErrInvalidRegistration))
	}
	if rt.logger != nil {
		opts = append([]tenant.Option{tenant.WithLogger(rt.logger)}, opts...)
	}
	return tenant.Middleware(rt.resolver, rt.store, opts...)
}

// Manage creates a resolution manager for T backed by the runtime's cache
// and registry. Go methods cannot introduce type parameters, hence the
// package-level function.
func Manage[T any](rt *Runtime, factory Factory[T]) *Manager[T] {
	return NewManager(rt.cache, rt.registry, factory)
}
