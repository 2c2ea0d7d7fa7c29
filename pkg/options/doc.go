// Package options resolves per-tenant configuration instances inside a
// single multi-tenant process.
//
// A process-wide options subsystem normally produces one configured
// instance per option type (optionally per name), shared by every caller.
// In a multi-tenant process each tenant must receive its own instance,
// customized with tenant-specific data, without tenants observing or
// mutating each other's instances and without re-running expensive base
// configuration per request. This package multiplexes the options cache by
// tenant identity and applies application-supplied mutators between base
// configuration and consumption.
//
// # Architecture
//
// The package is built around three components:
//
//  1. Registry - per-type ordered lists of tenant mutators, registered at
//     startup and read-only afterwards
//  2. Cache - instances keyed by (option type, name, tenant), created
//     lazily and evicted only by explicit invalidation
//  3. Manager - the generic resolution entry point, one per option type,
//     all sharing the same cache and registry
//
// # Usage
//
//	type BillingOptions struct {
//		PlanName string
//		Currency string `env:"BILLING_CURRENCY" envDefault:"USD"`
//	}
//
//	b := options.New().
//		WithStore(store).
//		WithResolver(tenant.NewHeaderResolver(""))
//	options.PerTenant(b, options.DefaultName, func(o *BillingOptions, tn *tenant.Tenant) error {
//		o.PlanName = tn.PlanID
//		return nil
//	})
//	rt, err := b.Build(ctx)
//	if err != nil {
//		// handle startup error
//	}
//
//	billing := options.Manage(rt, options.EnvFactory[BillingOptions]())
//
//	// Per request, with the tenant middleware applied:
//	o, err := billing.ResolveDefault(r.Context())
//
// # Resolution order
//
// On a cache miss, Resolve runs the base factory, then every matching
// mutator in registration order; each mutator observes the previous one's
// changes. The fully mutated instance is cached; repeated registrations of
// the same mutator are cumulative and apply twice.
//
// # Concurrency
//
// The cache is safe for arbitrarily many concurrent callers. Concurrent
// misses for the same key collapse into one factory run and all callers
// receive the same fully mutated instance. Resolutions for different
// tenants are independent. A failed resolution leaves no cache entry, so
// the next caller retries the full factory path.
//
// # Error Handling
//
// All errors surface to the Resolve caller; nothing is swallowed or logged
// inside the package:
//
//   - ErrNoTenantContext: no tenant in the context
//   - ErrBaseConfiguration: base factory failed, wrapped with type and name
//   - ErrMutationFailed: a mutator failed, chain aborted
//   - ErrInvalidRegistration: startup misconfiguration, raised via panic at
//     the registration call
package options
