// Package tenant provides tenant identification, loading, and context
// propagation for multi-tenant applications.
//
// The package is built around three concepts:
//
//  1. Resolvers - extract a tenant identifier from an HTTP request using
//     various strategies (header, subdomain, path, composite)
//  2. Stores - load the full tenant record from a data source (in-memory,
//     Redis, and Postgres implementations are included)
//  3. Context - propagate the resolved tenant through context.Context for
//     the duration of one logical operation
//
// The pkg/options package consumes the tenant placed in context by this
// package to resolve per-tenant configuration instances.
//
// # Usage
//
//	resolver := tenant.NewHeaderResolver("X-Tenant-ID")
//	store := tenant.NewInMemoryStore()
//
//	mw := tenant.Middleware(resolver, store,
//		tenant.WithSkipPaths([]string{"/health"}),
//	)
//	router.Use(mw)
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//		tn, ok := tenant.FromContext(r.Context())
//		if !ok {
//			// no tenant on this request
//			return
//		}
//		_ = tn
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure scenarios:
//
//   - ErrTenantNotFound: tenant does not exist in the store
//   - ErrInactiveTenant: tenant exists but is not active
//   - ErrNoTenantInContext: required tenant is missing from context
//   - ErrInvalidIdentifier: malformed tenant identifier
//
// Custom error handlers can be configured on the middleware to map these to
// appropriate HTTP responses.
package tenant
