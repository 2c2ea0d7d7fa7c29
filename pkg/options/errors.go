package options

import "errors"

var (
	// ErrInvalidRegistration is returned (via panic at startup) when a nil
	// mutator, factory, store, or resolver is registered, or when
	// registration is attempted after the registry has been sealed.
	ErrInvalidRegistration = errors.New("invalid options registration")

	// ErrNoTenantContext is returned when Resolve is called without an
	// active tenant in the context. The non-multiplexed base instance is
	// never substituted silently.
	ErrNoTenantContext = errors.New("no tenant in context for options resolution")

	// ErrBaseConfiguration is returned when the base options factory fails.
	ErrBaseConfiguration = errors.New("base options configuration failed")

	// ErrMutationFailed is returned when a per-tenant mutator fails. The
	// remaining mutator chain is aborted and no cache entry is stored.
	ErrMutationFailed = errors.New("per-tenant options mutation failed")

	// ErrTypeMismatch is returned when a cached value cannot be cast back
	// to the manager's option type. This indicates two option types sharing
	// one reflect-derived name, which should never happen in practice.
	ErrTypeMismatch = errors.New("cached options instance has unexpected type")
)
