package tenant

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
)

const (
	// MaxIdentifierLength prevents abuse via very long tenant identifiers
	// and keeps subdomain identifiers DNS-compatible.
	MaxIdentifierLength = 63
	MinIdentifierLength = 1
)

// identifierPattern ensures safe identifiers: alphanumeric start, allows hyphens.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*$`)

// Resolver extracts a tenant identifier from an HTTP request.
// Returns empty string if no tenant is found, error if extraction failed.
type Resolver func(r *http.Request) (string, error)

func isValidIdentifier(id string) bool {
	if len(id) < MinIdentifierLength || len(id) > MaxIdentifierLength {
		return false
	}
	return identifierPattern.MatchString(id)
}

// NewHeaderResolver extracts the tenant identifier from an HTTP header.
// Defaults to "X-Tenant-ID" if headerName is empty.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = "X-Tenant-ID"
	}

	return func(req *http.Request) (string, error) {
		value := strings.TrimSpace(req.Header.Get(headerName))
		if value == "" {
			return "", nil
		}
		if !isValidIdentifier(value) {
			return "", fmt.Errorf("%w: header %q", ErrInvalidIdentifier, value)
		}
		return value, nil
	}
}

// NewSubdomainResolver extracts the tenant identifier from the request
// subdomain, optionally stripping suffix (e.g., ".saas.com").
// Returns empty string for the base domain (no subdomain).
func NewSubdomainResolver(suffix string) Resolver {
	return func(req *http.Request) (string, error) {
		host := req.Host

		// Remove port if present
		if idx := strings.LastIndex(host, ":"); idx != -1 {
			host = host[:idx]
		}

		hadSuffix := false
		if suffix != "" && strings.HasSuffix(host, suffix) && len(host) > len(suffix) {
			host = host[:len(host)-len(suffix)]
			hadSuffix = true
		}

		// www is never a tenant.
		host = strings.TrimPrefix(host, "www.")
		if host == "" || host == "www" {
			return "", nil
		}

		parts := strings.Split(host, ".")
		subdomain := strings.TrimSpace(parts[0])
		if subdomain == "" {
			return "", nil
		}

		// Without a configured suffix, require subdomain.domain.tld so the
		// base domain is never treated as a tenant.
		if !hadSuffix && len(parts) < 3 {
			return "", nil
		}

		if !isValidIdentifier(subdomain) {
			return "", fmt.Errorf("%w: subdomain %q", ErrInvalidIdentifier, subdomain)
		}
		return subdomain, nil
	}
}

// NewPathResolver extracts the tenant identifier from a URL path segment.
// Position is 1-based (e.g., 2 for /tenants/{id}/dashboard).
func NewPathResolver(position int) Resolver {
	return func(req *http.Request) (string, error) {
		if position < 1 {
			return "", errors.New("tenant: invalid path position")
		}

		path := strings.TrimPrefix(req.URL.Path, "/")
		path = strings.TrimSuffix(path, "/")
		if path == "" {
			return "", nil
		}

		parts := strings.Split(path, "/")
		if position > len(parts) {
			return "", nil
		}

		id := parts[position-1]
		if !isValidIdentifier(id) {
			return "", fmt.Errorf("%w: path segment %q", ErrInvalidIdentifier, id)
		}
		return id, nil
	}
}

// NewCompositeResolver tries each resolver in order, returning the first
// non-empty identifier. Resolver errors are collected and returned only
// when no resolver produced an identifier.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		var errs []error

		for _, resolve := range resolvers {
			id, err := resolve(r)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if id != "" {
				return id, nil
			}
		}

		if len(errs) > 0 {
			return "", fmt.Errorf("composite resolver: %w", errors.Join(errs...))
		}
		return "", nil
	}
}
