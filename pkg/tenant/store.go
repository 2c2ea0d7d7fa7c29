package tenant

import (
	"context"
	"sync"
)

// InMemoryStore is a Store backed by process memory. It indexes tenants by
// both ID and subdomain so either can be used as the lookup identifier.
// Useful for tests and single-node deployments with a small tenant set.
type InMemoryStore struct {
	mu      sync.RWMutex
	tenants map[string]*Tenant
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{tenants: make(map[string]*Tenant)}
}

// Put adds or replaces a tenant in the store.
func (s *InMemoryStore) Put(t *Tenant) {
	if t == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tenants[t.ID.String()] = t
	if t.Subdomain != "" {
		s.tenants[t.Subdomain] = t
	}
}

// Delete removes a tenant from the store by any of its identifiers.
func (s *InMemoryStore) Delete(identifier string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tenants[identifier]
	if !ok {
		return
	}
	delete(s.tenants, t.ID.String())
	if t.Subdomain != "" {
		delete(s.tenants, t.Subdomain)
	}
}

// GetByIdentifier retrieves a tenant by ID or subdomain.
func (s *InMemoryStore) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[identifier]
	if !ok {
		return nil, ErrTenantNotFound
	}
	return t, nil
}
