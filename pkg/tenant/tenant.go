package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant represents a tenant record with the information needed for
// request-scoped operations and per-tenant options customization.
type Tenant struct {
	ID        uuid.UUID         `json:"id"`
	Subdomain string            `json:"subdomain"`
	Name      string            `json:"name"`
	PlanID    string            `json:"plan_id"`
	Active    bool              `json:"active"`
	Meta      map[string]string `json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// Store loads tenant records from a data source.
// Implementations should handle various identifier formats
// (UUID, subdomain, etc.) based on application needs.
type Store interface {
	// GetByIdentifier retrieves a tenant using any unique identifier.
	// The identifier could be a UUID, subdomain, or any other unique field.
	// Returns ErrTenantNotFound if no tenant matches the identifier.
	GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error)
}
