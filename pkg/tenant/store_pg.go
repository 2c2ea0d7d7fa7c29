package tenant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// DefaultTenantsTable is the table queried by PostgresStore.
const DefaultTenantsTable = "tenants"

// PgxQuerier is the subset of pgxpool.Pool used by PostgresStore.
// Accepting the interface keeps the store testable without a live database.
type PgxQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is a Store backed by a PostgreSQL table. The identifier is
// matched against both the tenant ID and the subdomain columns.
type PostgresStore struct {
	db    PgxQuerier
	table string
}

// PostgresStoreOption configures a PostgresStore.
type PostgresStoreOption func(*PostgresStore)

// WithTenantsTable overrides the default table name.
func WithTenantsTable(table string) PostgresStoreOption {
	return func(s *PostgresStore) {
		if table != "" {
			s.table = table
		}
	}
}

// NewPostgresStore creates a Postgres-backed tenant store.
func NewPostgresStore(db PgxQuerier, opts ...PostgresStoreOption) *PostgresStore {
	store := &PostgresStore{
		db:    db,
		table: DefaultTenantsTable,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// GetByIdentifier retrieves a tenant by ID or subdomain.
func (s *PostgresStore) GetByIdentifier(ctx context.Context, identifier string) (*Tenant, error) {
	query := fmt.Sprintf(
		`SELECT id, subdomain, name, plan_id, active, meta, created_at
		 FROM %s WHERE id::text = $1 OR subdomain = $1 LIMIT 1`, s.table)

	var (
		t    Tenant
		meta []byte
	)
	err := s.db.QueryRow(ctx, query, identifier).Scan(
		&t.ID, &t.Subdomain, &t.Name, &t.PlanID, &t.Active, &meta, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenantNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &t.Meta); err != nil {
			return nil, fmt.Errorf("unmarshal tenant %q meta: %w", identifier, err)
		}
	}
	return &t, nil
}
