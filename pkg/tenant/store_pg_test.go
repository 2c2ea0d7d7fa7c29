package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeQuerier struct {
	row  pgx.Row
	sql  string
	args []any
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.sql = sql
	q.args = args
	return q.row
}

func TestPostgresStore(t *testing.T) {
	t.Parallel()

	t.Run("scans a tenant row", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		created := time.Now().UTC()
		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			require.Len(t, dest, 7)
			*dest[0].(*uuid.UUID) = id
			*dest[1].(*string) = "acme"
			*dest[2].(*string) = "Acme Inc"
			*dest[3].(*string) = "Gold"
			*dest[4].(*bool) = true
			*dest[5].(*[]byte) = []byte(`{"region":"eu"}`)
			*dest[6].(*time.Time) = created
			return nil
		}}}

		store := tenant.NewPostgresStore(q)
		tn, err := store.GetByIdentifier(context.Background(), "acme")
		require.NoError(t, err)

		assert.Equal(t, id, tn.ID)
		assert.Equal(t, "acme", tn.Subdomain)
		assert.Equal(t, "Acme Inc", tn.Name)
		assert.Equal(t, "Gold", tn.PlanID)
		assert.True(t, tn.Active)
		assert.Equal(t, map[string]string{"region": "eu"}, tn.Meta)
		assert.Equal(t, created, tn.CreatedAt)

		assert.Contains(t, q.sql, "FROM tenants")
		assert.Equal(t, []any{"acme"}, q.args)
	})

	t.Run("maps no rows to not found", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			return pgx.ErrNoRows
		}}}

		store := tenant.NewPostgresStore(q)
		_, err := store.GetByIdentifier(context.Background(), "ghost")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("wraps other scan errors as store unavailable", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			return context.DeadlineExceeded
		}}}

		store := tenant.NewPostgresStore(q)
		_, err := store.GetByIdentifier(context.Background(), "acme")
		assert.ErrorIs(t, err, tenant.ErrStoreUnavailable)
	})

	t.Run("custom table name", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			return pgx.ErrNoRows
		}}}

		store := tenant.NewPostgresStore(q, tenant.WithTenantsTable("orgs"))
		_, _ = store.GetByIdentifier(context.Background(), "acme")
		assert.Contains(t, q.sql, "FROM orgs")
	})

	t.Run("empty meta stays nil", func(t *testing.T) {
		t.Parallel()

		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*uuid.UUID) = uuid.New()
			*dest[1].(*string) = "acme"
			*dest[2].(*string) = "Acme Inc"
			*dest[3].(*string) = "Gold"
			*dest[4].(*bool) = true
			*dest[5].(*[]byte) = nil
			*dest[6].(*time.Time) = time.Now()
			return nil
		}}}

		store := tenant.NewPostgresStore(q)
		tn, err := store.GetByIdentifier(context.Background(), "acme")
		require.NoError(t, err)
		assert.Nil(t, tn.Meta)
	})
}
