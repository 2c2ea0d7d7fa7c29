package tenant_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

func createTestTenant(subdomain string, active bool) *tenant.Tenant {
	return &tenant.Tenant{
		ID:        uuid.New(),
		Subdomain: subdomain,
		Name:      subdomain,
		PlanID:    "starter",
		Active:    active,
		CreatedAt: time.Now(),
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves tenant", func(t *testing.T) {
		t.Parallel()

		tn := createTestTenant("acme", true)
		ctx := tenant.WithTenant(context.Background(), tn)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, tn, got)
	})

	t.Run("returns false for empty context", func(t *testing.T) {
		t.Parallel()

		got, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("returns false for nil tenant", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithTenant(context.Background(), nil)
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("extracts tenant ID", func(t *testing.T) {
		t.Parallel()

		tn := createTestTenant("acme", true)
		ctx := tenant.WithTenant(context.Background(), tn)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, tn.ID, id)

		id, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
		assert.Equal(t, uuid.UUID{}, id)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})

		tn := createTestTenant("acme", true)
		ctx := tenant.WithTenant(context.Background(), tn)
		assert.Same(t, tn, tenant.MustFromContext(ctx))
	})

	t.Run("logger extractor emits tenant ID attribute", func(t *testing.T) {
		t.Parallel()

		extract := tenant.LoggerExtractor()

		_, ok := extract(context.Background())
		assert.False(t, ok)

		tn := createTestTenant("acme", true)
		attr, ok := extract(tenant.WithTenant(context.Background(), tn))
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, tn.ID.String(), attr.Value.String())
	})
}
