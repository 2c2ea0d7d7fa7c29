package tenant_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tenantopts/pkg/tenant"
)

func TestInMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("finds tenant by ID and by subdomain", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewInMemoryStore()
		tn := createTestTenant("acme", true)
		store.Put(tn)

		byID, err := store.GetByIdentifier(context.Background(), tn.ID.String())
		require.NoError(t, err)
		assert.Same(t, tn, byID)

		bySub, err := store.GetByIdentifier(context.Background(), "acme")
		require.NoError(t, err)
		assert.Same(t, tn, bySub)
	})

	t.Run("returns not found for unknown identifier", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewInMemoryStore()
		_, err := store.GetByIdentifier(context.Background(), "missing")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("delete removes all identifiers", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewInMemoryStore()
		tn := createTestTenant("acme", true)
		store.Put(tn)

		store.Delete("acme")

		_, err := store.GetByIdentifier(context.Background(), "acme")
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
		_, err = store.GetByIdentifier(context.Background(), tn.ID.String())
		assert.ErrorIs(t, err, tenant.ErrTenantNotFound)
	})

	t.Run("ignores nil tenant", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewInMemoryStore()
		assert.NotPanics(t, func() { store.Put(nil) })
	})

	t.Run("handles concurrent access", func(t *testing.T) {
		t.Parallel()

		store := tenant.NewInMemoryStore()
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				store.Put(createTestTenant(fmt.Sprintf("tenant%d", i), true))
			}(i)
		}
		for j := 0; j < 100; j++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.GetByIdentifier(context.Background(), "tenant1")
			}()
		}
		wg.Wait()
	})
}
