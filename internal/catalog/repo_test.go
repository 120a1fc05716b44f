package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  vendor_name TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(products).Error)
	return db
}

func newProduct(t *testing.T, db *gorm.DB, vendorID uuid.UUID, name, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:         uuid.New(),
		VendorID:   vendorID,
		VendorName: "Acme Supply",
		Name:       name,
		Price:      decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestRepositoryListByVendorScopes(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorA := uuid.New()
	vendorB := uuid.New()
	newProduct(t, db, vendorA, "Widget", "10.00")
	newProduct(t, db, vendorA, "Gadget", "20.00")
	newProduct(t, db, vendorB, "Sprocket", "30.00")

	owned, err := repo.ListByVendor(ctx, vendorA)
	require.NoError(t, err)
	assert.Len(t, owned, 2)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryUpdateOwnedEnforcesOwnership(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	intruder := uuid.New()
	product := newProduct(t, db, owner, "Widget", "10.00")

	rows, err := repo.UpdateOwned(ctx, product.ID, intruder, map[string]any{"price": decimal.RequireFromString("1.00")})
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.UpdateOwned(ctx, product.ID, owner, map[string]any{"price": decimal.RequireFromString("12.50")})
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	reloaded, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Price.Equal(decimal.RequireFromString("12.50")))
}

func TestRepositoryDeleteOwnedEnforcesOwnership(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	product := newProduct(t, db, owner, "Widget", "10.00")

	rows, err := repo.DeleteOwned(ctx, product.ID, uuid.New())
	require.NoError(t, err)
	assert.Zero(t, rows)

	rows, err = repo.DeleteOwned(ctx, product.ID, owner)
	require.NoError(t, err)
	assert.EqualValues(t, 1, rows)

	_, err = repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
