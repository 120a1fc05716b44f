package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  vendor_name TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'processing',
  placed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS order_lines (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  vendor_id TEXT NOT NULL,
  vendor_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price_at_purchase NUMERIC NOT NULL,
  created_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "x",
		Role:         enums.RoleCustomer,
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func seedSale(t *testing.T, db *gorm.DB, customerID, vendorID uuid.UUID, product string, qty int, price string, placedAt time.Time) uuid.UUID {
	t.Helper()

	order := models.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		Status:     enums.OrderStatusProcessing,
		PlacedAt:   placedAt,
	}
	require.NoError(t, db.Omit("Lines").Create(&order).Error)

	line := models.OrderLine{
		ID:                  uuid.New(),
		OrderID:             order.ID,
		ProductID:           uuid.New(),
		ProductName:         product,
		VendorID:            vendorID,
		VendorName:          "Acme Supply",
		Quantity:            qty,
		UnitPriceAtPurchase: decimal.RequireFromString(price),
	}
	require.NoError(t, db.Create(&line).Error)
	return order.ID
}

func TestLinesForVendorJoinsBuyerAndStatus(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "ada")
	vendorID := uuid.New()
	now := time.Now().UTC()

	seedSale(t, db, customerID, vendorID, "Widget", 2, "10.00", now.Add(-time.Hour))
	recent := seedSale(t, db, customerID, vendorID, "Gadget", 1, "5.50", now)
	seedSale(t, db, customerID, uuid.New(), "Foreign", 9, "99.00", now)

	lines, err := repo.LinesForVendor(ctx, vendorID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	// newest order first
	assert.Equal(t, recent, lines[0].OrderID)
	assert.Equal(t, "Gadget", lines[0].ProductName)
	assert.Equal(t, "ada", lines[0].CustomerName)
	assert.Equal(t, enums.OrderStatusProcessing, lines[0].Status)
	assert.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("5.50")))
	assert.Equal(t, "Widget", lines[1].ProductName)
}

func TestOrderForVendorRequiresOwnedLine(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customerID := seedCustomer(t, db, "ada")
	vendorID := uuid.New()
	orderID := seedSale(t, db, customerID, vendorID, "Widget", 2, "10.00", time.Now().UTC())

	order, err := repo.OrderForVendor(ctx, orderID, vendorID)
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, "Widget", order.Lines[0].ProductName)

	_, err = repo.OrderForVendor(ctx, orderID, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = repo.OrderForVendor(ctx, uuid.New(), vendorID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductForVendorScopesOwnership(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendorID := uuid.New()
	product := models.Product{
		ID:         uuid.New(),
		VendorID:   vendorID,
		VendorName: "Acme Supply",
		Name:       "Widget",
		Price:      decimal.RequireFromString("10.00"),
	}
	require.NoError(t, db.Create(&product).Error)

	found, err := repo.ProductForVendor(ctx, product.ID, vendorID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = repo.ProductForVendor(ctx, product.ID, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
