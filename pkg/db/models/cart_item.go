package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one pending line in a customer's cart. Product name, vendor
// identity and unit price are denormalized at add time; the unit price is
// the snapshot the customer eventually pays, regardless of later catalog
// repricing.
//
// The (customer_id, product_id) pair is unique: re-adding a product
// increments quantity in place rather than creating a second row.
type CartItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID       `gorm:"column:customer_id;type:uuid;not null;uniqueIndex:idx_cart_items_customer_product"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_items_customer_product"`
	ProductName string          `gorm:"column:product_name;type:text;not null"`
	VendorID    uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	VendorName  string          `gorm:"column:vendor_name;type:text;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity    int             `gorm:"column:quantity;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
