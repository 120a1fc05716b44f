package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLine is the per-product snapshot inside an order. UnitPriceAtPurchase
// is copied from the cart row, not re-read from the catalog, so the customer
// pays the price they saw when they added the item.
type OrderLine struct {
	ID                  uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID           uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	ProductName         string          `gorm:"column:product_name;type:text;not null"`
	VendorID            uuid.UUID       `gorm:"column:vendor_id;type:uuid;not null"`
	VendorName          string          `gorm:"column:vendor_name;type:text;not null"`
	Quantity            int             `gorm:"column:quantity;not null"`
	UnitPriceAtPurchase decimal.Decimal `gorm:"column:unit_price_at_purchase;type:numeric(12,2);not null"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
}
