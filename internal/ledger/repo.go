package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/internal/repo"
	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

// VendorLine is one sold line joined with its order and buyer, the unit the
// vendor ledger aggregates over.
type VendorLine struct {
	OrderID      uuid.UUID         `gorm:"column:order_id"`
	ProductID    uuid.UUID         `gorm:"column:product_id"`
	ProductName  string            `gorm:"column:product_name"`
	Quantity     int               `gorm:"column:quantity"`
	UnitPrice    decimal.Decimal   `gorm:"column:unit_price_at_purchase"`
	CustomerName string            `gorm:"column:customer_name"`
	Status       enums.OrderStatus `gorm:"column:status"`
	PlacedAt     time.Time         `gorm:"column:placed_at"`
}

// Repository exposes the vendor-scoped read model over orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// LinesForVendor returns every line the vendor has sold, newest order
	// first, joined with buyer identity and order status.
	LinesForVendor(ctx context.Context, vendorID uuid.UUID) ([]VendorLine, error)
	// OrderForVendor loads an order only when the vendor owns at least one
	// of its lines; otherwise gorm.ErrRecordNotFound.
	OrderForVendor(ctx context.Context, orderID, vendorID uuid.UUID) (*models.Order, error)
	// ProductForVendor loads a product only when the vendor owns it.
	ProductForVendor(ctx context.Context, productID, vendorID uuid.UUID) (*models.Product, error)
}

type repository struct {
	repo.Base
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

func (r *repository) LinesForVendor(ctx context.Context, vendorID uuid.UUID) ([]VendorLine, error) {
	var lines []VendorLine
	err := r.DB(ctx).
		Table("order_lines").
		Select("order_lines.order_id, order_lines.product_id, order_lines.product_name, order_lines.quantity, order_lines.unit_price_at_purchase, users.username AS customer_name, orders.status, orders.placed_at").
		Joins("JOIN orders ON orders.id = order_lines.order_id").
		Joins("JOIN users ON users.id = orders.customer_id").
		Where("order_lines.vendor_id = ?", vendorID).
		Order("orders.placed_at DESC, order_lines.created_at ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repository) OrderForVendor(ctx context.Context, orderID, vendorID uuid.UUID) (*models.Order, error) {
	var count int64
	err := r.DB(ctx).
		Model(&models.OrderLine{}).
		Where("order_id = ? AND vendor_id = ?", orderID, vendorID).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var order models.Order
	err = r.DB(ctx).
		Preload("Lines").
		First(&order, "id = ?", orderID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) ProductForVendor(ctx context.Context, productID, vendorID uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.DB(ctx).
		First(&product, "id = ? AND vendor_id = ?", productID, vendorID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}
