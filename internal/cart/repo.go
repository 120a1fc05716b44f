package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/internal/repo"
	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
)

// Repository manages persistence for cart rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	// IncrementQuantity bumps the row for (customer, product) in a single
	// UPDATE and reports how many rows it touched. Zero rows means the
	// product is not in the cart yet.
	IncrementQuantity(ctx context.Context, customerID, productID uuid.UUID, delta int) (int64, error)
	Insert(ctx context.Context, item *models.CartItem) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SumQuantity(ctx context.Context, customerID uuid.UUID) (int, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

func (r *repository) IncrementQuantity(ctx context.Context, customerID, productID uuid.UUID, delta int) (int64, error) {
	result := r.DB(ctx).
		Model(&models.CartItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	return result.RowsAffected, result.Error
}

func (r *repository) Insert(ctx context.Context, item *models.CartItem) error {
	return r.DB(ctx).Create(item).Error
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.DB(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB(ctx).
		Where("id = ?", id).
		Delete(&models.CartItem{}).Error
}

func (r *repository) SumQuantity(ctx context.Context, customerID uuid.UUID) (int, error) {
	var total int
	err := r.DB(ctx).
		Model(&models.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("customer_id = ?", customerID).
		Scan(&total).Error
	return total, err
}
