package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/internal/repo"
	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
)

// Repository manages persistence for products.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	// UpdateOwned applies the updates only when the product belongs to the
	// vendor; returns the number of rows touched.
	UpdateOwned(ctx context.Context, productID, vendorID uuid.UUID, updates map[string]any) (int64, error)
	// DeleteOwned removes the product only when it belongs to the vendor;
	// returns the number of rows touched.
	DeleteOwned(ctx context.Context, productID, vendorID uuid.UUID) (int64, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: r.Rebind(tx)}
}

func (r *repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB(ctx).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var products []models.Product
	if err := r.DB(ctx).
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) UpdateOwned(ctx context.Context, productID, vendorID uuid.UUID, updates map[string]any) (int64, error) {
	result := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ? AND vendor_id = ?", productID, vendorID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *repository) DeleteOwned(ctx context.Context, productID, vendorID uuid.UUID) (int64, error) {
	result := r.DB(ctx).
		Where("id = ? AND vendor_id = ?", productID, vendorID).
		Delete(&models.Product{})
	return result.RowsAffected, result.Error
}
