package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

const maxNameLength = 256

// Service exposes catalog operations for both the public listing and the
// vendor management surface.
type Service interface {
	ListProducts(ctx context.Context) ([]ProductDTO, error)
	ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error)
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID, vendorID uuid.UUID) error
}

// CreateProductInput captures the payload for a new listing.
type CreateProductInput struct {
	VendorID    uuid.UUID
	VendorName  string
	Name        string
	Description string
	Price       decimal.Decimal
}

// UpdateProductInput carries the mutable fields; nil means "leave as is".
type UpdateProductInput struct {
	ProductID   uuid.UUID
	VendorID    uuid.UUID
	Name        *string
	Description *string
	Price       *decimal.Decimal
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return toDTOs(products), nil
}

func (s *service) ListVendorProducts(ctx context.Context, vendorID uuid.UUID) ([]ProductDTO, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	products, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendor products")
	}
	return toDTOs(products), nil
}

// GetProduct is the read path used by cart adds; callers translate
// gorm.ErrRecordNotFound themselves when a different code applies.
func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor id is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len(name) > maxNameLength {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}

	product := &models.Product{
		VendorID:    input.VendorID,
		VendorName:  strings.TrimSpace(input.VendorName),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	dto := FromModel(created)
	return &dto, nil
}

// UpdateProduct applies the mutation with ownership folded into the WHERE
// predicate; zero rows means absent or not owned, and both surface as
// NOT_FOUND so foreign vendors cannot probe for product existence.
func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*ProductDTO, error) {
	if input.ProductID == uuid.Nil || input.VendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id and vendor id are required")
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || len(name) > maxNameLength {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
		}
		updates["name"] = name
	}
	if input.Description != nil {
		updates["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
		}
		updates["price"] = *input.Price
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	rows, err := s.repo.UpdateOwned(ctx, input.ProductID, input.VendorID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	product, err := s.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
	}
	dto := FromModel(product)
	return &dto, nil
}

func (s *service) DeleteProduct(ctx context.Context, productID, vendorID uuid.UUID) error {
	if productID == uuid.Nil || vendorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id and vendor id are required")
	}
	rows, err := s.repo.DeleteOwned(ctx, productID, vendorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
