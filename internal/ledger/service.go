package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/internal/catalog"
	"github.com/tradehub-io/tradehub-backend/internal/orders"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

// Service exposes the vendor's view over completed sales. Every figure is
// computed fresh from the order lines on each call; nothing is cached or
// accumulated incrementally.
type Service interface {
	Revenue(ctx context.Context, vendorID uuid.UUID) (*RevenueSummary, error)
	SalesHistory(ctx context.Context, vendorID uuid.UUID) ([]SaleRecord, error)
	FindOrder(ctx context.Context, orderID, vendorID uuid.UUID) (*orders.OrderDTO, error)
	FindProduct(ctx context.Context, productID, vendorID uuid.UUID) (*catalog.ProductDTO, error)
}

type service struct {
	repo Repository
}

// NewService wires a ledger service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	return &service{repo: repo}, nil
}

// Revenue sums quantity x snapshot price over every line the vendor has
// sold, across all order statuses.
func (s *service) Revenue(ctx context.Context, vendorID uuid.UUID) (*RevenueSummary, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	lines, err := s.repo.LinesForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor lines")
	}

	revenue := decimal.Zero
	units := 0
	seenOrders := map[uuid.UUID]struct{}{}
	for i := range lines {
		line := &lines[i]
		revenue = revenue.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		units += line.Quantity
		seenOrders[line.OrderID] = struct{}{}
	}

	return &RevenueSummary{
		Revenue:    revenue.StringFixed(2),
		LinesSold:  len(lines),
		UnitsSold:  units,
		OrderCount: len(seenOrders),
	}, nil
}

// SalesHistory returns one record per sold line, newest order first.
func (s *service) SalesHistory(ctx context.Context, vendorID uuid.UUID) ([]SaleRecord, error) {
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	lines, err := s.repo.LinesForVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor lines")
	}

	records := make([]SaleRecord, 0, len(lines))
	for i := range lines {
		records = append(records, recordFromLine(&lines[i]))
	}
	return records, nil
}

// FindOrder resolves an order on the vendor surface. Absent and unowned
// collapse into NOT_FOUND so a vendor cannot probe for foreign order ids.
func (s *service) FindOrder(ctx context.Context, orderID, vendorID uuid.UUID) (*orders.OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	order, err := s.repo.OrderForVendor(ctx, orderID, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return orders.FromModel(order), nil
}

// FindProduct resolves a product on the vendor surface with the same
// absent-or-unowned collapse as FindOrder.
func (s *service) FindProduct(ctx context.Context, productID, vendorID uuid.UUID) (*catalog.ProductDTO, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	product, err := s.repo.ProductForVendor(ctx, productID, vendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := catalog.FromModel(product)
	return &dto, nil
}
