package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db"
	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

type productLoader interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error)
}

// Service exposes cart operations for the customer surface.
type Service interface {
	Add(ctx context.Context, customerID, productID uuid.UUID, quantity int) error
	Items(ctx context.Context, customerID uuid.UUID) ([]CartItemDTO, error)
	View(ctx context.Context, customerID uuid.UUID) (*CartView, error)
	Remove(ctx context.Context, customerID, cartItemID uuid.UUID) error
	TotalQuantity(ctx context.Context, customerID uuid.UUID) (int, error)
}

type service struct {
	repo     Repository
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo Repository, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

// Add puts quantity units of a product into the cart, snapshotting the
// product's current name, vendor and price onto the row. Re-adding the same
// product increments the existing row through a single SQL UPDATE, so
// concurrent adds cannot lose increments. The insert path handles the race
// where two first-adds collide on the unique (customer, product) index:
// the loser retries as an increment.
func (s *service) Add(ctx context.Context, customerID, productID uuid.UUID, quantity int) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}

	rows, err := s.repo.IncrementQuantity(ctx, customerID, productID, quantity)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart row")
	}
	if rows > 0 {
		return nil
	}

	item := &models.CartItem{
		ID:          uuid.New(),
		CustomerID:  customerID,
		ProductID:   productID,
		ProductName: product.Name,
		VendorID:    product.VendorID,
		VendorName:  product.VendorName,
		UnitPrice:   product.Price,
		Quantity:    quantity,
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		if db.IsUniqueViolation(err, "idx_cart_items_customer_product") {
			rows, err = s.repo.IncrementQuantity(ctx, customerID, productID, quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment cart row after insert race")
			}
			if rows == 0 {
				return pkgerrors.New(pkgerrors.CodeConflict, "cart row vanished during add")
			}
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert cart row")
	}
	return nil
}

// Items returns the raw cart rows for the customer.
func (s *service) Items(ctx context.Context, customerID uuid.UUID) ([]CartItemDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	dtos := make([]CartItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, itemToDTO(&items[i]))
	}
	return dtos, nil
}

// View consolidates the cart for display: rows sharing (product name,
// vendor name) merge into one line with summed quantity and subtotal, in
// first-seen order. Merging is presentation-only; the stored rows are
// untouched. The total is the sum over underlying rows, so it is invariant
// under any grouping.
func (s *service) View(ctx context.Context, customerID uuid.UUID) (*CartView, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	items, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}

	type groupKey struct {
		productName string
		vendorName  string
	}
	type group struct {
		quantity int
		subtotal decimal.Decimal
	}

	order := make([]groupKey, 0, len(items))
	groups := make(map[groupKey]*group, len(items))
	total := decimal.Zero
	totalItems := 0

	for i := range items {
		item := &items[i]
		key := groupKey{productName: item.ProductName, vendorName: item.VendorName}
		line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
		totalItems += item.Quantity

		if g, ok := groups[key]; ok {
			g.quantity += item.Quantity
			g.subtotal = g.subtotal.Add(line)
			continue
		}
		groups[key] = &group{quantity: item.Quantity, subtotal: line}
		order = append(order, key)
	}

	lines := make([]ViewLine, 0, len(order))
	for _, key := range order {
		g := groups[key]
		lines = append(lines, ViewLine{
			ProductName: key.productName,
			VendorName:  key.vendorName,
			Quantity:    g.quantity,
			Subtotal:    g.subtotal.StringFixed(2),
		})
	}

	return &CartView{
		Lines:      lines,
		TotalPrice: total.StringFixed(2),
		TotalItems: totalItems,
	}, nil
}

// Remove deletes a cart row after verifying the caller owns it. A row
// belonging to another customer is FORBIDDEN, not NOT_FOUND: the row id was
// presented by the caller, so there is no existence to hide.
func (s *service) Remove(ctx context.Context, customerID, cartItemID uuid.UUID) error {
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if cartItemID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item id is required")
	}

	item, err := s.repo.FindByID(ctx, cartItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart item")
	}
	if item.CustomerID != customerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cart item belongs to another customer")
	}

	if err := s.repo.Delete(ctx, cartItemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart item")
	}
	return nil
}

// TotalQuantity is the badge count: a fresh SUM per call, never cached.
func (s *service) TotalQuantity(ctx context.Context, customerID uuid.UUID) (int, error) {
	if customerID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	total, err := s.repo.SumQuantity(ctx, customerID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum cart quantity")
	}
	return total, nil
}
