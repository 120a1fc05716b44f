package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines checkout and order lifecycle operations.
type Service interface {
	Place(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error)
	AdvanceToShipped(ctx context.Context, orderID, vendorID uuid.UUID) (*OrderDTO, error)
	Get(ctx context.Context, orderID, customerID uuid.UUID) (*OrderDTO, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// Place converts the cart into an order in one transaction: the cart rows
// are read under lock, snapshot lines are written from the stored unit
// prices (the catalog is never re-read), and the cart is cleared. A failure
// clearing the cart after the order exists is surfaced as
// INCONSISTENT_STATE and never retried here; retrying a half-finished
// checkout risks a duplicate order.
func (s *service) Place(ctx context.Context, customerID uuid.UUID) (*OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	var placed *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		items, err := repo.ListCartForUpdate(ctx, customerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lock cart")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		order := &models.Order{
			ID:         uuid.New(),
			CustomerID: customerID,
			Status:     enums.OrderStatusProcessing,
			PlacedAt:   time.Now().UTC(),
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		lines := consolidateLines(order.ID, items)
		if err := repo.CreateLines(ctx, lines); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order lines")
		}

		if err := repo.ClearCart(ctx, customerID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInconsistent, err, "clear cart after order creation")
		}

		order.Lines = lines
		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(placed), nil
}

// consolidateLines merges cart rows sharing (product name, vendor name,
// unit price) into one order line. Rows whose price snapshots differ stay
// separate, so the order always charges exactly what the cart accumulated
// at add time. The first-seen product and vendor IDs ride along.
func consolidateLines(orderID uuid.UUID, items []models.CartItem) []models.OrderLine {
	// decimal.Decimal carries a pointer internally, so the snapshot enters
	// the key as its canonical string form.
	type key struct {
		productName string
		vendorName  string
		unitPrice   string
	}

	index := make(map[key]int, len(items))
	lines := make([]models.OrderLine, 0, len(items))

	for i := range items {
		item := &items[i]
		k := key{
			productName: item.ProductName,
			vendorName:  item.VendorName,
			unitPrice:   item.UnitPrice.String(),
		}
		if at, ok := index[k]; ok {
			lines[at].Quantity += item.Quantity
			continue
		}
		index[k] = len(lines)
		lines = append(lines, models.OrderLine{
			ID:                  uuid.New(),
			OrderID:             orderID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			VendorID:            item.VendorID,
			VendorName:          item.VendorName,
			Quantity:            item.Quantity,
			UnitPriceAtPurchase: item.UnitPrice,
		})
	}
	return lines
}

// AdvanceToShipped moves a processing order to shipped on behalf of a
// vendor. The vendor must own every line; unknown orders look the same as
// foreign ones on this surface. The transition itself is a status-guarded
// UPDATE, so concurrent ship calls resolve to exactly one winner and the
// losers get STATE_CONFLICT.
func (s *service) AdvanceToShipped(ctx context.Context, orderID, vendorID uuid.UUID) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if vendorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "vendor identity missing")
	}

	var shipped *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		for i := range order.Lines {
			if order.Lines[i].VendorID != vendorID {
				return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
			}
		}
		if len(order.Lines) == 0 {
			return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to vendor")
		}

		rows, err := repo.UpdateStatusGuarded(ctx, orderID, enums.OrderStatusProcessing, enums.OrderStatusShipped)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is not in processing state")
		}

		order.Status = enums.OrderStatusShipped
		shipped = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	return FromModel(shipped), nil
}

// Get returns a customer's own order. Unknown ids are NOT_FOUND; orders
// owned by another customer are FORBIDDEN.
func (s *service) Get(ctx context.Context, orderID, customerID uuid.UUID) (*OrderDTO, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	order, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another customer")
	}

	return FromModel(order), nil
}

// ListForCustomer returns the customer's orders, most recent first.
func (s *service) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]OrderDTO, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}

	orders, err := s.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	dtos := make([]OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, *FromModel(&orders[i]))
	}
	return dtos, nil
}
