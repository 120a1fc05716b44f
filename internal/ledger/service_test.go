package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
	pkgerrors "github.com/tradehub-io/tradehub-backend/pkg/errors"
)

type stubRepo struct {
	lines    []VendorLine
	orders   map[uuid.UUID]*models.Order
	products map[uuid.UUID]*models.Product
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		orders:   map[uuid.UUID]*models.Order{},
		products: map[uuid.UUID]*models.Product{},
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) LinesForVendor(ctx context.Context, vendorID uuid.UUID) ([]VendorLine, error) {
	return s.lines, nil
}

func (s *stubRepo) OrderForVendor(ctx context.Context, orderID, vendorID uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range order.Lines {
		if order.Lines[i].VendorID == vendorID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ProductForVendor(ctx context.Context, productID, vendorID uuid.UUID) (*models.Product, error) {
	product, ok := s.products[productID]
	if !ok || product.VendorID != vendorID {
		return nil, gorm.ErrRecordNotFound
	}
	return product, nil
}

func vendorLine(product string, qty int, price string, status enums.OrderStatus) VendorLine {
	return VendorLine{
		OrderID:      uuid.New(),
		ProductID:    uuid.New(),
		ProductName:  product,
		Quantity:     qty,
		UnitPrice:    decimal.RequireFromString(price),
		CustomerName: "ada",
		Status:       status,
		PlacedAt:     time.Now().UTC(),
	}
}

func newLedgerService(t *testing.T, repo Repository) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestRevenueSumsAllStatuses(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	repo.lines = []VendorLine{
		vendorLine("Widget", 2, "10.00", enums.OrderStatusProcessing),
		vendorLine("Gadget", 1, "5.50", enums.OrderStatusShipped),
	}
	svc := newLedgerService(t, repo)

	summary, err := svc.Revenue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if summary.Revenue != "25.50" {
		t.Fatalf("expected revenue 25.50, got %s", summary.Revenue)
	}
	if summary.UnitsSold != 3 {
		t.Fatalf("expected 3 units, got %d", summary.UnitsSold)
	}
	if summary.LinesSold != 2 {
		t.Fatalf("expected 2 lines, got %d", summary.LinesSold)
	}
}

func TestRevenueEmptyVendorIsZero(t *testing.T) {
	t.Parallel()
	svc := newLedgerService(t, newStubRepo())

	summary, err := svc.Revenue(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if summary.Revenue != "0.00" {
		t.Fatalf("expected 0.00, got %s", summary.Revenue)
	}
}

func TestSalesHistoryBuildsRecords(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	repo.lines = []VendorLine{vendorLine("Widget", 4, "2.25", enums.OrderStatusProcessing)}
	svc := newLedgerService(t, repo)

	records, err := svc.SalesHistory(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	rec := records[0]
	if rec.TotalPrice != "9.00" {
		t.Fatalf("expected total 9.00, got %s", rec.TotalPrice)
	}
	if rec.CustomerName != "ada" {
		t.Fatalf("expected customer ada, got %s", rec.CustomerName)
	}
	if rec.Status != enums.OrderStatusProcessing {
		t.Fatalf("expected processing, got %s", rec.Status)
	}
}

func TestFindOrderCollapsesAbsentAndUnowned(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	vendorID := uuid.New()
	order := &models.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     enums.OrderStatusProcessing,
		PlacedAt:   time.Now().UTC(),
		Lines: []models.OrderLine{{
			ID:                  uuid.New(),
			ProductName:         "Widget",
			VendorID:            vendorID,
			VendorName:          "Acme Supply",
			Quantity:            1,
			UnitPriceAtPurchase: decimal.RequireFromString("10.00"),
		}},
	}
	repo.orders[order.ID] = order
	svc := newLedgerService(t, repo)

	ctx := context.Background()
	dto, err := svc.FindOrder(ctx, order.ID, vendorID)
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if dto.ID != order.ID {
		t.Fatal("wrong order returned")
	}

	// unknown id and foreign vendor produce the same answer
	for _, tc := range []struct {
		orderID  uuid.UUID
		vendorID uuid.UUID
	}{
		{uuid.New(), vendorID},
		{order.ID, uuid.New()},
	} {
		_, err := svc.FindOrder(ctx, tc.orderID, tc.vendorID)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	}
}

func TestFindProductCollapsesAbsentAndUnowned(t *testing.T) {
	t.Parallel()
	repo := newStubRepo()
	vendorID := uuid.New()
	product := &models.Product{
		ID:         uuid.New(),
		VendorID:   vendorID,
		VendorName: "Acme Supply",
		Name:       "Widget",
		Price:      decimal.RequireFromString("10.00"),
	}
	repo.products[product.ID] = product
	svc := newLedgerService(t, repo)

	ctx := context.Background()
	dto, err := svc.FindProduct(ctx, product.ID, vendorID)
	if err != nil {
		t.Fatalf("find product: %v", err)
	}
	if dto.ID != product.ID {
		t.Fatal("wrong product returned")
	}

	for _, tc := range []struct {
		productID uuid.UUID
		vendorID  uuid.UUID
	}{
		{uuid.New(), vendorID},
		{product.ID, uuid.New()},
	} {
		_, err := svc.FindProduct(ctx, tc.productID, tc.vendorID)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	}
}
