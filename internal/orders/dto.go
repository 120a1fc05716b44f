package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

// OrderLineDTO is the immutable per-product snapshot inside an order view.
type OrderLineDTO struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	VendorName  string    `json:"vendor_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	LineTotal   string    `json:"line_total"`
}

// OrderDTO is the transport shape of an order.
type OrderDTO struct {
	ID       uuid.UUID         `json:"id"`
	Status   enums.OrderStatus `json:"status"`
	PlacedAt time.Time         `json:"placed_at"`
	Lines    []OrderLineDTO    `json:"lines"`
	Total    string            `json:"total"`
}

func FromModel(order *models.Order) *OrderDTO {
	if order == nil {
		return nil
	}

	lines := make([]OrderLineDTO, 0, len(order.Lines))
	total := decimal.Zero
	for i := range order.Lines {
		line := &order.Lines[i]
		lineTotal := line.UnitPriceAtPurchase.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, OrderLineDTO{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			VendorName:  line.VendorName,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPriceAtPurchase.StringFixed(2),
			LineTotal:   lineTotal.StringFixed(2),
		})
	}

	return &OrderDTO{
		ID:       order.ID,
		Status:   order.Status,
		PlacedAt: order.PlacedAt,
		Lines:    lines,
		Total:    total.StringFixed(2),
	}
}
