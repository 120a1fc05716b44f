package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

// SaleRecord is one entry in a vendor's sales history.
type SaleRecord struct {
	OrderID      uuid.UUID         `json:"order_id"`
	ProductName  string            `json:"product_name"`
	Quantity     int               `json:"quantity"`
	TotalPrice   string            `json:"total_price"`
	CustomerName string            `json:"customer_name"`
	Status       enums.OrderStatus `json:"status"`
	PlacedAt     time.Time         `json:"placed_at"`
}

// RevenueSummary is the aggregate the vendor dashboard shows.
type RevenueSummary struct {
	Revenue    string `json:"revenue"`
	LinesSold  int    `json:"lines_sold"`
	UnitsSold  int    `json:"units_sold"`
	OrderCount int    `json:"order_count"`
}

func recordFromLine(line *VendorLine) SaleRecord {
	total := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
	return SaleRecord{
		OrderID:      line.OrderID,
		ProductName:  line.ProductName,
		Quantity:     line.Quantity,
		TotalPrice:   total.StringFixed(2),
		CustomerName: line.CustomerName,
		Status:       line.Status,
		PlacedAt:     line.PlacedAt,
	}
}
