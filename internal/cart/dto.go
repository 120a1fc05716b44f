package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
)

// CartItemDTO is the raw per-row view of the cart.
type CartItemDTO struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	VendorName  string    `json:"vendor_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
}

// ViewLine is one consolidated display line: rows sharing a product name
// and vendor name are merged, quantities summed, subtotals added.
type ViewLine struct {
	ProductName string `json:"product_name"`
	VendorName  string `json:"vendor_name"`
	Quantity    int    `json:"quantity"`
	Subtotal    string `json:"subtotal"`
}

// CartView is the assembled response for the cart page.
type CartView struct {
	Lines      []ViewLine `json:"lines"`
	TotalPrice string     `json:"total_price"`
	TotalItems int        `json:"total_items"`
}

func itemToDTO(item *models.CartItem) CartItemDTO {
	subtotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	return CartItemDTO{
		ID:          item.ID,
		ProductID:   item.ProductID,
		ProductName: item.ProductName,
		VendorName:  item.VendorName,
		UnitPrice:   item.UnitPrice.StringFixed(2),
		Quantity:    item.Quantity,
		Subtotal:    subtotal.StringFixed(2),
	}
}
