package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradehub-io/tradehub-backend/pkg/db/models"
)

// ProductDTO is the transport shape for a listing. Price is serialized as a
// fixed two-decimal string.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	VendorID    uuid.UUID `json:"vendor_id"`
	VendorName  string    `json:"vendor_name"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromModel(p *models.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		VendorID:    p.VendorID,
		VendorName:  p.VendorName,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toDTOs(products []models.Product) []ProductDTO {
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, FromModel(&products[i]))
	}
	return dtos
}
