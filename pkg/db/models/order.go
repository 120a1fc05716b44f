package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tradehub-io/tradehub-backend/pkg/enums"
)

// Order is the immutable record produced by checkout. Lines never change
// after creation; status is the single mutable field and only moves
// processing -> shipped under a status-guarded update.
type Order struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID         `gorm:"column:customer_id;type:uuid;not null"`
	Status     enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'processing'"`
	PlacedAt   time.Time         `gorm:"column:placed_at;not null"`
	Lines      []OrderLine       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
