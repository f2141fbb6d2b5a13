package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acarreras/tienda-backend/pkg/enums"
	"github.com/acarreras/tienda-backend/pkg/types"
)

// Order is the immutable record created at checkout. Totals always satisfy
// total = subtotal + shipping + tax at creation time.
type Order struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber  string              `gorm:"column:order_number;not null;uniqueIndex" json:"orderNumber"`
	UserEmail    *string             `gorm:"column:user_email" json:"userEmail,omitempty"`
	Items        []OrderItem         `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingInfo *types.ShippingInfo `gorm:"column:shipping_info;type:jsonb" json:"shippingInfo,omitempty"`
	PaymentInfo  *types.PaymentInfo  `gorm:"column:payment_info;type:jsonb" json:"paymentInfo,omitempty"`
	Subtotal     decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	Shipping     decimal.Decimal     `gorm:"column:shipping;type:numeric(10,2);not null" json:"shipping"`
	Tax          decimal.Decimal     `gorm:"column:tax;type:numeric(10,2);not null" json:"tax"`
	Total        decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	Status       enums.OrderStatus   `gorm:"column:status;not null;default:'pending'" json:"status"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
