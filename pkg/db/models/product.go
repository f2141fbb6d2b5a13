package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product represents a catalog listing. Reference is the human-assigned
// product code, unique across the catalog and distinct from the row ID.
type Product struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Reference string          `gorm:"column:reference;not null;uniqueIndex" json:"reference"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Quantity  int             `gorm:"column:quantity;not null;default:0" json:"quantity"`
	ImageURL  string          `gorm:"column:image_url;not null" json:"imageUrl"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
