package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acarreras/tienda-backend/pkg/db/models"
)

// ProductDTO is the transport shape for catalog entries.
type ProductDTO struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name      string
	Reference string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
}

// UpdateProductInput holds optional mutation values for a product.
// Nil fields are left untouched.
type UpdateProductInput struct {
	Name      *string
	Reference *string
	Price     *decimal.Decimal
	Quantity  *int
	ImageURL  *string
}

func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		Reference: p.Reference,
		Price:     p.Price,
		Quantity:  p.Quantity,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromModels(items []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
