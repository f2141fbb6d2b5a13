package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acarreras/tienda-backend/pkg/types"
)

// LineItemInput is one purchased position submitted at checkout. The unit
// price is the one locked at add-to-cart time.
type LineItemInput struct {
	ProductID uuid.UUID       `json:"productId" validate:"required"`
	Name      string          `json:"name" validate:"required"`
	Reference string          `json:"reference" validate:"required"`
	Quantity  int             `json:"quantity" validate:"required,gt=0"`
	Price     decimal.Decimal `json:"price"`
}

// PaymentInput carries raw card data from the checkout form. It exists only
// in memory during the request; redaction happens before anything is stored.
type PaymentInput struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	CardExpiry string `json:"cardExpiry"`
	CardCvc    string `json:"cardCvc"`
}

// CreateOrderInput is the full checkout submission. Client-computed totals
// are accepted for compatibility but recomputed server-side; the stored
// breakdown always comes from the shared pricing formula.
type CreateOrderInput struct {
	UserEmail    *string             `json:"userEmail,omitempty" validate:"omitempty,email"`
	Items        []LineItemInput     `json:"items"`
	ShippingInfo *types.ShippingInfo `json:"shippingInfo,omitempty"`
	PaymentInfo  *PaymentInput       `json:"paymentInfo,omitempty"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Shipping     decimal.Decimal     `json:"shipping"`
	Tax          decimal.Decimal     `json:"tax"`
	Total        decimal.Decimal     `json:"total"`
}

// DailyReport aggregates one calendar day of sales.
type DailyReport struct {
	Date         string            `json:"date"`
	TotalOrders  int               `json:"totalOrders"`
	TotalRevenue decimal.Decimal   `json:"totalRevenue"`
	TopProducts  []TopProductEntry `json:"topProducts"`
}

// TopProductEntry is one best-seller row, ranked by units sold.
type TopProductEntry struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}
