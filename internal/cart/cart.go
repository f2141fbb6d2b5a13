// Package cart holds the shopping cart state for a storefront session.
// A Cart is a plain value mutated through its methods; the Store wraps it
// with a load/mutate/save cycle against durable session storage.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acarreras/tienda-backend/internal/pricing"
)

// Item is one line in the cart. Quantity is always >= 1 for a present item;
// mutations that would leave it at zero remove the line instead.
type Item struct {
	ProductID uuid.UUID       `json:"productId"`
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
}

// Product carries the catalog fields needed to add a line to the cart.
type Product struct {
	ID        uuid.UUID
	Name      string
	Reference string
	Price     decimal.Decimal
}

// Cart is the item collection itself. Derived values (TotalItems, Subtotal)
// are computed on read and never stored.
type Cart struct {
	Items []Item `json:"items"`
}

// AddItem appends the product with quantity 1, or bumps the existing line
// by 1 when the product is already present. Each call adds exactly one unit.
func (c *Cart) AddItem(p Product) {
	for i := range c.Items {
		if c.Items[i].ProductID == p.ID {
			c.Items[i].Quantity++
			return
		}
	}
	c.Items = append(c.Items, Item{
		ProductID: p.ID,
		Name:      p.Name,
		Reference: p.Reference,
		UnitPrice: p.Price,
		Quantity:  1,
	})
}

// RemoveItem drops the line entirely regardless of quantity. No-op if absent.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the line's quantity. A quantity of zero or less
// removes the line, same as RemoveItem.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the collection.
func (c *Cart) Clear() {
	c.Items = nil
}

// TotalItems sums quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums unit price times quantity across all lines.
func (c *Cart) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range c.Items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Quote runs the shared pricing formula over the current lines.
func (c *Cart) Quote() pricing.Quote {
	lines := make([]pricing.Line, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity})
	}
	return pricing.Compute(lines)
}
