package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(t *testing.T, name, reference, price string) Product {
	t.Helper()
	d, err := decimal.NewFromString(price)
	require.NoError(t, err)
	return Product{ID: uuid.New(), Name: name, Reference: reference, Price: d}
}

func TestAddItemAppendsThenIncrements(t *testing.T) {
	p := product(t, "Lamp", "LMP-001", "25.00")

	var c Cart
	c.AddItem(p)
	c.AddItem(p)

	require.Len(t, c.Items, 1, "same product must merge into one line")
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, p.ID, c.Items[0].ProductID)
}

func TestAddItemDistinctProducts(t *testing.T) {
	var c Cart
	c.AddItem(product(t, "Lamp", "LMP-001", "25.00"))
	c.AddItem(product(t, "Desk", "DSK-001", "120.00"))

	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[0].Quantity)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestRemoveItem(t *testing.T) {
	p := product(t, "Lamp", "LMP-001", "25.00")
	other := product(t, "Desk", "DSK-001", "120.00")

	var c Cart
	c.AddItem(p)
	c.AddItem(p)
	c.AddItem(other)

	c.RemoveItem(p.ID)
	require.Len(t, c.Items, 1, "remove drops the line regardless of quantity")
	assert.Equal(t, other.ID, c.Items[0].ProductID)

	// absent id is a no-op
	c.RemoveItem(uuid.New())
	assert.Len(t, c.Items, 1)
}

func TestSetQuantity(t *testing.T) {
	p := product(t, "Lamp", "LMP-001", "25.00")

	var c Cart
	c.AddItem(p)

	c.SetQuantity(p.ID, 5)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Items[0].Quantity)
}

func TestSetQuantityZeroOrNegativeRemoves(t *testing.T) {
	p := product(t, "Lamp", "LMP-001", "25.00")

	var c Cart
	c.AddItem(p)
	c.SetQuantity(p.ID, 0)
	assert.Empty(t, c.Items)

	c.AddItem(p)
	c.SetQuantity(p.ID, -1)
	assert.Empty(t, c.Items)
}

func TestClear(t *testing.T) {
	var c Cart
	c.AddItem(product(t, "Lamp", "LMP-001", "25.00"))
	c.AddItem(product(t, "Desk", "DSK-001", "120.00"))

	c.Clear()
	assert.Empty(t, c.Items)
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.Subtotal().IsZero())
}

// Derived values must track the collection after every mutation.
func TestDerivedValuesAlwaysCurrent(t *testing.T) {
	lamp := product(t, "Lamp", "LMP-001", "25.00")
	desk := product(t, "Desk", "DSK-001", "120.00")

	var c Cart

	check := func() {
		t.Helper()
		wantItems := 0
		wantSubtotal := decimal.Zero
		for _, item := range c.Items {
			wantItems += item.Quantity
			wantSubtotal = wantSubtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
		assert.Equal(t, wantItems, c.TotalItems())
		assert.True(t, wantSubtotal.Equal(c.Subtotal()), "subtotal %s != %s", c.Subtotal(), wantSubtotal)
	}

	c.AddItem(lamp)
	check()
	c.AddItem(lamp)
	check()
	c.AddItem(desk)
	check()
	c.SetQuantity(desk.ID, 4)
	check()
	c.RemoveItem(lamp.ID)
	check()
	c.SetQuantity(desk.ID, 0)
	check()
}

func TestQuoteUsesSharedFormula(t *testing.T) {
	p := product(t, "Lamp", "LMP-001", "50.00")

	var c Cart
	c.AddItem(p)
	c.AddItem(p)

	q := c.Quote()
	assert.True(t, q.Subtotal.Equal(decimal.RequireFromString("100.00")), "subtotal: %s", q.Subtotal)
	assert.True(t, q.Shipping.Equal(decimal.RequireFromString("9.99")), "shipping: %s", q.Shipping)
	assert.True(t, q.Tax.Equal(decimal.RequireFromString("21.00")), "tax: %s", q.Tax)
	assert.True(t, q.Total.Equal(decimal.RequireFromString("130.99")), "total: %s", q.Total)
}
