package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the part of a product copied into the cart when it is added.
type ProductSnapshot struct {
	ProductID string          `json:"product_id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

type CartLine struct {
	ProductSnapshot
	Quantity int `json:"quantity"`
}

func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart keeps at most one line per product, in the order products were first added.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// Add increments the line for p, appending a new line with quantity 1 when p is not in the cart.
func (c *Cart) Add(p ProductSnapshot) {
	if i := c.indexOf(p.ProductID); i >= 0 {
		c.Lines[i].Quantity++
		return
	}

	c.Lines = append(c.Lines, CartLine{ProductSnapshot: p, Quantity: 1})
}

// Remove takes one unit off the line for productID and drops the line when it
// reaches zero. Unknown products are ignored.
func (c *Cart) Remove(productID string) {
	i := c.indexOf(productID)
	if i < 0 {
		return
	}

	if c.Lines[i].Quantity > 1 {
		c.Lines[i].Quantity--
		return
	}

	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
}

// Zero overrides the unit price of the line for productID with 0.
func (c *Cart) Zero(productID string) {
	if i := c.indexOf(productID); i >= 0 {
		c.Lines[i].Price = decimal.Zero
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Line(productID string) (CartLine, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (c *Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}
