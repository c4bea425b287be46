// Package cart implements the shopping cart line rules.
package cart

import "github.com/shoptodo/shoptodo-backend/internal/catalog"

// Line is one product in the cart. Name and Price are copied from the product
// when the line is created and never refreshed, so orders stay stable when the
// catalog changes.
type Line struct {
	ProductID int    `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal is price times quantity.
func (l Line) Subtotal() int64 {
	return l.Price * int64(l.Quantity)
}

// Cart keeps at most one line per product in insertion order. Quantities are
// always at least one.
type Cart struct {
	lines []Line
}

// New rebuilds a cart from stored lines. Lines with a quantity below one are
// dropped and repeated product ids are merged into the first occurrence.
func New(lines []Line) *Cart {
	c := &Cart{}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if idx := c.index(line.ProductID); idx >= 0 {
			c.lines[idx].Quantity += line.Quantity
			continue
		}
		c.lines = append(c.lines, line)
	}
	return c
}

// Add puts one unit of p into the cart.
func (c *Cart) Add(p catalog.Product) {
	if idx := c.index(p.ID); idx >= 0 {
		c.lines[idx].Quantity++
		return
	}
	c.lines = append(c.lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
	})
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID int) bool {
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	c.lines = append(c.lines[:idx], c.lines[idx+1:]...)
	return true
}

// UpdateQuantity sets the quantity for productID. Values at or below zero
// remove the line. It reports whether the cart changed.
func (c *Cart) UpdateQuantity(productID, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(productID)
	}
	idx := c.index(productID)
	if idx < 0 {
		return false
	}
	if c.lines[idx].Quantity == quantity {
		return false
	}
	c.lines[idx].Quantity = quantity
	return true
}

// Total is the sum of every line subtotal; zero for an empty cart.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Lines returns a copy of the lines in display order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID.
func (c *Cart) Line(productID int) (Line, bool) {
	if idx := c.index(productID); idx >= 0 {
		return c.lines[idx], true
	}
	return Line{}, false
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Clear() {
	c.lines = nil
}

func (c *Cart) index(productID int) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
