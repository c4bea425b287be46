// Package orders holds the append-only order history.
package orders

import (
	"sort"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
)

// Order is an immutable snapshot of a cart taken when checkout completed.
type Order struct {
	ID            int64               `json:"id"`
	Date          time.Time           `json:"date"`
	Items         []cart.Line         `json:"items"`
	Total         int64               `json:"total"`
	ShippingInfo  types.ShippingInfo  `json:"shippingInfo"`
	PaymentMethod enums.PaymentMethod `json:"paymentMethod"`
	Status        enums.OrderStatus   `json:"status"`
}

// Clone deep copies the order so callers never share its item slice.
func (o Order) Clone() Order {
	items := make([]cart.Line, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

// Valid reports whether a restored order is well formed enough to keep: its
// lines have a price of zero or more and a positive quantity, and Total is
// their sum.
func (o Order) Valid() bool {
	if o.ID <= 0 || len(o.Items) == 0 || !o.Status.IsValid() || !o.PaymentMethod.IsValid() {
		return false
	}
	var sum int64
	for _, line := range o.Items {
		if line.Price < 0 || line.Quantity < 1 {
			return false
		}
		sum += line.Subtotal()
	}
	return sum == o.Total
}

// Log is the append-only order history. Orders are never edited or removed.
type Log struct {
	orders []Order
	byID   map[int64]int
}

// NewLog restores a history. Repeated ids keep the first occurrence.
func NewLog(orders []Order) *Log {
	l := &Log{byID: make(map[int64]int, len(orders))}
	for _, o := range orders {
		l.Append(o)
	}
	return l
}

// Append stores a copy of o and reports false when its id is already present.
func (l *Log) Append(o Order) bool {
	if _, dup := l.byID[o.ID]; dup {
		return false
	}
	l.byID[o.ID] = len(l.orders)
	l.orders = append(l.orders, o.Clone())
	return true
}

// All returns copies in insertion order.
func (l *Log) All() []Order {
	out := make([]Order, len(l.orders))
	for i, o := range l.orders {
		out[i] = o.Clone()
	}
	return out
}

// Newest returns copies ordered most recent first (by date, then id).
func (l *Log) Newest() []Order {
	out := l.All()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

// Get returns a copy of the order with id.
func (l *Log) Get(id int64) (Order, bool) {
	idx, ok := l.byID[id]
	if !ok {
		return Order{}, false
	}
	return l.orders[idx].Clone(), true
}

func (l *Log) Has(id int64) bool {
	_, ok := l.byID[id]
	return ok
}

func (l *Log) Len() int { return len(l.orders) }

// MaxID returns the largest order id, or zero.
func (l *Log) MaxID() int64 {
	var max int64
	for _, o := range l.orders {
		if o.ID > max {
			max = o.ID
		}
	}
	return max
}
