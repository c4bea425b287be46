package orders

import (
	"testing"
	"time"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"github.com/stretchr/testify/require"
)

func sampleOrder(id int64, at time.Time) Order {
	return Order{
		ID:            id,
		Date:          at,
		Items:         []cart.Line{{ProductID: 1, Name: "ノートパソコン", Price: 89800, Quantity: 1}},
		Total:         89800,
		PaymentMethod: enums.PaymentMethodCreditCard,
		Status:        enums.OrderStatusCompleted,
	}
}

func TestAppendStoresCopy(t *testing.T) {
	l := NewLog(nil)
	o := sampleOrder(1, time.Now())
	require.True(t, l.Append(o))

	o.Items[0].Quantity = 50
	stored, ok := l.Get(1)
	require.True(t, ok)
	require.Equal(t, 1, stored.Items[0].Quantity)

	stored.Items[0].Price = 1
	again, _ := l.Get(1)
	require.Equal(t, int64(89800), again.Items[0].Price)
}

func TestAppendRejectsDuplicateIDs(t *testing.T) {
	l := NewLog(nil)
	require.True(t, l.Append(sampleOrder(1, time.Now())))
	require.False(t, l.Append(sampleOrder(1, time.Now())))
	require.Equal(t, 1, l.Len())
}

func TestNewestFirst(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	l := NewLog([]Order{
		sampleOrder(1, base),
		sampleOrder(3, base.Add(2*time.Hour)),
		sampleOrder(2, base.Add(time.Hour)),
		sampleOrder(4, base.Add(2*time.Hour)),
	})

	got := l.Newest()
	require.Equal(t, []int64{4, 3, 2, 1}, []int64{got[0].ID, got[1].ID, got[2].ID, got[3].ID})

	all := l.All()
	require.Equal(t, int64(1), all[0].ID, "All keeps insertion order")
	require.Equal(t, int64(4), l.MaxID())
}

func TestValid(t *testing.T) {
	require.True(t, sampleOrder(1, time.Now()).Valid())

	bad := sampleOrder(1, time.Now())
	bad.Items = nil
	require.False(t, bad.Valid())

	bad = sampleOrder(0, time.Now())
	require.False(t, bad.Valid())

	bad = sampleOrder(2, time.Now())
	bad.Status = "shipped"
	require.False(t, bad.Valid())

	bad = sampleOrder(3, time.Now())
	bad.Total = 1
	require.False(t, bad.Valid(), "total must match the lines")

	bad = sampleOrder(4, time.Now())
	bad.Items = []cart.Line{{ProductID: 1, Price: -89800, Quantity: 1}}
	bad.Total = -89800
	require.False(t, bad.Valid(), "negative prices are rejected")

	bad = sampleOrder(5, time.Now())
	bad.Items = []cart.Line{{ProductID: 1, Price: 89800, Quantity: 0}}
	bad.Total = 0
	require.False(t, bad.Valid())
}
