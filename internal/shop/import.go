package shop

import (
	"context"
	"sort"
	"strings"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/internal/orders"
	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/internal/todos"
)

// LocalSnapshot is client side state handed over in one request, typically
// the first time a browser that used local storage signs in.
type LocalSnapshot struct {
	Cart   []cart.Line    `json:"cart"`
	Orders []orders.Order `json:"orders"`
	Todos  []todos.Item   `json:"todos"`
}

// ImportResult counts what was merged.
type ImportResult struct {
	CartLines int `json:"cartLines"`
	Orders    int `json:"orders"`
	Todos     int `json:"todos"`
}

// ImportLocal merges snap into the logged in user's state:
//   - cart lines for unknown products or with a quantity below one are
//     dropped, name and price are taken from the catalog, and quantities for
//     a product already in the cart are added together;
//   - well formed orders with an unknown id are appended in id order;
//   - todos with blank text or a known id are skipped.
func (s *Shop) ImportLocal(ctx context.Context, snap LocalSnapshot) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	var res ImportResult

	incoming := cart.New(s.catalogLines(snap.Cart)).Lines()
	if len(incoming) > 0 {
		s.cart = cart.New(append(s.cart.Lines(), incoming...))
		res.CartLines = len(incoming)
	}

	imported := validOrders(snap.Orders)
	sort.SliceStable(imported, func(i, j int) bool { return imported[i].ID < imported[j].ID })
	for _, o := range imported {
		if s.orders.Append(o) {
			s.ids.Observe(o.ID)
			res.Orders++
		}
	}

	merged := s.todos.Items()
	seen := make(map[int64]struct{}, len(merged)+len(snap.Todos))
	for _, item := range merged {
		seen[item.ID] = struct{}{}
	}
	for _, item := range snap.Todos {
		if _, dup := seen[item.ID]; dup || strings.TrimSpace(item.Text) == "" {
			continue
		}
		seen[item.ID] = struct{}{}
		merged = append(merged, item)
		res.Todos++
	}
	if res.Todos > 0 {
		s.todos = todos.New(merged)
		s.ids.Observe(s.todos.MaxID())
	}

	s.persist(ctx, persist.KeyCart, persist.KeyOrders, persist.KeyTodos)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"cart_lines": res.CartLines,
		"orders":     res.Orders,
		"todos":      res.Todos,
	}), "imported local data")
	return res, nil
}

// catalogLines rebuilds client supplied lines from the catalog so only the
// product id and quantity are trusted.
func (s *Shop) catalogLines(in []cart.Line) []cart.Line {
	out := make([]cart.Line, 0, len(in))
	for _, line := range in {
		p, ok := s.catalog.Get(line.ProductID)
		if !ok {
			continue
		}
		out = append(out, cart.Line{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  line.Quantity,
		})
	}
	return out
}
