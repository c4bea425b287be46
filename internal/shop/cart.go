package shop

import (
	"context"

	"github.com/shoptodo/shoptodo-backend/internal/cart"
	"github.com/shoptodo/shoptodo-backend/internal/catalog"
	"github.com/shoptodo/shoptodo-backend/internal/persist"
)

// Products lists the catalog with names in q.Language, or the shop language
// when q.Language is empty.
func (s *Shop) Products(q catalog.Query) []catalog.Product {
	s.mu.Lock()
	lang := s.language
	s.mu.Unlock()

	if q.Language == "" {
		q.Language = lang
	}
	products := s.catalog.Filter(q)
	for i := range products {
		products[i] = s.catalog.Localize(products[i], q.Language)
	}
	return products
}

// AddToCart adds one unit of productID. Unknown ids are ignored.
func (s *Shop) AddToCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return err
	}
	p, ok := s.catalog.Get(productID)
	if !ok {
		s.logg.Debug(s.logg.WithField(ctx, "product_id", productID), "ignoring unknown product")
		return nil
	}
	s.cart.Add(p)
	s.metrics.IncCartMutation("add")
	s.persist(ctx, persist.KeyCart)
	return nil
}

// RemoveFromCart drops the line for productID; a missing line is a no-op.
func (s *Shop) RemoveFromCart(ctx context.Context, productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return err
	}
	if s.cart.Remove(productID) {
		s.metrics.IncCartMutation("remove")
		s.persist(ctx, persist.KeyCart)
	}
	return nil
}

// UpdateQuantity sets the quantity of an existing line. Zero or less removes it.
func (s *Shop) UpdateQuantity(ctx context.Context, productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return err
	}
	if s.cart.UpdateQuantity(productID, quantity) {
		s.metrics.IncCartMutation("update")
		s.persist(ctx, persist.KeyCart)
	}
	return nil
}

// CartView is the cart with derived totals.
type CartView struct {
	Items []cart.Line `json:"items"`
	Total int64       `json:"total"`
	Count int         `json:"count"`
}

func (s *Shop) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CartView{
		Items: s.cart.Lines(),
		Total: s.cart.Total(),
		Count: s.cart.Count(),
	}
}
