package shop

import (
	"context"

	"github.com/shoptodo/shoptodo-backend/internal/checkout"
	"github.com/shoptodo/shoptodo-backend/internal/orders"
	"github.com/shoptodo/shoptodo-backend/internal/persist"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
)

func (s *Shop) Checkout() checkout.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkout.State()
}

// BeginCheckout opens the shipping step. An empty cart is rejected.
func (s *Shop) BeginCheckout(ctx context.Context) error {
	return s.transition(ctx, func() error {
		return s.checkout.Begin(s.cart)
	})
}

func (s *Shop) SubmitShipping(ctx context.Context, info types.ShippingInfo) error {
	return s.transition(ctx, func() error {
		return s.checkout.SubmitShipping(info)
	})
}

func (s *Shop) SelectPayment(ctx context.Context, method enums.PaymentMethod) error {
	return s.transition(ctx, func() error {
		return s.checkout.SelectPayment(method)
	})
}

// CheckoutBack returns to the previous step keeping the entered data.
func (s *Shop) CheckoutBack(ctx context.Context) error {
	return s.transition(ctx, s.checkout.Back)
}

// CloseCheckout resets the workflow to idle from any step.
func (s *Shop) CloseCheckout(ctx context.Context) error {
	return s.transition(ctx, func() error {
		s.checkout.Close()
		return nil
	})
}

// ConfirmOrder places the order: the cart snapshot is appended to the
// history, the cart is cleared and both are persisted.
func (s *Shop) ConfirmOrder(ctx context.Context) (orders.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, _, err := s.require(ctx)
	if err != nil {
		return orders.Order{}, err
	}
	order, err := s.checkout.Confirm(s.cart, s.ids.Next(), s.now().UTC())
	if err != nil {
		return orders.Order{}, err
	}
	s.orders.Append(order)
	s.cart.Clear()
	s.persist(ctx, persist.KeyOrders, persist.KeyCart)

	s.metrics.ObserveOrder(order.Total)
	s.metrics.IncCheckoutTransition(string(s.checkout.Step()))
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_id": order.ID,
		"total":    order.Total,
		"items":    len(order.Items),
	}), "order placed")
	return order, nil
}

func (s *Shop) transition(ctx context.Context, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, _, err := s.require(ctx); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	s.metrics.IncCheckoutTransition(string(s.checkout.Step()))
	return nil
}

// Orders lists the history newest first.
func (s *Shop) Orders() []orders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Newest()
}

func (s *Shop) Order(id int64) (orders.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Get(id)
}
