package controllers

import (
	"context"
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/pkg/enums"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
	"github.com/shoptodo/shoptodo-backend/pkg/types"
)

type selectPaymentRequest struct {
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
}

func CheckoutFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, s.Checkout())
	}
}

func CheckoutBegin(logg *logger.Logger) http.HandlerFunc {
	return checkoutStep(logg, func(ctx context.Context, s *shop.Shop, _ *http.Request) error {
		return s.BeginCheckout(ctx)
	})
}

// CheckoutShipping decodes without struct validation so the workflow reports
// a wrong step before field errors.
func CheckoutShipping(logg *logger.Logger) http.HandlerFunc {
	return checkoutStep(logg, func(ctx context.Context, s *shop.Shop, r *http.Request) error {
		var body types.ShippingInfo
		if err := validators.DecodeJSON(r, &body); err != nil {
			return err
		}
		return s.SubmitShipping(ctx, body)
	})
}

func CheckoutPayment(logg *logger.Logger) http.HandlerFunc {
	return checkoutStep(logg, func(ctx context.Context, s *shop.Shop, r *http.Request) error {
		var body selectPaymentRequest
		if err := validators.DecodeJSON(r, &body); err != nil {
			return err
		}
		return s.SelectPayment(ctx, body.PaymentMethod)
	})
}

func CheckoutBack(logg *logger.Logger) http.HandlerFunc {
	return checkoutStep(logg, func(ctx context.Context, s *shop.Shop, _ *http.Request) error {
		return s.CheckoutBack(ctx)
	})
}

func CheckoutClose(logg *logger.Logger) http.HandlerFunc {
	return checkoutStep(logg, func(ctx context.Context, s *shop.Shop, _ *http.Request) error {
		return s.CloseCheckout(ctx)
	})
}

// CheckoutConfirm places the order and returns it.
func CheckoutConfirm(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		order, err := s.ConfirmOrder(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// checkoutStep runs one transition and answers with the resulting state.
func checkoutStep(logg *logger.Logger, fn func(ctx context.Context, s *shop.Shop, r *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		if err := fn(r.Context(), s, r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.Checkout())
	}
}
