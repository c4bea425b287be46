package controllers

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID int `json:"product_id" validate:"required,min=1"`
}

type updateCartItemRequest struct {
	// Quantity below one removes the line.
	Quantity *int `json:"quantity" validate:"required"`
}

func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, s.Cart())
	}
}

// CartAddItem adds one unit. Unknown products leave the cart unchanged.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		var body addCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := s.AddToCart(r.Context(), body.ProductID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.Cart())
	}
}

func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		productID, err := validators.ParseURLInt64(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := s.UpdateQuantity(r.Context(), int(productID), *body.Quantity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.Cart())
	}
}

func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		productID, err := validators.ParseURLInt64(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := s.RemoveFromCart(r.Context(), int(productID)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.Cart())
	}
}
