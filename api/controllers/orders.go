package controllers

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

// OrderList returns the order history newest first.
func OrderList(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		responses.WriteSuccess(w, s.Orders())
	}
}

func OrderDetail(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		id, err := validators.ParseURLInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, found := s.Order(id)
		if !found {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "order not found"))
			return
		}
		responses.WriteSuccess(w, order)
	}
}
