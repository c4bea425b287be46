package controllers

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

// LocalImport merges browser-local cart, orders and todos into the user's
// shop and reports how many entries were taken over.
func LocalImport(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		var body shop.LocalSnapshot
		if err := validators.DecodeJSON(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := s.ImportLocal(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
