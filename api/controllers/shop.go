package controllers

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/middleware"
	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

// shopFrom returns the shop resolved by middleware.Shop and writes an error
// response when it is missing.
func shopFrom(w http.ResponseWriter, r *http.Request, logg *logger.Logger) (*shop.Shop, bool) {
	s := middleware.ShopFromContext(r.Context())
	if s == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shop context missing"))
		return nil, false
	}
	return s, true
}
