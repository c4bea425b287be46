package controllers

import (
	"net/http"

	"github.com/shoptodo/shoptodo-backend/api/middleware"
	"github.com/shoptodo/shoptodo-backend/api/responses"
	"github.com/shoptodo/shoptodo-backend/api/validators"
	"github.com/shoptodo/shoptodo-backend/internal/auth"
	"github.com/shoptodo/shoptodo-backend/internal/session"
	"github.com/shoptodo/shoptodo-backend/internal/shop"
	pkgerrors "github.com/shoptodo/shoptodo-backend/pkg/errors"
	"github.com/shoptodo/shoptodo-backend/pkg/logger"
)

// AuthRegister creates an account, stores the optional profile in the new
// user's shop and logs the user in.
func AuthRegister(reg auth.RegisterService, svc auth.Service, registry *shop.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil || svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := reg.Register(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if body.Profile != nil && registry != nil {
			s, err := registry.For(r.Context(), session.User{Username: user.Username})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if _, err := s.UpdateProfile(r.Context(), *body.Profile); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		result, err := svc.Login(r.Context(), auth.LoginRequest{Username: user.Username, Password: body.Password})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// AuthLogin wires the login endpoint into the HTTP layer.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Refresh(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout clears the user's cart and todos and revokes the access token's
// session.
func AuthLogout(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := shopFrom(w, r, logg)
		if !ok {
			return
		}
		if err := s.Logout(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if svc != nil {
			if err := svc.Logout(r.Context(), middleware.AccessIDFromContext(r.Context())); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}
