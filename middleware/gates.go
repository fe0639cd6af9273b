package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/upb/jobly/internal/auth"
	"github.com/upb/jobly/services"
)

// Gate decides whether a request may proceed given its identity.
// A nil result proceeds; services.ErrUnauthorized halts.
type Gate func(r *http.Request, id *auth.Identity) error

// CheckLoggedIn requires any identity
func CheckLoggedIn(_ *http.Request, id *auth.Identity) error {
	if id == nil {
		return services.ErrUnauthorized
	}
	return nil
}

// CheckAdmin requires an admin identity
func CheckAdmin(_ *http.Request, id *auth.Identity) error {
	if id == nil || !id.IsAdmin {
		return services.ErrUnauthorized
	}
	return nil
}

// CheckSelfOrAdmin requires an admin, or the user named by the route parameter param
func CheckSelfOrAdmin(param string) Gate {
	return func(r *http.Request, id *auth.Identity) error {
		if !id.CanActAs(chi.URLParam(r, param)) {
			return services.ErrUnauthorized
		}
		return nil
	}
}
