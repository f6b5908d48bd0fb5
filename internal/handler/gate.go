package handlers

import (
	"net/http"

	"omenblog/internal/apperror"
	"omenblog/internal/middleware"
	"omenblog/internal/models"
)

type identifiedHandler func(w http.ResponseWriter, r *http.Request, identity models.Identity)

// identified hands the request identity to next.
func (h *Handlers) identified(next identifiedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r, middleware.IdentityFrom(r.Context()))
	}
}

// authenticated answers 401 unless the caller has a valid session.
func (h *Handlers) authenticated(next identifiedHandler) http.HandlerFunc {
	return h.identified(func(w http.ResponseWriter, r *http.Request, identity models.Identity) {
		if !identity.IsAuthenticated() {
			h.renderError(w, r, identity, apperror.Auth("log in to continue"))
			return
		}
		next(w, r, identity)
	})
}

// adminOnly answers 403 to everyone but admins.
func (h *Handlers) adminOnly(next identifiedHandler) http.HandlerFunc {
	return h.identified(func(w http.ResponseWriter, r *http.Request, identity models.Identity) {
		if !identity.IsAdmin() {
			h.renderError(w, r, identity, apperror.Forbidden("access denied"))
			return
		}
		next(w, r, identity)
	})
}
