package handlers

import (
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
)

// React records a like or dislike and answers with the new counters, or
// redirects back to the post when the request came from its page.
func (h *Handlers) React(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	if !identity.IsAuthenticated() {
		h.writeAppError(w, r, apperror.Auth("log in to react to posts"))
		return
	}

	reactions, err := h.PostService.React(r.Context(), mux.Vars(r)["id"], identity.UserID, r.PostFormValue("direction"))
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}

	// The post page's plain forms send the slug to come back to.
	if slug := r.PostFormValue("slug"); slug != "" {
		http.Redirect(w, r, "/post/"+url.PathEscape(slug), http.StatusSeeOther)
		return
	}

	writeSuccess(w, reactions, http.StatusOK)
}
