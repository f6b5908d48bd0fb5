package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
	"omenblog/internal/view"
)

func (h *Handlers) Comments(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	post, err := h.PostService.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	comments, err := h.CommentService.List(r.Context(), post.PostID)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.render(w, r, identity, http.StatusOK, "comments", view.Data{
		"Post":     post,
		"Comments": comments,
	})
}

func (h *Handlers) AddComment(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	ctx := r.Context()

	post, err := h.PostService.GetBySlug(ctx, mux.Vars(r)["slug"])
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	_, err = h.CommentService.Add(ctx, post.PostID, identity, r.PostFormValue("body"))
	if apperror.Is(err, apperror.KindValidation) {
		comments, listErr := h.CommentService.List(ctx, post.PostID)
		if listErr != nil {
			h.renderError(w, r, identity, listErr)
			return
		}
		status, message := h.statusOf(r, err)
		h.render(w, r, identity, status, "comments", view.Data{
			"Post":     post,
			"Comments": comments,
			"Error":    message,
		})
		return
	}
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	http.Redirect(w, r, "/post/"+post.Slug+"/comments", http.StatusSeeOther)
}
