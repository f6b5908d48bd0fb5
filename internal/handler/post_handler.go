package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"omenblog/internal/models"
	"omenblog/internal/view"
)

type Sidebar struct {
	Tag   string
	Posts []models.Post
}

// pageParam reads ?page=N. Anything that is not a number means page 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *Handlers) Index(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	ctx := r.Context()

	page, err := h.PostService.ListPage(ctx, pageParam(r), h.Cfg.Site.PageSize)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	featured, err := h.PostService.ListFeatured(ctx, h.Cfg.Site.FeaturedLimit)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	sidebars := make([]Sidebar, 0, len(h.Cfg.Site.SidebarTags))
	for _, tag := range h.Cfg.Site.SidebarTags {
		posts, err := h.PostService.ListByTag(ctx, tag, h.Cfg.Site.SidebarLimit)
		if err != nil {
			h.renderError(w, r, identity, err)
			return
		}
		sidebars = append(sidebars, Sidebar{Tag: tag, Posts: posts})
	}

	h.render(w, r, identity, http.StatusOK, "index", view.Data{
		"Page":     page,
		"Featured": featured,
		"Sidebars": sidebars,
	})
}

func (h *Handlers) ShowPost(w http.ResponseWriter, r *http.Request, identity models.Identity) {
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

	h.render(w, r, identity, http.StatusOK, "post", view.Data{
		"Post":     post,
		"Comments": comments,
	})
}

func (h *Handlers) Search(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	term := r.PostFormValue("searchTerm")

	posts, err := h.PostService.Search(r.Context(), term)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.render(w, r, identity, http.StatusOK, "search", view.Data{
		"SearchTerm": term,
		"Posts":      posts,
	})
}
