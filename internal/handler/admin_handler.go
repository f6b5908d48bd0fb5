package handlers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
	"omenblog/internal/service"
	"omenblog/internal/view"
)

const multipartMemory = 8 << 20

func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	page, err := h.PostService.ListPage(r.Context(), pageParam(r), h.Cfg.Site.PageSize)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.render(w, r, identity, http.StatusOK, "dashboard", view.Data{"Page": page})
}

func (h *Handlers) AddPostPage(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.render(w, r, identity, http.StatusOK, "add_post", nil)
}

func (h *Handlers) AddPost(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	upload, closeUpload, err := h.parsePostForm(w, r)
	if err != nil {
		h.renderFormError(w, r, identity, "add_post", nil, err)
		return
	}
	defer closeUpload()

	post, err := h.PostService.Create(r.Context(), postInputFromForm(r), upload)
	if err != nil {
		h.renderFormError(w, r, identity, "add_post", nil, err)
		return
	}

	h.Logger.Info("post created", "post_id", post.PostID, "slug", post.Slug, "by", identity.UserID)
	http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
}

func (h *Handlers) EditPostPage(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	post, err := h.PostService.GetBySlug(r.Context(), mux.Vars(r)["slug"])
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.render(w, r, identity, http.StatusOK, "edit_post", view.Data{"Post": post})
}

func (h *Handlers) EditPost(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	slug := mux.Vars(r)["slug"]

	upload, closeUpload, err := h.parsePostForm(w, r)
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}
	defer closeUpload()

	post, err := h.PostService.Update(r.Context(), slug, postInputFromForm(r), upload)
	if apperror.Is(err, apperror.KindValidation) {
		current, getErr := h.PostService.GetBySlug(r.Context(), slug)
		if getErr != nil {
			h.renderError(w, r, identity, getErr)
			return
		}
		h.renderFormError(w, r, identity, "edit_post", current, err)
		return
	}
	if err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.Logger.Info("post updated", "post_id", post.PostID, "by", identity.UserID)
	http.Redirect(w, r, "/post/"+post.Slug, http.StatusSeeOther)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	postID := mux.Vars(r)["id"]

	if err := h.PostService.Delete(r.Context(), postID); err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.Logger.Info("post deleted", "post_id", postID, "by", identity.UserID)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handlers) renderFormError(w http.ResponseWriter, r *http.Request, identity models.Identity, page string, post *models.Post, err error) {
	status, message := h.statusOf(r, err)
	data := view.Data{"Error": message}
	if post != nil {
		data["Post"] = post
	}
	h.render(w, r, identity, status, page, data)
}

// parsePostForm reads the multipart body and returns the header image, if
// one was sent.
func (h *Handlers) parsePostForm(w http.ResponseWriter, r *http.Request) (*service.Upload, func(), error) {
	noop := func() {}

	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, noop, apperror.Validation("upload is too large")
		}
		return nil, noop, apperror.Validation("malformed form data")
	}

	if r.MultipartForm == nil {
		return nil, noop, nil
	}

	file, header, err := r.FormFile("headerImage")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, apperror.Validation("could not read header image")
	}

	upload := &service.Upload{
		FileName: header.Filename,
		File:     file,
		Size:     header.Size,
	}
	return upload, func() { file.Close() }, nil
}

// postInputFromForm leaves fields that were not submitted nil so updates
// keep the stored value.
func postInputFromForm(r *http.Request) service.PostInput {
	form := r.PostForm

	text := func(key string) *string {
		values, ok := form[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	list := func(key string) []string {
		values, ok := form[key]
		if !ok {
			return nil
		}
		return append([]string{}, values...)
	}

	var featured *bool
	if values, ok := form["isFeatured"]; ok && len(values) > 0 {
		v := service.ParseTruthy(values[len(values)-1])
		featured = &v
	}

	return service.PostInput{
		Title:           text("title"),
		Body:            text("body"),
		Author:          text("author"),
		Sports:          list("sports"),
		Leagues:         list("leagues"),
		IsFeatured:      featured,
		MetaTitle:       text("metaTitle"),
		MetaDescription: text("metaDescription"),
		Keywords:        list("keywords"),
		ImageAlt:        text("imageAlt"),
	}
}
