package handlers

import (
	"net/http"
	"strings"

	"omenblog/internal/models"
	"omenblog/internal/view"
)

type ContactForm struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email,max=254"`
	Message string `validate:"required,max=5000"`
}

func (h *Handlers) About(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.render(w, r, identity, http.StatusOK, "about", nil)
}

func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.render(w, r, identity, http.StatusOK, "contact", view.Data{"Form": ContactForm{}})
}

func (h *Handlers) Contact(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	form := ContactForm{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Message: strings.TrimSpace(r.PostFormValue("message")),
	}

	if err := h.Validate.Struct(form); err != nil {
		status, message := h.statusOf(r, validationError(err))
		h.render(w, r, identity, status, "contact", view.Data{
			"Form":  form,
			"Error": message,
		})
		return
	}

	if _, err := h.ContactService.Send(r.Context(), form.Name, form.Email, form.Message); err != nil {
		h.renderError(w, r, identity, err)
		return
	}

	h.render(w, r, identity, http.StatusOK, "contact", view.Data{"Sent": true})
}

func (h *Handlers) NotFound(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.renderStatus(w, r, identity, http.StatusNotFound, "page not found")
}
