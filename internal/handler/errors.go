package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"omenblog/internal/apperror"
	"omenblog/internal/models"
	"omenblog/internal/view"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// statusOf maps err to a response status and client-safe message, logging
// anything that is not an expected application error.
func (h *Handlers) statusOf(r *http.Request, err error) (int, string) {
	status, message := apperror.Status(err)
	if status >= http.StatusInternalServerError {
		h.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
	}
	return status, message
}

// writeAppError answers a JSON route.
func (h *Handlers) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := h.statusOf(r, err)
	writeError(w, message, status)
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, identity models.Identity, status int, page string, data view.Data) {
	if data == nil {
		data = view.Data{}
	}
	data["Identity"] = identity

	if err := h.Renderer.Render(w, status, view.LayoutFor(identity), page, data); err != nil {
		h.Logger.Error("rendering page failed",
			"page", page,
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError answers an HTML route with the error page.
func (h *Handlers) renderError(w http.ResponseWriter, r *http.Request, identity models.Identity, err error) {
	status, message := h.statusOf(r, err)
	h.renderStatus(w, r, identity, status, message)
}

func (h *Handlers) renderStatus(w http.ResponseWriter, r *http.Request, identity models.Identity, status int, message string) {
	h.render(w, r, identity, status, "error", view.Data{
		"Status":  status,
		"Message": message,
	})
}

// validationError turns validator output into a single readable Validation error.
func validationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return apperror.Validation("invalid form data")
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return apperror.Validation(fmt.Sprintf("%s is required", field))
	case "min":
		return apperror.Validation(fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "max":
		return apperror.Validation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	case "email":
		return apperror.Validation("email address is not valid")
	case "username":
		return apperror.Validation("username may only contain letters, digits, dots, underscores and hyphens")
	}
	return apperror.Validation(fmt.Sprintf("%s is not valid", field))
}
