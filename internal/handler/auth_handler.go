package handlers

import (
	"net/http"
	"strings"

	"omenblog/internal/apperror"
	"omenblog/internal/middleware"
	"omenblog/internal/models"
	"omenblog/internal/view"
)

// bcrypt only hashes the first 72 bytes of a password.
const maxPasswordBytes = 72

type RegisterForm struct {
	Username string `validate:"required,min=3,max=32,username"`
	Password string `validate:"required,min=8,max=72"`
	Honeypot string
}

type LoginForm struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (h *Handlers) RegisterPage(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.render(w, r, identity, http.StatusOK, "register", nil)
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	form := RegisterForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
		Honeypot: r.PostFormValue("honeypot"),
	}

	fail := func(err error) {
		status, message := h.statusOf(r, err)
		h.render(w, r, identity, status, "register", view.Data{
			"Error":    message,
			"Username": form.Username,
		})
	}

	if form.Honeypot != "" {
		h.Logger.Warn("registration honeypot filled", "remote", r.RemoteAddr)
		fail(apperror.Validation("registration failed"))
		return
	}

	if err := h.Validate.Struct(form); err != nil {
		fail(validationError(err))
		return
	}
	if len(form.Password) > maxPasswordBytes {
		fail(apperror.Validation("password must be at most 72 bytes"))
		return
	}

	user, token, err := h.AuthService.Register(r.Context(), form.Username, form.Password)
	if err != nil {
		fail(err)
		return
	}

	h.Logger.Info("user registered", "user_id", user.UserID)
	h.startSession(w, r, token)
}

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	h.render(w, r, identity, http.StatusOK, "login", nil)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request, identity models.Identity) {
	form := LoginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}

	fail := func(err error) {
		status, message := h.statusOf(r, err)
		h.render(w, r, identity, status, "login", view.Data{
			"Error":    message,
			"Username": form.Username,
		})
	}

	if err := h.Validate.Struct(form); err != nil {
		fail(validationError(err))
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), form.Username, form.Password)
	if err != nil {
		fail(err)
		return
	}

	h.startSession(w, r, token)
}

// Logout clears the session cookie. It succeeds without a session too.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.Cfg.CookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) startSession(w http.ResponseWriter, r *http.Request, token string) {
	middleware.SetSessionCookie(w, token, int(h.Cfg.SessionDuration.Seconds()), h.Cfg.CookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
