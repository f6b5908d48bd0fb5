package handlers

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/mux"

	"omenblog/internal/middleware"
	"omenblog/internal/models"
)

const (
	authAttempts = 10
	authWindow   = time.Minute
)

// NewRouter registers every route and wraps the router with the request
// middleware stack.
func NewRouter(h *Handlers) http.Handler {
	router := mux.NewRouter()
	authLimiter := middleware.NewRateLimiter(authAttempts, authWindow)

	router.HandleFunc("/", h.identified(h.Index)).Methods(http.MethodGet)
	router.HandleFunc("/post/{slug}", h.identified(h.ShowPost)).Methods(http.MethodGet)
	router.HandleFunc("/search", h.identified(h.Search)).Methods(http.MethodPost)
	router.HandleFunc("/about", h.identified(h.About)).Methods(http.MethodGet)
	router.HandleFunc("/contact", h.identified(h.ContactPage)).Methods(http.MethodGet)
	router.HandleFunc("/contact", h.identified(h.Contact)).Methods(http.MethodPost)

	router.HandleFunc("/register", h.identified(h.RegisterPage)).Methods(http.MethodGet)
	router.Handle("/register", authLimiter.Limit(h.identified(h.Register))).Methods(http.MethodPost)
	router.HandleFunc("/log-in", h.identified(h.LoginPage)).Methods(http.MethodGet)
	router.Handle("/log-in", authLimiter.Limit(h.identified(h.Login))).Methods(http.MethodPost)
	router.HandleFunc("/logout", h.Logout).Methods(http.MethodGet)

	router.HandleFunc("/post/{slug}/comments", h.identified(h.Comments)).Methods(http.MethodGet)
	router.HandleFunc("/post/{slug}/comments", h.authenticated(h.AddComment)).Methods(http.MethodPost)
	router.HandleFunc("/post/{id}/react", h.identified(h.React)).Methods(http.MethodPost)

	router.HandleFunc("/dashboard", h.adminOnly(h.Dashboard)).Methods(http.MethodGet)
	router.HandleFunc("/add-post", h.adminOnly(h.AddPostPage)).Methods(http.MethodGet)
	router.HandleFunc("/add-post", h.adminOnly(h.AddPost)).Methods(http.MethodPost)
	router.HandleFunc("/edit-post/{slug}", h.adminOnly(h.EditPostPage)).Methods(http.MethodGet)
	router.HandleFunc("/edit-post/{slug}", h.adminOnly(h.EditPost)).Methods(http.MethodPut)
	router.HandleFunc("/delete-post/{id}", h.adminOnly(h.DeletePost)).Methods(http.MethodDelete)

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	router.NotFoundHandler = h.identified(h.NotFound)
	router.MethodNotAllowedHandler = h.identified(func(w http.ResponseWriter, r *http.Request, identity models.Identity) {
		h.renderStatus(w, r, identity, http.StatusMethodNotAllowed, "method not allowed")
	})

	stack := []middleware.Middleware{chimw.RequestID}
	// Forwarded headers are client controlled unless a proxy rewrites them.
	if h.Cfg.TrustProxy {
		stack = append(stack, chimw.RealIP)
	}
	stack = append(stack,
		middleware.LoggingMiddleware(h.Logger),
		chimw.Recoverer,
		middleware.MethodOverride(h.Cfg.MaxUploadSize+multipartMemory),
		middleware.AuthGate(h.AuthService, h.Cfg.CookieSecure),
	)

	return middleware.Chain(router, stack...)
}
