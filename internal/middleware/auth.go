package middleware

import (
	"context"
	"net/http"

	"omenblog/internal/models"
)

const SessionCookie = "token"

type contextKey int

const identityKey contextKey = iota

// Authenticator resolves a raw session token to an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) models.Identity
}

// AuthGate attaches the caller's identity to every request. A cookie that
// fails verification is cleared and the request continues as Invalid.
func AuthGate(auth Authenticator, secureCookie bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := models.AnonymousIdentity()

			if cookie, err := r.Cookie(SessionCookie); err == nil {
				identity = auth.Authenticate(r.Context(), cookie.Value)
				if identity.State == models.Invalid {
					ClearSessionCookie(w, secureCookie)
				}
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom returns the identity attached by AuthGate, Anonymous if none.
func IdentityFrom(ctx context.Context) models.Identity {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	if !ok {
		return models.AnonymousIdentity()
	}
	return identity
}

func SetSessionCookie(w http.ResponseWriter, token string, maxAge int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	SetSessionCookie(w, "", -1, secure)
}
