// Package handlers wires the HTTP surface. Every dependency is held on
// an explicitly constructed App and passed in from main; nothing here is
// ambient global state.
package handlers

import (
	"context"
	"net/http"
	"net/url"

	"gotodo/auth"
	"gotodo/config"
	"gotodo/logger"
	"gotodo/service"
	"gotodo/store"
	"gotodo/views"
)

const (
	sessionCookie = "session_token"
	flashCookie   = "flash"
)

type App struct {
	Cfg      config.Config
	Auth     *auth.Service
	Todos    *service.TodoService
	Users    store.UserStore
	Renderer views.Renderer
	// GuestID is the seeded default owner for anonymous submissions.
	// Only set in open mode.
	GuestID int64
}

type ctxKey int

const identityKey ctxKey = 0

// authenticate resolves the session cookie to an identity and stashes it
// in the request context. Requests without a valid session pass through
// logged out.
func (app *App) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st, err := r.Cookie(sessionCookie)
		if err != nil || st.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := app.Auth.Current(r.Context(), st.Value)
		if err != nil {
			logger.Log.Errorw("resolving session identity", "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if identity == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireLogin redirects anonymous requests to the login form. In open
// mode nothing is gated.
func (app *App) requireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.Cfg.Mode == config.ModeOpen || identityFrom(r) != nil {
			next.ServeHTTP(w, r)
			return
		}
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
}

func identityFrom(r *http.Request) *auth.Identity {
	identity, _ := r.Context().Value(identityKey).(*auth.Identity)
	return identity
}

func (app *App) render(w http.ResponseWriter, name string, data any) {
	if err := app.Renderer.Render(w, name, data); err != nil {
		logger.Log.Errorw("rendering template", "template", name, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (app *App) serverError(w http.ResponseWriter, err error) {
	logger.Log.Errorw("internal error", "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// setFlash stores a one-shot message in a short-lived cookie. The value
// is query-escaped because the messages are Japanese.
func setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60,
	})
}

// popFlash reads and clears the flash cookie.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookie)
	if err != nil || c.Value == "" {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	message, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return message
}
