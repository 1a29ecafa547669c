package session

import (
	"context"
	"errors"
	"log"
	"net/http"
)

type contextKey struct{}

// Manager binds browser cookies to sessions in a Store.
type Manager struct {
	store      *Store
	cookieName string
}

// NewManager creates a Manager that identifies browsers by the named cookie.
func NewManager(store *Store, cookieName string) *Manager {
	return &Manager{store: store, cookieName: cookieName}
}

// Store returns the underlying session store.
func (m *Manager) Store() *Store { return m.store }

// Middleware resolves the caller's session, creating one and setting the
// cookie when the request carries none or an unknown id.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
			if _, err := m.store.Get(ctx, c.Value); err == nil {
				if err := m.store.Touch(ctx, c.Value); err != nil {
					log.Printf("session: %v", err)
				}
				next.ServeHTTP(w, r.WithContext(WithID(ctx, c.Value)))
				return
			} else if !errors.Is(err, ErrSessionNotFound) {
				log.Printf("session: lookup: %v", err)
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}
		}

		id, _, err := m.store.Create(ctx)
		if err != nil {
			log.Printf("session: create: %v", err)
			http.Error(w, "session unavailable", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     m.cookieName,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
		next.ServeHTTP(w, r.WithContext(WithID(ctx, id)))
	})
}

// WithID returns a context carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IDFromContext returns the session id placed by Middleware.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKey{}).(string)
	return id, ok && id != ""
}
