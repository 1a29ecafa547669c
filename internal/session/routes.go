package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pydata-academy/academy/internal/uistate"
)

// RegisterRoutes mounts the session state endpoints under /api/session.
func RegisterRoutes(r chi.Router, m *Manager) {
	r.Route("/api/session", func(r chi.Router) {
		r.Use(m.Middleware)
		r.Get("/", handleGet(m.store))
		r.Post("/theme", handleUpdate(m.store, (*uistate.Session).ToggleTheme))
		r.Post("/explorer", handleUpdate(m.store, (*uistate.Session).ToggleExplorerPanel))
	})
}

func handleGet(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := IDFromContext(r.Context())
		state, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func handleUpdate(store *Store, transition func(*uistate.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := IDFromContext(r.Context())
		state, err := store.Update(r.Context(), id, transition)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
