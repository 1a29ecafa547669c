package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the read-only course endpoints under /api/courses.
func RegisterRoutes(r chi.Router, c *Catalog) {
	r.Route("/api/courses", func(r chi.Router) {
		r.Get("/", handleList(c))
		r.Get("/{courseId}", handleGet(c))
	})
}

func handleList(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		courses := c.Filter(Query{
			Language:   Language(q.Get("language")),
			Difficulty: Difficulty(q.Get("difficulty")),
		})
		writeJSON(w, http.StatusOK, courses)
	}
}

func handleGet(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		course, err := c.FindByID(chi.URLParam(r, "courseId"))
		if errors.Is(err, ErrCourseNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": ErrCourseNotFound.Error()})
			return
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, course)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
