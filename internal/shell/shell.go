// Package shell serves the code-editor style pages: the course catalog,
// the lesson view with its two embedded panels, and the live channel that
// carries UI state transitions.
package shell

import (
	"bytes"
	"embed"
	"errors"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/embeds"
	"github.com/pydata-academy/academy/internal/route"
	"github.com/pydata-academy/academy/internal/session"
	"github.com/pydata-academy/academy/internal/uistate"
)

//go:embed static
var staticFS embed.FS

// Shell renders the views and owns the live channel.
type Shell struct {
	catalog   *catalog.Catalog
	sessions  *session.Manager
	renderer  *Renderer
	publicURL string

	upgrader       websocket.Upgrader
	trustedOrigins []string
}

// New creates a Shell. publicURL, when set, is the externally visible base
// URL used as the embed origin.
func New(c *catalog.Catalog, sessions *session.Manager, renderer *Renderer, publicURL string) *Shell {
	s := &Shell{
		catalog:   c,
		sessions:  sessions,
		renderer:  renderer,
		publicURL: publicURL,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

// TrustOrigins allows live connections from cross-origin pages whose origin
// matches one of the glob patterns.
func (s *Shell) TrustOrigins(patterns []string) {
	s.trustedOrigins = append([]string(nil), patterns...)
}

// RegisterRoutes mounts the pages, static assets and live channel. Paths not
// claimed by another route resolve through the route package, so unknown
// paths redirect to the catalog.
func (s *Shell) RegisterRoutes(r chi.Router) {
	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		r.Use(s.sessions.Middleware)
		r.Get("/ws/shell", s.handleLive)
		r.Get("/ws/lesson/{courseId}", s.handleLive)
		r.Get("/", s.ServePage)
		r.Get("/*", s.ServePage)
	})
}

// ServePage resolves the request path and renders the selected view.
func (s *Shell) ServePage(w http.ResponseWriter, r *http.Request) {
	res := route.Resolve(r.URL.Path)
	if res.Redirect {
		http.Redirect(w, r, route.CatalogPath, http.StatusFound)
		return
	}

	state, err := s.currentSession(r)
	if err != nil {
		log.Printf("shell: %v", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	switch res.View {
	case route.ViewLesson:
		s.serveLesson(w, r, res.CourseID, state)
	default:
		s.serveCatalog(w, state)
	}
}

func (s *Shell) currentSession(r *http.Request) (uistate.Session, error) {
	id, ok := session.IDFromContext(r.Context())
	if !ok {
		return uistate.DefaultSession(), nil
	}
	return s.sessions.Store().Get(r.Context(), id)
}

func (s *Shell) serveCatalog(w http.ResponseWriter, state uistate.Session) {
	courses := s.catalog.ListAll()
	entries := make([]CatalogEntry, len(courses))
	for i, c := range courses {
		entries[i] = CatalogEntry{
			Position: i + 1,
			Href:     route.LessonPath(c.ID),
			Course:   c,
		}
	}

	page := CatalogPage{
		Frame:   s.frame("Select Your Module", route.ViewCatalog, state, "/ws/shell"),
		Entries: entries,
	}
	s.write(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Catalog(buf, page)
	})
}

func (s *Shell) serveLesson(w http.ResponseWriter, r *http.Request, courseID string, state uistate.Session) {
	course, err := s.catalog.FindByID(courseID)
	if errors.Is(err, catalog.ErrCourseNotFound) {
		page := NotFoundPage{
			Frame:    s.frame("Course Not Found", route.ViewLesson, state, "/ws/shell"),
			CourseID: courseID,
		}
		s.write(w, http.StatusNotFound, func(buf *bytes.Buffer) error {
			return s.renderer.NotFound(buf, page)
		})
		return
	}
	if err != nil {
		log.Printf("shell: lookup %q: %v", courseID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	descriptions, err := s.renderer.MarkdownThemes(course.Description)
	if err != nil {
		log.Printf("shell: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	lesson := uistate.DefaultLesson()
	page := LessonPage{
		Frame:           s.frame(course.Title, route.ViewLesson, state, "/ws/lesson/"+course.ID),
		Course:          course,
		Layout:          lesson.Layout,
		MetadataVisible: lesson.MetadataVisible,
		VideoURL:        embeds.VideoURL(course.YouTubeID, embeds.Origin(r, s.publicURL)),
		NotebookURL:     embeds.NotebookURL,
		Descriptions:    descriptions,
	}
	s.write(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return s.renderer.Lesson(buf, page)
	})
}

func (s *Shell) frame(title string, view route.View, state uistate.Session, liveURL string) Frame {
	return Frame{
		Title:        title,
		View:         view,
		Theme:        state.Theme,
		ExplorerOpen: state.ExplorerOpen(),
		IsLesson:     view == route.ViewLesson,
		LiveURL:      liveURL,
	}
}

// write renders into a buffer so a template error yields a clean 500.
func (s *Shell) write(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		log.Printf("shell: render: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
