package shell

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/url"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/session"
	"github.com/pydata-academy/academy/internal/uistate"
)

// Live message types sent by the browser.
const (
	msgSync           = "sync"
	msgToggleTheme    = "toggle_theme"
	msgToggleExplorer = "toggle_explorer"
	msgSetLayout      = "set_layout"
	msgToggleMetadata = "toggle_metadata"
	msgHideMetadata   = "hide_metadata"
)

// liveRequest is the incoming WebSocket message format.
type liveRequest struct {
	Type   string `json:"type"`
	Layout string `json:"layout,omitempty"`
}

// liveResponse is the outgoing WebSocket message format.
type liveResponse struct {
	Type    string            `json:"type"` // "state" or "error"
	State   *uistate.Snapshot `json:"state,omitempty"`
	Content string            `json:"content,omitempty"`
}

// checkOrigin accepts requests without an Origin header (non-browser
// clients), browser requests from the host serving the page, and origins
// matching a trusted pattern such as "http://localhost:*".
func (s *Shell) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == r.Host {
		return true
	}
	for _, pattern := range s.trustedOrigins {
		ok, err := doublestar.Match(pattern, origin)
		if err != nil {
			log.Printf("shell: bad origin pattern %q: %v", pattern, err)
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// liveConn is one mounted view. A lesson connection owns the lesson state,
// so every page load starts from the defaults.
type liveConn struct {
	conn      *websocket.Conn
	store     *session.Store
	sessionID string
	lesson    *uistate.Lesson
	// last is the session state most recently sent to the browser.
	last uistate.Session
}

func (s *Shell) handleLive(w http.ResponseWriter, r *http.Request) {
	var lesson *uistate.Lesson
	if courseID := chi.URLParam(r, "courseId"); courseID != "" {
		if _, err := s.catalog.FindByID(courseID); err != nil {
			if errors.Is(err, catalog.ErrCourseNotFound) {
				http.Error(w, "course not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		l := uistate.DefaultLesson()
		lesson = &l
	}

	sessionID, _ := session.IDFromContext(r.Context())

	// Upgrade writes its own response, so carry over a freshly issued cookie.
	hdr := http.Header{}
	if cookies := w.Header().Values("Set-Cookie"); len(cookies) > 0 {
		hdr["Set-Cookie"] = cookies
	}

	conn, err := s.upgrader.Upgrade(w, r, hdr)
	if err != nil {
		log.Printf("shell: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	lc := &liveConn{
		conn:      conn,
		store:     s.sessions.Store(),
		sessionID: sessionID,
		lesson:    lesson,
		last:      uistate.DefaultSession(),
	}
	lc.serve(r)
}

func (lc *liveConn) serve(r *http.Request) {
	lc.sendState(r, nil)

	for {
		_, msg, err := lc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("shell: websocket read: %v", err)
			}
			return
		}

		var req liveRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			lc.sendError("invalid message format")
			continue
		}

		switch req.Type {
		case msgSync:
			lc.sendState(r, nil)
		case msgToggleTheme:
			lc.sendState(r, (*uistate.Session).ToggleTheme)
		case msgToggleExplorer:
			lc.sendState(r, (*uistate.Session).ToggleExplorerPanel)
		case msgSetLayout, msgToggleMetadata, msgHideMetadata:
			lc.handleLessonMessage(r, req)
		default:
			lc.sendError("unknown message type: " + req.Type)
		}
	}
}

func (lc *liveConn) handleLessonMessage(r *http.Request, req liveRequest) {
	if lc.lesson == nil {
		lc.sendError(req.Type + " is only available in a lesson view")
		return
	}

	switch req.Type {
	case msgSetLayout:
		mode, err := uistate.ParseLayout(req.Layout)
		if err != nil {
			lc.sendError(err.Error())
			return
		}
		lc.lesson.SetLayout(mode)
	case msgToggleMetadata:
		lc.lesson.ToggleMetadata()
	case msgHideMetadata:
		lc.lesson.HideMetadata()
	}
	lc.sendState(r, nil)
}

// sendState applies an optional session transition and pushes the resulting
// snapshot to the browser. Every message counts as activity, and a session
// pruned while the page stayed open is restored from the last state sent.
func (lc *liveConn) sendState(r *http.Request, transition func(*uistate.Session)) {
	if lc.sessionID == "" {
		lc.sendError("no session bound to this connection")
		return
	}
	ctx := r.Context()

	state, err := lc.loadSession(ctx, transition)
	if errors.Is(err, session.ErrSessionNotFound) {
		log.Printf("shell: restoring pruned session %s", lc.sessionID)
		if err = lc.store.Restore(ctx, lc.sessionID, lc.last); err == nil {
			state, err = lc.loadSession(ctx, transition)
		}
	}
	if err != nil {
		lc.sendError("session unavailable: " + err.Error())
		return
	}
	lc.last = state

	snap := uistate.NewSnapshot(state, lc.lesson)
	lc.send(liveResponse{Type: "state", State: &snap})
}

func (lc *liveConn) loadSession(ctx context.Context, transition func(*uistate.Session)) (uistate.Session, error) {
	if transition != nil {
		return lc.store.Update(ctx, lc.sessionID, transition)
	}
	if err := lc.store.Touch(ctx, lc.sessionID); err != nil {
		return uistate.Session{}, err
	}
	return lc.store.Get(ctx, lc.sessionID)
}

func (lc *liveConn) send(resp liveResponse) {
	if err := lc.conn.WriteJSON(resp); err != nil {
		log.Printf("shell: websocket write: %v", err)
	}
}

func (lc *liveConn) sendError(message string) {
	lc.send(liveResponse{Type: "error", Content: message})
}
