package shell

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/pydata-academy/academy/internal/catalog"
	"github.com/pydata-academy/academy/internal/db"
	"github.com/pydata-academy/academy/internal/session"
	"github.com/pydata-academy/academy/internal/uistate"
)

const testCookie = "academy_session"

// testClient is a browser stand-in: a cookie jar shared by page requests
// and live connections.
type testClient struct {
	t      *testing.T
	server *httptest.Server
	http   *http.Client
	dialer *websocket.Dialer
	store  *session.Store
}

func setupServer(t *testing.T, trustedOrigins ...string) *testClient {
	t.Helper()

	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}

	store := session.NewStore(database)
	manager := session.NewManager(store, testCookie)
	r := chi.NewRouter()
	catalog.RegisterRoutes(r, c)
	session.RegisterRoutes(r, manager)
	sh := New(c, manager, renderer, "")
	sh.TrustOrigins(trustedOrigins)
	sh.RegisterRoutes(r)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &testClient{
		t:      t,
		server: server,
		http: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		dialer: &websocket.Dialer{Jar: jar},
		store:  store,
	}
}

func (c *testClient) get(path string) (int, http.Header, string) {
	c.t.Helper()
	resp, err := c.http.Get(c.server.URL + path)
	if err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header, string(body)
}

func (c *testClient) dial(path string) *websocket.Conn {
	c.t.Helper()
	wsURL := "ws" + strings.TrimPrefix(c.server.URL, "http") + path
	conn, resp, err := c.dialer.Dial(wsURL, nil)
	if err != nil {
		c.t.Fatalf("websocket dial %s: %v", path, err)
	}
	if resp.StatusCode != http.StatusSwitchingProtocols {
		c.t.Fatalf("expected 101, got %d", resp.StatusCode)
	}
	c.t.Cleanup(func() { conn.Close() })

	// Every connection starts with a state push.
	readState(c.t, conn)
	return conn
}

func readState(t *testing.T, conn *websocket.Conn) uistate.Snapshot {
	t.Helper()
	var resp liveResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "state" || resp.State == nil {
		t.Fatalf("expected state message, got %+v", resp)
	}
	return *resp.State
}

func send(t *testing.T, conn *websocket.Conn, req liveRequest) {
	t.Helper()
	if err := conn.WriteJSON(req); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCatalogPage(t *testing.T) {
	c := setupServer(t)

	status, hdr, body := c.get("/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.HasPrefix(hdr.Get("Content-Type"), "text/html") {
		t.Errorf("content type = %q", hdr.Get("Content-Type"))
	}
	if strings.Count(body, `class="card"`) != 5 {
		t.Errorf("expected 5 course cards")
	}
	if !strings.Contains(body, `href="/lesson/english-advanced-1"`) {
		t.Error("missing lesson link")
	}
	if !strings.Contains(body, `data-live="/ws/shell"`) {
		t.Error("catalog page should use the shell live channel")
	}
}

func TestUnknownPathRedirects(t *testing.T) {
	c := setupServer(t)

	for _, path := range []string{"/nonexistent", "/lesson/", "/lesson/a/b"} {
		status, hdr, _ := c.get(path)
		if status != http.StatusFound {
			t.Errorf("%s: expected 302, got %d", path, status)
			continue
		}
		if loc := hdr.Get("Location"); loc != "/" {
			t.Errorf("%s: Location = %q, want /", path, loc)
		}
	}
}

func TestLessonFoundScenario(t *testing.T) {
	c := setupServer(t)

	status, _, body := c.get("/lesson/hindi-beginner-1")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, want := range []string{
		"Data Analytics Full Course - Beginner to Pro",
		"29 Hours",
		"Hindi",
		"youtube-nocookie.com/embed/VaSjiJMrq24",
		"origin=" + strings.ReplaceAll(strings.ReplaceAll(c.server.URL, ":", "%3a"), "/", "%2f"),
		`<div id="metadata" class="overlay" hidden>`,
	} {
		if !strings.Contains(strings.ToLower(body), strings.ToLower(want)) {
			t.Errorf("lesson page missing %q", want)
		}
	}

	conn := c.dial("/ws/lesson/hindi-beginner-1")

	send(t, conn, liveRequest{Type: msgToggleMetadata})
	if state := readState(t, conn); !state.MetadataVisible {
		t.Error("metadata should be visible after first toggle")
	}

	send(t, conn, liveRequest{Type: msgToggleMetadata})
	if state := readState(t, conn); state.MetadataVisible {
		t.Error("metadata should be hidden after second toggle")
	}
}

func TestLessonNotFoundScenario(t *testing.T) {
	c := setupServer(t)

	status, _, body := c.get("/lesson/does-not-exist")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if !strings.Contains(body, "Course Not Found") {
		t.Error("missing not-found message")
	}
	if !strings.Contains(body, `<a class="return" href="/">`) {
		t.Fatal("missing return action")
	}

	status, _, body = c.get("/")
	if status != http.StatusOK || !strings.Contains(body, "Select Your Module") {
		t.Errorf("return action did not reach the catalog (status %d)", status)
	}
}

func TestLiveLessonUnknownCourse(t *testing.T) {
	c := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(c.server.URL, "http") + "/ws/lesson/does-not-exist"
	_, resp, err := c.dialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatal("expected dial to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 handshake response, got %+v", resp)
	}
}

func TestThemeOutlivesNavigation(t *testing.T) {
	c := setupServer(t)

	c.get("/")
	conn := c.dial("/ws/shell")
	send(t, conn, liveRequest{Type: msgToggleTheme})
	if state := readState(t, conn); state.Theme != uistate.ThemeLight {
		t.Fatalf("theme = %q, want light", state.Theme)
	}

	_, _, body := c.get("/lesson/english-advanced-2")
	if !strings.Contains(body, `<html lang="en" class="light">`) {
		t.Error("lesson page lost the toggled theme")
	}

	_, _, body = c.get("/")
	if !strings.Contains(body, `<html lang="en" class="light">`) {
		t.Error("catalog page lost the toggled theme")
	}
}

func TestExplorerToggleRendersClosed(t *testing.T) {
	c := setupServer(t)

	conn := c.dial("/ws/shell")
	send(t, conn, liveRequest{Type: msgToggleExplorer})
	if state := readState(t, conn); state.ActivePanel != uistate.PanelNone {
		t.Fatalf("panel = %q, want none", state.ActivePanel)
	}

	_, _, body := c.get("/")
	if !strings.Contains(body, `<aside id="explorer" class="explorer" hidden>`) {
		t.Error("explorer should render closed")
	}
}

func TestLayoutIsPerLessonInstance(t *testing.T) {
	c := setupServer(t)

	first := c.dial("/ws/lesson/english-advanced-1")
	send(t, first, liveRequest{Type: msgSetLayout, Layout: string(uistate.LayoutStacked)})
	if state := readState(t, first); state.Layout != uistate.LayoutStacked {
		t.Fatalf("layout = %q, want stacked", state.Layout)
	}
	send(t, first, liveRequest{Type: msgSetLayout, Layout: string(uistate.LayoutStacked)})
	if state := readState(t, first); state.Layout != uistate.LayoutStacked {
		t.Errorf("repeated set_layout changed layout to %q", state.Layout)
	}

	second := c.dial("/ws/lesson/english-advanced-2")
	send(t, second, liveRequest{Type: msgSync})
	state := readState(t, second)
	if state.Layout != uistate.LayoutSideBySide || state.MetadataVisible {
		t.Errorf("new lesson view did not start from defaults: %+v", state)
	}
}

func TestHideMetadata(t *testing.T) {
	c := setupServer(t)

	conn := c.dial("/ws/lesson/english-advanced-4")
	send(t, conn, liveRequest{Type: msgToggleMetadata})
	readState(t, conn)
	send(t, conn, liveRequest{Type: msgHideMetadata})
	if state := readState(t, conn); state.MetadataVisible {
		t.Error("hide_metadata left the overlay visible")
	}
}

func TestLiveErrors(t *testing.T) {
	c := setupServer(t)

	tests := []struct {
		name string
		path string
		raw  string
		want string
	}{
		{"bad json", "/ws/shell", "{", "invalid message format"},
		{"unknown type", "/ws/shell", `{"type":"explode"}`, "unknown message type"},
		{"lesson message on catalog", "/ws/shell", `{"type":"toggle_metadata"}`, "only available in a lesson view"},
		{"invalid layout", "/ws/lesson/english-advanced-1", `{"type":"set_layout","layout":"grid"}`, "invalid layout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := c.dial(tt.path)
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
				t.Fatalf("write: %v", err)
			}
			var resp liveResponse
			if err := conn.ReadJSON(&resp); err != nil {
				t.Fatalf("read: %v", err)
			}
			if resp.Type != "error" {
				t.Fatalf("expected error, got %+v", resp)
			}
			if !strings.Contains(resp.Content, tt.want) {
				t.Errorf("content = %q, want it to contain %q", resp.Content, tt.want)
			}

			// The connection stays usable after an error.
			send(t, conn, liveRequest{Type: msgSync})
			readState(t, conn)
		})
	}
}

func TestLiveSurvivesSessionPrune(t *testing.T) {
	c := setupServer(t)
	ctx := context.Background()

	conn := c.dial("/ws/lesson/hindi-beginner-1")
	send(t, conn, liveRequest{Type: msgToggleTheme})
	readState(t, conn)
	send(t, conn, liveRequest{Type: msgToggleMetadata})
	readState(t, conn)

	if n, err := c.store.Prune(ctx, -time.Hour); err != nil || n != 1 {
		t.Fatalf("Prune = %d, %v; want 1 session removed", n, err)
	}

	send(t, conn, liveRequest{Type: msgToggleExplorer})
	state := readState(t, conn)
	if state.Theme != uistate.ThemeLight {
		t.Errorf("theme = %q, want light carried over the prune", state.Theme)
	}
	if state.ActivePanel != uistate.PanelNone {
		t.Errorf("panel = %q, want none", state.ActivePanel)
	}
	if !state.MetadataVisible {
		t.Error("lesson state lost across the prune")
	}

	// A read-only message after another prune restores the session too.
	if _, err := c.store.Prune(ctx, -time.Hour); err != nil {
		t.Fatalf("Prune: %v", err)
	}
	send(t, conn, liveRequest{Type: msgSync})
	if state := readState(t, conn); state.Theme != uistate.ThemeLight {
		t.Errorf("sync after prune: theme = %q, want light", state.Theme)
	}

	// The browser keeps its cookie, so the next page load sees the state.
	_, _, body := c.get("/")
	if !strings.Contains(body, `<html lang="en" class="light">`) {
		t.Error("restored session not bound to the existing cookie")
	}
}

func TestLiveSyncRefreshesSession(t *testing.T) {
	c := setupServer(t)
	ctx := context.Background()

	conn := c.dial("/ws/shell")
	time.Sleep(20 * time.Millisecond)
	send(t, conn, liveRequest{Type: msgSync})
	readState(t, conn)

	if n, _ := c.store.Prune(ctx, 10*time.Millisecond); n != 0 {
		t.Errorf("session used by an open page was pruned")
	}
}

func TestLiveWithoutSession(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	renderer, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	sh := New(c, session.NewManager(session.NewStore(database), testCookie), renderer, "")

	r := chi.NewRouter()
	r.Get("/ws/shell", sh.handleLive)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws/shell", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	var resp liveResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" {
		t.Fatalf("expected error without a session, got %+v", resp)
	}

	send(t, conn, liveRequest{Type: msgToggleTheme})
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || resp.State != nil {
		t.Errorf("toggle without a session reported %+v", resp)
	}
}

func TestLiveReconnectRestoresLessonState(t *testing.T) {
	c := setupServer(t)

	first := c.dial("/ws/lesson/english-advanced-3")
	send(t, first, liveRequest{Type: msgSetLayout, Layout: string(uistate.LayoutStacked)})
	readState(t, first)
	send(t, first, liveRequest{Type: msgToggleMetadata})
	before := readState(t, first)
	first.Close()

	// A reconnecting page replays its lesson state onto the fresh connection.
	second := c.dial("/ws/lesson/english-advanced-3")
	send(t, second, liveRequest{Type: msgSetLayout, Layout: string(before.Layout)})
	readState(t, second)
	send(t, second, liveRequest{Type: msgToggleMetadata})
	after := readState(t, second)
	if after != before {
		t.Errorf("state after reconnect = %+v, want %+v", after, before)
	}
}

func TestSessionEndpointsReachLive(t *testing.T) {
	c := setupServer(t)

	c.get("/")
	for _, path := range []string{"/api/session/theme", "/api/session/explorer"} {
		resp, err := c.http.Post(c.server.URL+path, "application/json", nil)
		if err != nil {
			t.Fatalf("POST %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("POST %s: status %d", path, resp.StatusCode)
		}
	}

	conn := c.dial("/ws/shell")
	send(t, conn, liveRequest{Type: msgSync})
	state := readState(t, conn)
	if state.Theme != uistate.ThemeLight || state.ActivePanel != uistate.PanelNone {
		t.Errorf("live channel did not see HTTP toggles: %+v", state)
	}
}

func TestLiveRejectsForeignOrigin(t *testing.T) {
	c := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(c.server.URL, "http") + "/ws/shell"
	hdr := http.Header{"Origin": []string{"http://evil.example"}}
	if _, _, err := c.dialer.Dial(wsURL, hdr); err == nil {
		t.Error("expected cross-origin handshake to be rejected")
	}
}

func TestLiveAcceptsTrustedOrigin(t *testing.T) {
	c := setupServer(t, "http://localhost:*")

	wsURL := "ws" + strings.TrimPrefix(c.server.URL, "http") + "/ws/shell"

	hdr := http.Header{"Origin": []string{"http://localhost:5173"}}
	conn, _, err := c.dialer.Dial(wsURL, hdr)
	if err != nil {
		t.Fatalf("expected trusted origin to connect: %v", err)
	}
	conn.Close()

	hdr = http.Header{"Origin": []string{"http://localhost.evil.example"}}
	if _, _, err := c.dialer.Dial(wsURL, hdr); err == nil {
		t.Error("expected non-matching origin to be rejected")
	}
}

func TestStaticAssets(t *testing.T) {
	c := setupServer(t)

	for _, path := range []string{"/static/shell.js", "/static/shell.css"} {
		status, _, body := c.get(path)
		if status != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, status)
		}
		if body == "" {
			t.Errorf("%s: empty body", path)
		}
	}
}

func TestShellScriptRecoversFromDisconnect(t *testing.T) {
	c := setupServer(t)

	_, _, body := c.get("/static/shell.js")
	for _, want := range []string{
		`addEventListener("close"`,
		`setTimeout(connect`,
		`"/api/session/theme"`,
		`"/api/session/explorer"`,
		`type: "set_layout", layout: replay.layout`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("shell.js missing %q", want)
		}
	}
}
