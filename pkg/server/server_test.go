package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/outlet/pkg/telemetry"
)

func newTestServer(t *testing.T, metrics *telemetry.Metrics) (*Server, *httptest.Server) {
	t.Helper()
	s, err := New(&ServerConfig{
		Title:   "Test",
		Router:  testRoutes(),
		Metrics: metrics,
		Logger:  discardLogger(),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + SocketPath + "?path=" + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	return msg
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before deadline")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNewRequiresRouter(t *testing.T) {
	if _, err := New(&ServerConfig{}); !errors.Is(err, ErrNoRouter) {
		t.Errorf("New() error = %v, want ErrNoRouter", err)
	}
	if _, err := New(nil); !errors.Is(err, ErrNoRouter) {
		t.Errorf("New(nil) error = %v, want ErrNoRouter", err)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	s, err := New(&ServerConfig{Router: testRoutes(), SessionConfig: &SessionConfig{MaxEventQueue: 8}})
	if err != nil {
		t.Fatal(err)
	}
	cfg := s.Config()
	if cfg.Address != ":3000" {
		t.Errorf("Address = %q, want :3000", cfg.Address)
	}
	if cfg.SessionConfig.MaxEventQueue != 8 {
		t.Errorf("MaxEventQueue = %d, want 8", cfg.SessionConfig.MaxEventQueue)
	}
	if cfg.SessionConfig.ReadTimeout != 60*time.Second {
		t.Errorf("ReadTimeout = %v, want 60s", cfg.SessionConfig.ReadTimeout)
	}
	if cfg.SessionConfig.Transitions == nil {
		t.Error("Transitions default not applied")
	}
}

func TestServePage(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/app/settings/general")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	html := string(body)
	for _, want := range []string{
		"<title>Test</title>",
		"General Settings",
		`src="/_outlet/client.js"`,
		`data-socket="/_outlet/ws"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestServePageNotFound(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServeThinClient(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + ClientScriptPath)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		t.Fatalf("status = %d, body %d bytes", resp.StatusCode, len(body))
	}
	etag := resp.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+ClientScriptPath, nil)
	req.Header.Set("If-None-Match", "W/"+etag)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotModified {
		t.Errorf("status = %d, want 304", resp.StatusCode)
	}
}

func TestEtagMatches(t *testing.T) {
	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{`"abc"`, true},
		{`W/"abc"`, true},
		{`"x", "abc"`, true},
		{`"x"`, false},
	}
	for _, tt := range tests {
		if got := etagMatches(tt.header, `"abc"`); got != tt.want {
			t.Errorf("etagMatches(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestWebSocketNavigationFrames(t *testing.T) {
	metrics := telemetry.NewMetrics()
	s, ts := newTestServer(t, metrics)

	conn := dial(t, ts, "/app")

	first := readFrame(t, conn)
	if first.Type != MsgRender || first.URL != "/app" || !first.Replace {
		t.Fatalf("first frame = %+v", first)
	}
	if !strings.Contains(first.HTML, "Home") {
		t.Errorf("first frame html = %q", first.HTML)
	}
	waitFor(t, func() bool { return s.ActiveSessions() == 1 })

	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, Path: "/app/settings/general"}); err != nil {
		t.Fatal(err)
	}
	second := readFrame(t, conn)
	if second.URL != "/app/settings/general" || second.Replace {
		t.Errorf("second frame = %+v", second)
	}
	if !strings.Contains(second.HTML, `data-snapshot="0"`) {
		t.Errorf("second frame should carry the exiting Home overlay:\n%s", second.HTML)
	}

	if n, err := testutil.GatherAndCount(metrics.Registry(), "outlet_captures_total"); err != nil || n != 1 {
		t.Errorf("captures series = %d (%v), want 1", n, err)
	}

	conn.Close()
	waitFor(t, func() bool { return s.ActiveSessions() == 0 })
}

func TestWebSocketCompletionRerenders(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/app")
	readFrame(t, conn)

	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, Path: "/app/settings/general"}); err != nil {
		t.Fatal(err)
	}
	frame := readFrame(t, conn)

	instance, snapshot := overlayRef(t, frame.HTML, "/app")
	if err := conn.WriteJSON(ClientMessage{Type: MsgComplete, Outlet: instance, Snapshot: snapshot}); err != nil {
		t.Fatal(err)
	}
	after := readFrame(t, conn)
	if strings.Contains(after.HTML, "data-snapshot") {
		t.Errorf("overlay still present after completion:\n%s", after.HTML)
	}
}

func TestWebSocketWithoutPathRendersRoot(t *testing.T) {
	_, ts := newTestServer(t, nil)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + SocketPath
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error: %v", err)
	}
	resp.Body.Close()
	defer conn.Close()

	first := readFrame(t, conn)
	if first.Type != MsgRender || first.URL != "/" {
		t.Errorf("first frame = %+v, want a render of /", first)
	}
}

func TestInitialPath(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		referer string
		want    string
	}{
		{"query", "/_outlet/ws?path=/app/settings/general", "", "/app/settings/general"},
		{"query wins", "/_outlet/ws?path=/app", "http://example.com/app/projects/1", "/app"},
		{"referer", "/_outlet/ws", "http://example.com/app/projects/1?tab=2", "/app/projects/1?tab=2"},
		{"foreign referer", "/_outlet/ws", "http://other.test/app", "/"},
		{"bare", "/_outlet/ws", "", "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			if got := initialPath(r); got != tt.want {
				t.Errorf("initialPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWebSocketBadPathReportsError(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/app")
	readFrame(t, conn)

	if err := conn.WriteJSON(ClientMessage{Type: MsgNavigate, Path: "/../etc"}); err != nil {
		t.Fatal(err)
	}
	msg := readFrame(t, conn)
	if msg.Type != MsgError || msg.Message == "" {
		t.Errorf("message = %+v, want an error", msg)
	}
}

func TestMaxSessions(t *testing.T) {
	s, err := New(&ServerConfig{Router: testRoutes(), MaxSessions: 1, Logger: discardLogger()})
	if err != nil {
		t.Fatal(err)
	}
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	dial(t, ts, "/app")
	waitFor(t, func() bool { return s.ActiveSessions() == 1 })

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + SocketPath
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("second Dial() succeeded, want rejection")
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("response = %v, want 503", resp)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, telemetry.NewMetrics())

	resp, err := http.Get(ts.URL + MetricsPath)
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	for _, want := range []string{"outlet_active_sessions 0", "outlet_frames_sent_total 0"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	s, ts := newTestServer(t, nil)
	dial(t, ts, "/app")
	waitFor(t, func() bool { return s.ActiveSessions() == 1 })

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error: %v", err)
	}
	if s.ActiveSessions() != 0 {
		t.Errorf("ActiveSessions() = %d, want 0", s.ActiveSessions())
	}
}

// overlayRef extracts the instance of the outlet for routeID and the
// snapshot id of the first exit overlay in html.
func overlayRef(t *testing.T, html, routeID string) (string, int) {
	t.Helper()
	i := strings.Index(html, `class="outlet-exit"`)
	if i < 0 {
		t.Fatalf("no overlay in frame:\n%s", html)
	}
	snapshot, err := strconv.Atoi(attrValue(t, html[i:], "data-snapshot"))
	if err != nil {
		t.Fatal(err)
	}
	k := strings.Index(html, `data-outlet="`+routeID+`"`)
	if k < 0 {
		t.Fatalf("no outlet for %s:\n%s", routeID, html)
	}
	start := strings.LastIndex(html[:k], "<div")
	return attrValue(t, html[start:], "data-instance"), snapshot
}

func attrValue(t *testing.T, html, name string) string {
	t.Helper()
	j := strings.Index(html, name+`="`)
	if j < 0 {
		t.Fatalf("no %s in:\n%s", name, html)
	}
	rest := html[j+len(name)+2:]
	return rest[:strings.IndexByte(rest, '"')]
}
