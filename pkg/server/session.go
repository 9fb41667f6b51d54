package server

import (
	"encoding/json"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/vango-dev/outlet/pkg/navigation"
	"github.com/vango-dev/outlet/pkg/render"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/telemetry"
	"github.com/vango-dev/outlet/pkg/transition"
	"github.com/vango-dev/outlet/pkg/vdom"
)

// Session is one connected browser tab. It owns a navigation system (a
// Navigator, a Registry and a Listener) and the outlets mounted for the
// current layout chain. All of that state is confined to EventLoop.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	lastActive atomic.Time

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	// Navigation system, owned by the event loop
	router    *router.Router
	nav       *navigation.Navigator
	registry  *transition.Registry
	listener  *transition.Listener
	observer  transition.Observer
	scheduler transition.Scheduler
	outlets   map[string]*transition.Outlet // outletKey(routeID, path) -> outlet
	mounts    uint64                        // names outlet instances
	handlers  map[string]any                // HID_onevent -> handler
	dirty     bool

	// Channels
	messages   chan ClientMessage // Incoming client messages
	dispatchCh chan func()        // Functions to run on the event loop
	done       chan struct{}      // Shutdown signal

	config  *SessionConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
	onClose func(*Session)

	// Counters
	messageCount atomic.Uint64
	frameCount   atomic.Uint64
	bytesSent    atomic.Uint64
	bytesRecv    atomic.Uint64
}

// newSession creates a session for conn and wires its navigation system.
// conn may be nil in tests that drive the loop directly.
func newSession(conn *websocket.Conn, r *router.Router, config *SessionConfig, metrics *telemetry.Metrics, tracing *telemetry.Tracing, logger *slog.Logger) (*Session, error) {
	id := uuid.NewString()
	now := time.Now()

	s := &Session{
		ID:         id,
		CreatedAt:  now,
		conn:       conn,
		router:     r,
		outlets:    make(map[string]*transition.Outlet),
		handlers:   make(map[string]any),
		messages:   make(chan ClientMessage, config.MaxEventQueue),
		dispatchCh: make(chan func(), config.MaxEventQueue),
		done:       make(chan struct{}),
		config:     config,
		metrics:    metrics,
		logger:     logger.With("session_id", id),
	}
	s.lastActive.Store(now)

	var observers []transition.Observer
	if metrics != nil {
		observers = append(observers, metrics)
	}
	if tracing != nil {
		observers = append(observers, tracing.ForSession(id))
	}
	s.observer = transition.Observers(observers...)

	s.scheduler = transition.SchedulerFunc(func(d time.Duration, f func()) transition.Timer {
		return time.AfterFunc(d, func() { s.Dispatch(f) })
	})

	s.nav = navigation.New(r, navigation.WithLogger(s.logger))
	s.registry = transition.NewRegistry(
		transition.WithDuplicatePolicy(config.Duplicates),
		transition.WithRegistryLogger(s.logger),
	)
	listener, err := transition.NewListener(s.nav, s.registry,
		transition.WithLogger(s.logger),
		transition.WithObserver(s.observer),
	)
	if err != nil {
		return nil, NewSessionError(id, "listener", err)
	}
	listener.Attach()
	s.listener = listener

	if conn != nil {
		conn.SetReadLimit(config.MaxMessageSize)
	}
	return s, nil
}

// handleMessage applies one client message on the event loop.
func (s *Session) handleMessage(msg ClientMessage) {
	s.messageCount.Inc()

	switch msg.Type {
	case MsgNavigate:
		res, err := s.nav.Navigate(msg.Path, msg.Replace)
		if err != nil {
			s.logger.Warn("navigation rejected", "path", msg.Path, "error", err)
			s.sendError(err.Error())
			return
		}
		s.sendFrame(res.URL, res.Replace)

	case MsgEvent:
		if err := s.handleEvent(msg.HID, msg.Name); err != nil {
			s.logger.Debug("event dropped", "hid", msg.HID, "event", msg.Name, "error", err)
			return
		}
		s.flush()

	case MsgComplete:
		if err := s.completeSnapshot(msg.Outlet, msg.Snapshot); err != nil {
			s.logger.Debug("completion dropped", "outlet", msg.Outlet, "snapshot_id", msg.Snapshot, "error", err)
			return
		}
		s.flush()

	default:
		s.logger.Warn("unknown message type", "type", msg.Type)
	}
}

// handleEvent runs the handler bound to hid for the named DOM event.
func (s *Session) handleEvent(hid, name string) error {
	key := hid + "_on" + strings.ToLower(name)
	handler, ok := s.handlers[key]
	if !ok {
		return ErrHandlerNotFound
	}
	return s.safeExecute(hid, name, func() {
		switch fn := handler.(type) {
		case func():
			fn()
		case func(vdom.Event):
			fn(vdom.Event{Name: name, HID: hid})
		}
	})
}

// completeSnapshot releases snapshot id on the outlet instance that
// rendered it. Instances are never reused within a session, so a late
// report cannot reach a different outlet.
func (s *Session) completeSnapshot(instance string, id int) error {
	for _, o := range s.outlets {
		if o.Instance() != instance {
			continue
		}
		if !o.Complete(id) {
			return ErrSnapshotNotFound
		}
		return nil
	}
	return ErrOutletNotFound
}

// safeExecute runs fn and converts a panic into a HandlerError.
func (s *Session) safeExecute(hid, name string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("handler panic",
				"hid", hid,
				"event", name,
				"panic", r,
				"stack", string(debug.Stack()))
			err = &HandlerError{SessionID: s.ID, HID: hid, Event: name, Panic: r}
		}
	}()
	fn()
	return nil
}

// markDirty schedules a re-render at the end of the current loop step.
func (s *Session) markDirty() {
	s.dirty = true
}

// flush sends a frame when something changed since the last one.
func (s *Session) flush() {
	if !s.dirty {
		return
	}
	s.sendFrame(s.currentURL(), true)
}

func (s *Session) currentURL() string {
	url := s.nav.CurrentPath()
	if q := s.nav.Query(); q != "" {
		url += "?" + q
	}
	return url
}

// sendFrame renders the committed route and sends it to the client.
func (s *Session) sendFrame(url string, replace bool) {
	html, err := s.renderFrame()
	if err != nil {
		s.logger.Error("render failed", "error", err)
		return
	}
	if err := s.send(ServerMessage{Type: MsgRender, HTML: html, URL: url, Replace: replace}); err != nil {
		s.logger.Error("frame send failed", "error", err)
		return
	}
	s.frameCount.Inc()
	if s.metrics != nil {
		s.metrics.RecordFrame()
	}
}

// renderFrame composes the committed route and renders it, replacing the
// handler table.
func (s *Session) renderFrame() (string, error) {
	content := s.compose()
	r := render.NewRenderer(render.RendererConfig{})
	html, err := r.RenderToString(content)
	if err != nil {
		return "", err
	}
	s.handlers = r.Handlers()
	s.dirty = false
	return html, nil
}

// compose builds the tree for the committed match: the page, wrapped from
// the innermost layout outwards in each layout's outlet and then the
// layout itself.
func (s *Session) compose() *vdom.VNode {
	m := s.nav.Match()
	if m == nil {
		s.syncOutlets(nil)
		return notFoundPage(s.router)
	}

	chain := s.syncOutlets(m.Layouts)
	content := m.Page(m.Params)
	for i := len(m.Layouts) - 1; i >= 0; i-- {
		if o := chain[i]; o != nil {
			content = o.Render(content)
		}
		content = m.Layouts[i].Handler(m.Params, content)
	}
	return content
}

// syncOutlets returns one outlet per layout, mounting outlets for layouts
// that entered the chain and unmounting those that left it. A nil entry
// means the layout renders without transitions.
func (s *Session) syncOutlets(layouts []router.MatchedLayout) []*transition.Outlet {
	keys := make([]string, len(layouts))
	wanted := make(map[string]bool, len(layouts))
	for i, layout := range layouts {
		path, err := s.nav.ResolveOwnPath(layout.RouteID)
		if err != nil {
			s.logger.Warn("outlet path unresolved", "route_id", layout.RouteID, "error", err)
			continue
		}
		keys[i] = outletKey(layout.RouteID, path)
		wanted[keys[i]] = true
	}

	// Unmount first so a replacement can claim the same path.
	for key, o := range s.outlets {
		if !wanted[key] {
			o.Unmount()
			delete(s.outlets, key)
		}
	}

	chain := make([]*transition.Outlet, len(layouts))
	for i, layout := range layouts {
		if keys[i] == "" {
			continue
		}
		o, ok := s.outlets[keys[i]]
		if !ok {
			var err error
			o, err = s.mountOutlet(layout.RouteID)
			if err != nil {
				s.logger.Error("outlet mount failed", "route_id", layout.RouteID, "error", err)
				continue
			}
			s.outlets[keys[i]] = o
		}
		chain[i] = o
	}
	return chain
}

func (s *Session) mountOutlet(routeID string) (*transition.Outlet, error) {
	cfg, err := s.config.Transitions(routeID)
	if err != nil {
		return nil, err
	}
	s.mounts++
	o, err := transition.NewOutlet(s.nav, s.registry, routeID, cfg,
		transition.WithInstance(strconv.FormatUint(s.mounts, 10)),
		transition.WithLogger(s.logger),
		transition.WithObserver(s.observer),
		transition.WithScheduler(s.scheduler),
		transition.WithOnChange(s.markDirty),
	)
	if err != nil {
		return nil, err
	}
	if err := o.Mount(); err != nil {
		return nil, err
	}
	return o, nil
}

func outletKey(routeID, path string) string {
	return routeID + "|" + path
}

func notFoundPage(r *router.Router) *vdom.VNode {
	if h := r.NotFound(); h != nil {
		return h(router.Params{})
	}
	return vdom.Div(vdom.Class("not-found"), vdom.H1("Not Found"))
}

// send writes msg as one text frame.
func (s *Session) send(msg ServerMessage) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.conn == nil {
		return ErrNoConnection
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		if s.metrics != nil {
			s.metrics.RecordWebSocketError("write")
		}
		return err
	}
	s.bytesSent.Add(uint64(len(data)))
	return nil
}

func (s *Session) sendError(message string) {
	if err := s.send(ServerMessage{Type: MsgError, Message: message}); err != nil {
		s.logger.Debug("error send failed", "error", err)
	}
}

// teardown dismantles the navigation system. It runs on the event loop
// after the session is closed.
func (s *Session) teardown() {
	for key, o := range s.outlets {
		o.Unmount()
		delete(s.outlets, key)
	}
	s.listener.Detach()
	s.registry.Reset()
	s.handlers = nil
}

// Close gracefully closes the session.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	if s.conn != nil {
		s.mu.Lock()
		s.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second),
		)
		s.conn.Close()
		s.mu.Unlock()
	}

	s.logger.Info("session closed",
		"messages", s.messageCount.Load(),
		"frames", s.frameCount.Load(),
		"bytes_sent", s.bytesSent.Load(),
		"bytes_recv", s.bytesRecv.Load())

	if s.onClose != nil {
		s.onClose(s)
	}
}

// IsClosed returns whether the session is closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LastActive returns the time of the last client message.
func (s *Session) LastActive() time.Time {
	return s.lastActive.Load()
}

// QueueMessage queues a client message for the event loop.
func (s *Session) QueueMessage(msg ClientMessage) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.messages <- msg:
		return nil
	default:
		s.logger.Warn("message queue full, dropping message", "type", msg.Type)
		return ErrEventQueueFull
	}
}

// Dispatch queues a function to run on the session's event loop. It is
// safe to call from any goroutine; exit-timeout timers use it to release
// snapshots on the loop that owns them.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	default:
		s.logger.Warn("dispatch queue full, discarding callback")
	}
}
