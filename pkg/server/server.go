package server

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.uber.org/atomic"

	"github.com/vango-dev/outlet/pkg/render"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/vdom"
)

const (
	// SocketPath is the WebSocket endpoint sessions connect to.
	SocketPath = "/_outlet/ws"

	// ClientScriptPath serves the embedded browser client.
	ClientScriptPath = "/_outlet/client.js"

	// MetricsPath serves Prometheus metrics when ServerConfig.Metrics is set.
	MetricsPath = "/metrics"
)

// Server is the HTTP/WebSocket host. It serves the HTML shell for every
// route and runs one Session per WebSocket connection.
type Server struct {
	config   *ServerConfig
	mux      *chi.Mux
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	sessions map[string]*Session
	active   atomic.Int64

	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a Server. config.Router is required; zero fields take the
// values of DefaultServerConfig.
func New(config *ServerConfig) (*Server, error) {
	if config == nil || config.Router == nil {
		return nil, ErrNoRouter
	}
	config = config.withDefaults()

	s := &Server{
		config:   config,
		sessions: make(map[string]*Session),
		logger:   config.Logger.With("component", "server"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
	}
	s.mux = s.routes()
	return s, nil
}

func (s *Server) routes() *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)

	if s.config.Metrics != nil {
		mux.Method(http.MethodGet, MetricsPath, s.config.Metrics.Handler())
	}
	mux.Get(SocketPath, s.HandleWebSocket)
	mux.Get(ClientScriptPath, s.serveThinClient)
	mux.Head(ClientScriptPath, s.serveThinClient)
	mux.Get("/*", s.servePage)
	return mux
}

// Handler returns the HTTP handler for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// servePage renders the HTML shell with the route's static content. The
// client replaces it with the first live frame once the socket opens.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	var tree *vdom.VNode
	if m, ok := s.config.Router.Match(r.URL.Path); ok {
		tree = staticTree(m)
	} else {
		status = http.StatusNotFound
		tree = notFoundPage(s.config.Router)
	}

	renderer := render.NewRenderer(render.RendererConfig{})
	body, err := renderer.RenderToString(tree)
	if err != nil {
		s.logger.Error("page render failed",
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := renderer.RenderPage(w, render.PageData{
		Title:        s.config.Title,
		Styles:       s.config.Styles,
		Body:         body,
		ClientScript: ClientScriptPath,
		SocketPath:   SocketPath,
	}); err != nil {
		s.logger.Debug("page write failed", "error", err)
	}
}

// staticTree composes a match without outlets.
func staticTree(m *router.MatchResult) *vdom.VNode {
	content := m.Page(m.Params)
	for i := len(m.Layouts) - 1; i >= 0; i-- {
		content = m.Layouts[i].Handler(m.Params, content)
	}
	return content
}

// HandleWebSocket upgrades the connection and starts a Session on
// initialPath(r).
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	if limit := s.config.MaxSessions; limit > 0 && s.active.Load() >= int64(limit) {
		s.logger.Warn("session rejected", "error", ErrMaxSessionsReached)
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		if s.config.Metrics != nil {
			s.config.Metrics.RecordWebSocketError("upgrade")
		}
		return
	}

	session, err := newSession(conn, s.config.Router, s.config.SessionConfig, s.config.Metrics, s.config.Tracing, s.logger)
	if err != nil {
		s.logger.Error("session setup failed", "error", err)
		conn.Close()
		return
	}
	s.track(session)

	session.QueueMessage(ClientMessage{Type: MsgNavigate, Path: initialPath(r), Replace: true})
	session.Start()

	s.logger.Info("session started",
		"session_id", session.ID,
		"request_id", middleware.GetReqID(r.Context()),
		"remote", r.RemoteAddr)
}

// initialPath returns the path a new session starts on: the "path" query
// parameter, else the path of a same-host Referer, else "/".
func initialPath(r *http.Request) string {
	if path := r.URL.Query().Get("path"); path != "" {
		return path
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host && ref.Path != "" {
		if ref.RawQuery != "" {
			return ref.Path + "?" + ref.RawQuery
		}
		return ref.Path
	}
	return "/"
}

func (s *Server) track(session *Session) {
	session.onClose = s.untrack

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.active.Inc()
	if s.config.Metrics != nil {
		s.config.Metrics.RecordSessionOpen()
	}
}

func (s *Server) untrack(session *Session) {
	s.mu.Lock()
	_, ok := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mu.Unlock()

	if !ok {
		return
	}
	s.active.Dec()
	if s.config.Metrics != nil {
		s.config.Metrics.RecordSessionClose()
	}
}

// Session returns the live session with the given ID, or nil.
func (s *Server) Session(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

// ActiveSessions returns the number of connected sessions.
func (s *Server) ActiveSessions() int64 {
	return s.active.Load()
}

// Run starts the server and blocks until shutdown.
func (s *Server) Run() error {
	s.httpServer = &http.Server{
		Addr:    s.config.Address,
		Handler: s,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every session and then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.RLock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.RUnlock()
	for _, session := range sessions {
		session.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Config returns the effective configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}
