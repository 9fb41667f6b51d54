package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/telemetry"
	"github.com/vango-dev/outlet/pkg/transition"
)

// TransitionFunc returns the transition configuration for a layout route ID.
type TransitionFunc func(routeID string) (transition.Config, error)

// SessionConfig holds per-session settings.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a client message. The
	// WriteLoop pings well inside this window to keep idle connections open.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout bounds a single WebSocket write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// HeartbeatInterval is the interval between pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize limits incoming messages in bytes.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the capacity of the event and dispatch queues.
	// Default: 256.
	MaxEventQueue int

	// Duplicates is the registry policy for two outlets resolving to the
	// same path. Default: transition.DuplicateFail.
	Duplicates transition.DuplicatePolicy

	// Transitions returns the configuration for each outlet.
	// Default: transition.DefaultConfig for every route.
	Transitions TransitionFunc
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
		Duplicates:        transition.DuplicateFail,
		Transitions: func(string) (transition.Config, error) {
			return transition.DefaultConfig(), nil
		},
	}
}

// Clone returns a copy of the SessionConfig.
func (c *SessionConfig) Clone() *SessionConfig {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// ServerConfig holds server-wide settings.
type ServerConfig struct {
	// Address is the listen address.
	// Default: ":3000".
	Address string

	// Title is the document title of the HTML shell.
	Title string

	// Styles are inline stylesheets added to the HTML shell.
	Styles []string

	// Router is the route tree every session navigates. Required.
	Router *router.Router

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	// Default: 4096.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin is called to validate the WebSocket request origin.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	// SessionConfig is the configuration for individual sessions.
	// Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// MaxSessions is the maximum number of concurrent sessions.
	// 0 means no limit.
	MaxSessions int

	// Metrics, when set, receives transition and transport metrics and is
	// served on /metrics.
	Metrics *telemetry.Metrics

	// Tracing, when set, records a span per navigation.
	Tracing *telemetry.Tracing

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:         ":3000",
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
		SessionConfig:   DefaultSessionConfig(),
		ShutdownTimeout: 30 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() *ServerConfig {
	d := DefaultServerConfig()
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}

	sc := d.SessionConfig
	if c.SessionConfig != nil {
		sc = c.SessionConfig.Clone()
		ds := DefaultSessionConfig()
		if sc.ReadTimeout == 0 {
			sc.ReadTimeout = ds.ReadTimeout
		}
		if sc.WriteTimeout == 0 {
			sc.WriteTimeout = ds.WriteTimeout
		}
		if sc.HeartbeatInterval == 0 {
			sc.HeartbeatInterval = ds.HeartbeatInterval
		}
		if sc.MaxMessageSize == 0 {
			sc.MaxMessageSize = ds.MaxMessageSize
		}
		if sc.MaxEventQueue == 0 {
			sc.MaxEventQueue = ds.MaxEventQueue
		}
		if sc.Transitions == nil {
			sc.Transitions = ds.Transitions
		}
	}
	out.SessionConfig = sc
	return &out
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}

	host := r.Host
	if host == "" {
		return false
	}
	return originURL.Host == host
}
