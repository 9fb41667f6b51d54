package navigation

import (
	"fmt"
	"log/slog"

	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/router"
	"github.com/vango-dev/outlet/pkg/transition"
)

// Navigator tracks the current route of one session and notifies
// subscribers around every path change. It is not safe for concurrent use;
// the session's event loop drives it.
type Navigator struct {
	router *router.Router
	logger *slog.Logger

	currentPath string
	query       string
	match       *router.MatchResult
	params      router.Params

	subscribers map[transition.EventType][]*subscription
	nextSubID   int
}

type subscription struct {
	id      int
	handler func(transition.NavigationEvent)
}

var _ transition.Router = (*Navigator)(nil)

// Option configures a Navigator.
type Option func(*Navigator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		n.logger = logger
	}
}

// New creates a navigator over r. No path is committed until the first
// Navigate.
func New(r *router.Router, opts ...Option) *Navigator {
	n := &Navigator{
		router:      r,
		params:      router.Params{},
		subscribers: make(map[transition.EventType][]*subscription),
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.logger == nil {
		n.logger = slog.Default()
	}
	n.logger = n.logger.With("component", "navigator")
	return n
}

// Result describes a completed navigation.
type Result struct {
	// Path is the canonical path, without query string.
	Path string

	// Query is the query string without "?".
	Query string

	// URL is Path plus query, suitable for history entries.
	URL string

	// PathChanged is false when only the query changed.
	PathChanged bool

	// Matched is false when no page matched and the not-found page, if
	// any, is shown.
	Matched bool

	// Replace reports whether the history entry should be replaced. It is
	// forced when canonicalization changed the requested path.
	Replace bool
}

// Navigate canonicalizes path and commits it. When the path differs from
// the current one, EventPreCommit is published first, synchronously, while
// the old match is still current; then the new match is committed and
// EventCommit is published.
func (n *Navigator) Navigate(path string, replace bool) (*Result, error) {
	canon, err := routepath.CanonicalizePath(path)
	if err != nil {
		return nil, fmt.Errorf("navigate %q: %w", path, err)
	}

	res := &Result{
		Path:    canon.Path,
		Query:   canon.Query,
		URL:     canon.Path,
		Replace: replace || canon.Changed,
	}
	if canon.Query != "" {
		res.URL += "?" + canon.Query
	}

	if n.currentPath == canon.Path {
		n.query = canon.Query
		res.Matched = n.match != nil
		return res, nil
	}

	ev := transition.NavigationEvent{
		From:        n.currentPath,
		To:          canon.Path,
		PathChanged: true,
	}
	n.publish(transition.EventPreCommit, ev)

	m, ok := n.router.Match(canon.Path)
	n.currentPath = canon.Path
	n.query = canon.Query
	if ok {
		n.match = m
		n.params = m.Params
	} else {
		n.match = nil
		n.params = router.Params{}
		n.logger.Debug("no route matched", "path", canon.Path)
	}
	res.PathChanged = true
	res.Matched = ok

	n.publish(transition.EventCommit, ev)
	return res, nil
}

// CurrentPath returns the committed path, or "" before the first Navigate.
func (n *Navigator) CurrentPath() string {
	return n.currentPath
}

// Query returns the committed query string.
func (n *Navigator) Query() string {
	return n.query
}

// Match returns the committed route match, nil when nothing matched.
func (n *Navigator) Match() *router.MatchResult {
	return n.match
}

// Params returns the committed route params.
func (n *Navigator) Params() router.Params {
	return n.params
}

// ResolveOwnPath resolves a layout route ID against the committed params.
func (n *Navigator) ResolveOwnPath(routeID string) (string, error) {
	if !n.router.HasLayout(routeID) {
		return "", fmt.Errorf("no layout registered for route %q", routeID)
	}
	return router.ResolvePath(routeID, n.params)
}

// Subscribe registers handler for event and returns a function removing it.
func (n *Navigator) Subscribe(event transition.EventType, handler func(transition.NavigationEvent)) func() {
	n.nextSubID++
	sub := &subscription{id: n.nextSubID, handler: handler}
	n.subscribers[event] = append(n.subscribers[event], sub)

	return func() {
		subs := n.subscribers[event]
		for i, s := range subs {
			if s.id == sub.id {
				n.subscribers[event] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// SubscriberCount returns how many handlers are subscribed to event.
func (n *Navigator) SubscriberCount(event transition.EventType) int {
	return len(n.subscribers[event])
}

func (n *Navigator) publish(event transition.EventType, ev transition.NavigationEvent) {
	subs := append([]*subscription(nil), n.subscribers[event]...)
	for _, s := range subs {
		s.handler(ev)
	}
}
