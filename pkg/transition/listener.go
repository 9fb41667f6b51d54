package transition

import (
	"log/slog"

	outleterrors "github.com/vango-dev/outlet/internal/errors"
)

// Listener runs the deepest matching outlet's capture on every pre-commit.
type Listener struct {
	router   Router
	registry *Registry
	logger   *slog.Logger
	observer Observer

	unsubscribe func()
}

// NewListener creates a listener. Both collaborators are required.
func NewListener(router Router, registry *Registry, opts ...Option) (*Listener, error) {
	if router == nil {
		return nil, outleterrors.New("E201").WithDetail("transition listener created without a router")
	}
	if registry == nil {
		return nil, outleterrors.New("E201").WithDetail("transition listener created without a registry")
	}
	o := buildOptions("transition-listener", opts)
	return &Listener{
		router:   router,
		registry: registry,
		logger:   o.logger,
		observer: o.observer,
	}, nil
}

// Attach subscribes to the router's pre-commit event. Repeated calls are
// no-ops.
func (l *Listener) Attach() {
	if l.unsubscribe != nil {
		return
	}
	l.unsubscribe = l.router.Subscribe(EventPreCommit, l.handlePreCommit)
}

// Detach removes the subscription.
func (l *Listener) Detach() {
	if l.unsubscribe == nil {
		return
	}
	l.unsubscribe()
	l.unsubscribe = nil
}

// Attached reports whether the listener is subscribed.
func (l *Listener) Attached() bool {
	return l.unsubscribe != nil
}

func (l *Listener) handlePreCommit(ev NavigationEvent) {
	if !ev.PathChanged || ev.From == ev.To {
		return
	}

	done := l.observer.PreCommit(ev.From, ev.To)
	e, ok := l.registry.Match(ev.To)
	if !ok {
		l.logger.Debug("no outlet owns destination", "from", ev.From, "to", ev.To)
		done("", false)
		return
	}

	l.logger.Debug("capturing outlet", "outlet", e.Path, "from", ev.From, "to", ev.To)
	e.Capture()
	done(e.Path, true)
}
