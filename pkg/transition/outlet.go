package transition

import (
	"log/slog"
	"strconv"
	"time"

	outleterrors "github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/vdom"
)

// Outlet is one mounted nested-view location. It registers a capture
// procedure under its resolved path and renders its live content together
// with the Snapshots still playing their exit animation.
type Outlet struct {
	router   Router
	registry *Registry
	routeID  string
	config   Config
	opts     options
	logger   *slog.Logger

	enterName string
	exitName  string
	css       string

	ownPath      string
	registration *Registration
	mounted      bool
	unmounted    bool

	// container is the live slot element produced by the last Render.
	container *vdom.VNode

	pending    []*Snapshot
	nextID     int
	generation int
	swappedAt  time.Time
}

// NewOutlet creates an outlet for the layout identified by routeID.
// Call Mount once the route tree can resolve routeID.
func NewOutlet(router Router, registry *Registry, routeID string, config Config, opts ...Option) (*Outlet, error) {
	if router == nil {
		return nil, outleterrors.New("E201").WithDetailf("outlet %s created without a router", routeID)
	}
	if registry == nil {
		return nil, outleterrors.New("E201").WithDetailf("outlet %s created without a registry", routeID)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.Normalize()

	o := buildOptions("outlet", opts)
	enter, exit := animationNames(routeID)
	return &Outlet{
		router:    router,
		registry:  registry,
		routeID:   routeID,
		config:    config,
		opts:      o,
		logger:    o.logger.With("route_id", routeID),
		enterName: enter,
		exitName:  exit,
		css:       stylesheet(enter, exit, config),
	}, nil
}

// Mount resolves the outlet's own path and registers its capture.
// The path is resolved exactly once; an outlet cannot be mounted twice.
func (o *Outlet) Mount() error {
	if o.mounted || o.unmounted {
		return outleterrors.New("E204").WithDetailf("outlet %s", o.routeID)
	}

	path, err := o.router.ResolveOwnPath(o.routeID)
	if err != nil {
		return outleterrors.New("E203").WithDetailf("route %s", o.routeID).Wrap(err)
	}

	reg, err := o.registry.Register(path, o.Capture)
	if err != nil {
		return err
	}

	o.ownPath = reg.Path()
	o.registration = reg
	o.mounted = true
	o.logger = o.logger.With("path", o.ownPath)
	o.logger.Debug("outlet mounted")
	return nil
}

// Capture freezes the live content into a new pending Snapshot. An empty
// container is not an error; nothing happens.
func (o *Outlet) Capture() {
	if !o.mounted {
		return
	}
	if o.container == nil || isEmptyContainer(o.container) {
		o.logger.Debug("capture skipped, container empty")
		return
	}

	var node *vdom.VNode
	switch o.config.Mode {
	case ModeMove:
		node = vdom.Fragment(o.container.DetachChildren())
	default:
		clones := make([]*vdom.VNode, 0, len(o.container.Children))
		for _, child := range o.container.Children {
			clones = append(clones, vdom.Clone(child))
		}
		node = vdom.Fragment(clones)
	}

	now := o.opts.clock.Now()
	snap := &Snapshot{
		ID:         o.nextID,
		Node:       node,
		Mode:       o.config.Mode,
		CapturedAt: now,
	}
	o.nextID++
	o.pending = append(o.pending, snap)
	o.generation++
	o.swappedAt = now
	o.armTimeout(snap)

	o.logger.Debug("snapshot queued", "snapshot_id", snap.ID, "mode", snap.Mode.String(), "pending", len(o.pending))
	o.opts.observer.SnapshotQueued(o.ownPath, snap.ID, snap.Mode)
	o.opts.onChange()
}

func (o *Outlet) armTimeout(snap *Snapshot) {
	timeout := o.config.EffectiveExitTimeout()
	if timeout <= 0 || o.opts.scheduler == nil {
		return
	}
	id := snap.ID
	snap.timer = o.opts.scheduler.AfterFunc(timeout, func() {
		if o.release(id, ReleaseTimeout) {
			o.logger.Warn("exit animation never completed, snapshot released", "snapshot_id", id)
			o.opts.onChange()
		}
	})
}

// Complete releases the Snapshot with the given id when its exit animation
// finishes. Unknown or already released ids are ignored.
func (o *Outlet) Complete(id int) bool {
	if !o.release(id, ReleaseCompleted) {
		return false
	}
	o.opts.onChange()
	return true
}

func (o *Outlet) release(id int, reason ReleaseReason) bool {
	for i, s := range o.pending {
		if s.ID != id {
			continue
		}
		s.stopTimer()
		o.pending = append(o.pending[:i], o.pending[i+1:]...)
		age := s.Age(o.opts.clock.Now())
		o.logger.Debug("snapshot released", "snapshot_id", id, "reason", reason.String(), "age", age)
		o.opts.observer.SnapshotReleased(o.ownPath, id, reason, age)
		return true
	}
	return false
}

// Unmount removes the registry entry and releases every pending Snapshot.
func (o *Outlet) Unmount() {
	if !o.mounted {
		return
	}
	o.registration.Release()
	for len(o.pending) > 0 {
		o.release(o.pending[0].ID, ReleaseTeardown)
	}
	o.container = nil
	o.mounted = false
	o.unmounted = true
	o.logger.Debug("outlet unmounted")
}

// Render wraps content in the outlet: a stylesheet, the live slot keyed by
// generation, then one overlay per pending Snapshot in capture order.
// Overlays carry data-snapshot; hosts report their animationend through
// Complete with that id.
func (o *Outlet) Render(content *vdom.VNode) *vdom.VNode {
	now := o.opts.clock.Now()

	liveStyle := map[string]string{}
	if o.generation > 0 {
		elapsed := now.Sub(o.swappedAt)
		if elapsed < o.config.Transition.Duration {
			liveStyle["animation"] = animation(o.enterName, o.config.Transition, elapsed)
		}
	}
	live := vdom.Div(
		vdom.Class("outlet-live"),
		vdom.Key("g"+strconv.Itoa(o.generation)),
		vdom.StyleMap(liveStyle),
		content,
	)
	o.container = live

	overlays := make([]*vdom.VNode, 0, len(o.pending))
	for _, s := range o.pending {
		id := s.ID
		overlays = append(overlays, vdom.Div(
			vdom.Class("outlet-exit"),
			vdom.Key("s"+strconv.Itoa(id)),
			vdom.Data("snapshot", strconv.Itoa(id)),
			vdom.Inert(),
			vdom.AriaHidden(true),
			vdom.StyleMap(map[string]string{
				"position":       "absolute",
				"inset":          "0",
				"pointer-events": "none",
				"animation":      animation(o.exitName, o.config.Transition, s.Age(now)),
			}),
			s.Node,
		))
	}

	return vdom.Div(
		vdom.Class("outlet"),
		vdom.Data("outlet", o.routeID),
		vdom.Data("path", o.ownPath),
		vdom.Data("instance", o.opts.instance),
		vdom.StyleMap(map[string]string{"position": "relative"}),
		vdom.Style(o.css),
		live,
		overlays,
	)
}

func isEmptyContainer(container *vdom.VNode) bool {
	for _, child := range container.Children {
		if !vdom.IsEmpty(child) {
			return false
		}
	}
	return true
}

// RouteID returns the route ID the outlet was created for.
func (o *Outlet) RouteID() string { return o.routeID }

// Instance returns the name set with WithInstance.
func (o *Outlet) Instance() string { return o.opts.instance }

// OwnPath returns the resolved path, empty before Mount.
func (o *Outlet) OwnPath() string { return o.ownPath }

// Generation returns the transition counter.
func (o *Outlet) Generation() int { return o.generation }

// Mode returns the fixed capture mode.
func (o *Outlet) Mode() Mode { return o.config.Mode }

// Config returns the normalized configuration.
func (o *Outlet) Config() Config { return o.config }

// Mounted reports whether the outlet is registered.
func (o *Outlet) Mounted() bool { return o.mounted }

// Pending returns a copy of the pending Snapshots in capture order.
func (o *Outlet) Pending() []Snapshot {
	out := make([]Snapshot, len(o.pending))
	for i, s := range o.pending {
		out[i] = *s
		out[i].timer = nil
	}
	return out
}
