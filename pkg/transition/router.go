package transition

// EventType identifies a navigation lifecycle event.
type EventType int

const (
	// EventPreCommit fires once per navigation attempt whose destination
	// differs from the current path, before any content is replaced.
	EventPreCommit EventType = iota

	// EventCommit fires after the router has switched to the destination.
	EventCommit
)

// String returns the event name.
func (e EventType) String() string {
	switch e {
	case EventPreCommit:
		return "pre-commit"
	case EventCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// NavigationEvent describes a navigation attempt.
type NavigationEvent struct {
	// From is the path being left.
	From string

	// To is the canonical destination path, without query string.
	To string

	// PathChanged is false for navigations that only touch the query.
	PathChanged bool
}

// Router is the navigation collaborator an outlet system needs.
type Router interface {
	// CurrentPath returns the committed path.
	CurrentPath() string

	// Subscribe registers handler for event. Pre-commit handlers run
	// synchronously before the router replaces content. The returned
	// function removes the subscription.
	Subscribe(event EventType, handler func(NavigationEvent)) (unsubscribe func())

	// ResolveOwnPath returns the concrete path of the route segment
	// identified by routeID under the current match.
	ResolveOwnPath(routeID string) (string, error)
}
