// Package transition animates the content of nested outlets when
// navigation replaces it.
//
// Three pieces cooperate:
//
//   - A Registry maps the resolved path of every mounted Outlet to its
//     capture procedure. It belongs to one navigation system (one session)
//     and is never shared.
//   - A Listener subscribes to the router's pre-commit event, finds the
//     deepest registered outlet whose path is an ancestor of the
//     destination, and runs its capture synchronously, before the router
//     swaps any content.
//   - An Outlet freezes its current content into a Snapshot when captured
//     and renders every pending Snapshot as an overlay playing the exit
//     animation, on top of the live slot playing the enter animation.
//     Snapshots are released by id when their animation ends.
//
// Typical wiring inside a session:
//
//	registry := transition.NewRegistry()
//	listener, err := transition.NewListener(nav, registry)
//	listener.Attach()
//
//	outlet, err := transition.NewOutlet(nav, registry, "/app/settings", transition.Fade())
//	err = outlet.Mount()
//	tree := outlet.Render(content)
//
// Nothing in this package locks. Registry, Listener and Outlet must be
// driven from a single goroutine, the session's event loop; timers reach
// that goroutine through a Scheduler.
package transition
