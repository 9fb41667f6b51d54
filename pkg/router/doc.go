// Package router matches request paths against a radix tree of pages and
// nested layouts.
//
// Patterns use static segments, ":param" segments and a trailing
// "*catchall" segment. Every layout is identified by its pattern, which
// doubles as its route ID:
//
//	r := router.NewRouter()
//	r.Layout("/app/settings", settingsLayout)
//	r.Page("/app/settings/profile", profilePage)
//
//	m, ok := r.Match("/app/settings/profile")
//	// m.Layouts[0].RouteID == "/app/settings"
//
// ResolvePath turns a route ID back into a concrete path using the params
// of the current match, which is how a layout learns the subtree it owns.
package router
