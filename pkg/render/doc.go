// Package render turns vdom trees into HTML.
//
// The renderer escapes text and attribute values, writes attributes in a
// stable order, and tags every element that carries an event handler with
// a data-hid attribute. The handlers themselves never reach the HTML; they
// are collected into a table keyed by "hid_event" that the session uses to
// route client events back to Go code:
//
//	r := render.NewRenderer(render.RendererConfig{})
//	html, err := r.RenderToString(tree)
//	handlers := r.Handlers() // "h3_onanimationend" → func()
//
// RenderPage writes the HTML document that boots the thin client.
package render
