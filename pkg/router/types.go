package router

import "github.com/vango-dev/outlet/pkg/vdom"

// Params holds the values captured by ":param" and "*catchall" segments.
type Params map[string]string

// Slot represents the child content passed to a layout.
type Slot = *vdom.VNode

// PageHandler renders a page.
type PageHandler func(params Params) *vdom.VNode

// LayoutHandler wraps child content in a layout.
type LayoutHandler func(params Params, children Slot) *vdom.VNode

// MatchedLayout is one layout on the path from the root to a page.
type MatchedLayout struct {
	// RouteID is the canonical pattern the layout was registered with.
	RouteID string

	// Handler renders the layout.
	Handler LayoutHandler
}

// MatchResult contains the result of a route match.
type MatchResult struct {
	// Pattern is the page's canonical pattern.
	Pattern string

	// Page renders the matched page.
	Page PageHandler

	// Layouts are ordered root to leaf.
	Layouts []MatchedLayout

	// Params are the extracted route parameters.
	Params Params
}
