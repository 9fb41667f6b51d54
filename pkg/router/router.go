package router

import (
	"fmt"
	"sort"
	"strings"
)

// Router manages route matching.
type Router struct {
	root     *routeNode
	notFound PageHandler
	layouts  map[string]bool
}

// NewRouter creates a new router.
func NewRouter() *Router {
	return &Router{
		root:    &routeNode{pattern: "/"},
		layouts: make(map[string]bool),
	}
}

// Page registers a page handler for a pattern.
func (r *Router) Page(pattern string, handler PageHandler) {
	node := r.root.insertRoute(pattern)
	node.page = handler
}

// Layout registers a layout handler for a pattern. The layout wraps every
// page at or below the pattern.
func (r *Router) Layout(pattern string, handler LayoutHandler) {
	node := r.root.insertRoute(pattern)
	node.layout = handler
	r.layouts[node.pattern] = true
}

// SetNotFound sets the 404 handler.
func (r *Router) SetNotFound(handler PageHandler) {
	r.notFound = handler
}

// NotFound returns the 404 handler.
func (r *Router) NotFound() PageHandler {
	return r.notFound
}

// Match finds the page for a path.
func (r *Router) Match(path string) (*MatchResult, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	params := make(Params)
	node, layouts, ok := r.root.match(splitPath(path), params, nil)
	if !ok {
		return nil, false
	}
	return &MatchResult{
		Pattern: node.pattern,
		Page:    node.page,
		Layouts: layouts,
		Params:  params,
	}, true
}

// HasLayout reports whether a layout is registered under routeID.
func (r *Router) HasLayout(routeID string) bool {
	return r.layouts[canonicalPattern(routeID)]
}

// LayoutIDs returns the registered layout route IDs, sorted.
func (r *Router) LayoutIDs() []string {
	ids := make([]string, 0, len(r.layouts))
	for id := range r.layouts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ResolvePath substitutes params into a route pattern. Every ":param" and
// "*catchall" segment must have a non-empty value.
func ResolvePath(pattern string, params Params) (string, error) {
	segments := splitPath(pattern)
	if len(segments) == 0 {
		return "/", nil
	}

	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch {
		case strings.HasPrefix(seg, ":"), strings.HasPrefix(seg, "*"):
			name := seg[1:]
			value, ok := params[name]
			if !ok || value == "" {
				return "", fmt.Errorf("router: missing param %q for %s", name, pattern)
			}
			out = append(out, strings.Trim(value, "/"))
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), nil
}
