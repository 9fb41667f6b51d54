package router

import "strings"

// routeNode is a node in the radix tree.
type routeNode struct {
	// segment is the static path segment this node matches.
	segment string

	isParam    bool
	isCatchAll bool

	// paramName is the parameter name (without : or *).
	paramName string

	// pattern is the canonical pattern of the route ending at this node.
	pattern string

	page   PageHandler
	layout LayoutHandler

	children      []*routeNode
	paramChild    *routeNode
	catchAllChild *routeNode
}

func (n *routeNode) findChild(segment string) *routeNode {
	for _, child := range n.children {
		if child.segment == segment {
			return child
		}
	}
	return nil
}

func (n *routeNode) addChild(segment string) *routeNode {
	if child := n.findChild(segment); child != nil {
		return child
	}
	child := &routeNode{segment: segment}
	n.children = append(n.children, child)
	return child
}

func (n *routeNode) addParamChild(name string) *routeNode {
	if n.paramChild == nil {
		n.paramChild = &routeNode{isParam: true, paramName: name}
	}
	return n.paramChild
}

func (n *routeNode) addCatchAllChild(name string) *routeNode {
	if n.catchAllChild == nil {
		n.catchAllChild = &routeNode{isCatchAll: true, paramName: name}
	}
	return n.catchAllChild
}

// insertRoute adds a route to the tree and returns its terminal node.
func (n *routeNode) insertRoute(pattern string) *routeNode {
	current := n
	for _, seg := range splitPath(pattern) {
		switch {
		case strings.HasPrefix(seg, "*"):
			current = current.addCatchAllChild(seg[1:])
			current.pattern = canonicalPattern(pattern)
			return current
		case strings.HasPrefix(seg, ":"):
			current = current.addParamChild(seg[1:])
		default:
			current = current.addChild(seg)
		}
	}
	current.pattern = canonicalPattern(pattern)
	return current
}

// match finds the page node for segments, collecting layouts on the way.
// Static children win over params, params over catch-alls; failed branches
// backtrack.
func (n *routeNode) match(segments []string, params Params, layouts []MatchedLayout) (*routeNode, []MatchedLayout, bool) {
	if n.layout != nil {
		layouts = append(layouts, MatchedLayout{RouteID: n.pattern, Handler: n.layout})
	}

	if len(segments) == 0 {
		if n.page != nil {
			return n, layouts, true
		}
		return nil, nil, false
	}

	segment := segments[0]
	remaining := segments[1:]

	if child := n.findChild(segment); child != nil {
		if node, l, ok := child.match(remaining, params, layouts); ok {
			return node, l, true
		}
	}

	if n.paramChild != nil {
		params[n.paramChild.paramName] = segment
		if node, l, ok := n.paramChild.match(remaining, params, layouts); ok {
			return node, l, true
		}
		delete(params, n.paramChild.paramName)
	}

	if n.catchAllChild != nil && n.catchAllChild.page != nil {
		params[n.catchAllChild.paramName] = strings.Join(segments, "/")
		if n.catchAllChild.layout != nil {
			layouts = append(layouts, MatchedLayout{RouteID: n.catchAllChild.pattern, Handler: n.catchAllChild.layout})
		}
		return n.catchAllChild, layouts, true
	}

	return nil, nil, false
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func canonicalPattern(pattern string) string {
	return "/" + strings.Join(splitPath(pattern), "/")
}
