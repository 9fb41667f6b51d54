package routepath

import "strings"

// IsDescendant reports whether destination lies at or below ancestor.
//
// The root path is an ancestor of every path. Otherwise destination must
// start with ancestor and the match must end on a segment boundary, so
// "/a/b" owns "/a/b" and "/a/b/c" but not "/a/bc".
//
// Both arguments are expected to be canonical; no normalization is done.
func IsDescendant(ancestor, destination string) bool {
	if ancestor == "/" {
		return true
	}
	if !strings.HasPrefix(destination, ancestor) {
		return false
	}
	return len(destination) == len(ancestor) || destination[len(ancestor)] == '/'
}

// Depth returns the number of segments in a canonical path. "/" has depth 0.
func Depth(path string) int {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return 0
	}
	return strings.Count(trimmed, "/") + 1
}
