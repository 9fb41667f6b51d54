// Package navigation holds the per-session navigator: the committed path,
// the route match for it, and the pre-commit/commit event stream that the
// transition package listens to.
package navigation
