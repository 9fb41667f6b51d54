package transition

import (
	"log/slog"
	"sort"

	outleterrors "github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/routepath"
)

// CaptureFunc freezes an outlet's current content. It runs synchronously
// inside the pre-commit handler.
type CaptureFunc func()

// DuplicatePolicy decides what Register does when the path is taken.
type DuplicatePolicy int

const (
	// DuplicateFail rejects the second registration with an E202 error.
	DuplicateFail DuplicatePolicy = iota

	// DuplicateReplace silently overwrites the entry (last writer wins).
	// The displaced owner's Release becomes a no-op, but a plain
	// Unregister from it still removes the new owner's entry.
	DuplicateReplace
)

// Entry is a read-only view of a registry entry.
type Entry struct {
	Path    string
	Capture CaptureFunc

	// Seq is the registration sequence number; later registrations
	// have larger values.
	Seq uint64
}

type entry struct {
	path    string
	capture CaptureFunc
	seq     uint64
	owner   *Registration
}

// Registry maps resolved outlet paths to capture procedures.
// It is not safe for concurrent use.
type Registry struct {
	entries map[string]*entry
	seq     uint64
	policy  DuplicatePolicy
	logger  *slog.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithDuplicatePolicy sets the duplicate registration policy.
func WithDuplicatePolicy(p DuplicatePolicy) RegistryOption {
	return func(r *Registry) {
		r.policy = p
	}
}

// WithRegistryLogger sets the registry logger.
func WithRegistryLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[string]*entry),
		policy:  DuplicateFail,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	r.logger = r.logger.With("component", "transition-registry")
	return r
}

// Registration is the handle returned by Register. Only the owner of the
// current entry can remove it through Release.
type Registration struct {
	registry *Registry
	path     string
	released bool
}

// Path returns the canonical path the registration was made under.
func (g *Registration) Path() string {
	return g.path
}

// Release removes the entry if it still belongs to this registration and
// reports whether it did. Calling Release more than once is safe.
func (g *Registration) Release() bool {
	if g == nil || g.released {
		return false
	}
	g.released = true

	e, ok := g.registry.entries[g.path]
	if !ok || e.owner != g {
		return false
	}
	delete(g.registry.entries, g.path)
	return true
}

// Register maps path to capture. The path is canonicalized first.
func (r *Registry) Register(path string, capture CaptureFunc) (*Registration, error) {
	if capture == nil {
		return nil, outleterrors.New("E205").WithDetail("capture procedure is nil")
	}
	canon, err := routepath.CanonicalizePath(path)
	if err != nil {
		return nil, outleterrors.New("E206").WithDetailf("%q", path).Wrap(err)
	}
	p := canon.Path

	if existing, ok := r.entries[p]; ok {
		if r.policy == DuplicateFail {
			return nil, outleterrors.New("E202").WithDetailf("path %s is already registered", p)
		}
		r.logger.Warn("outlet path re-registered, last writer wins", "path", p, "previous_seq", existing.seq)
	}

	r.seq++
	g := &Registration{registry: r, path: p}
	r.entries[p] = &entry{path: p, capture: capture, seq: r.seq, owner: g}
	return g, nil
}

// Unregister removes the entry keyed by path, whoever owns it, and reports
// whether an entry was removed. Outlets should prefer Registration.Release.
func (r *Registry) Unregister(path string) bool {
	p := path
	if canon, err := routepath.CanonicalizePath(path); err == nil {
		p = canon.Path
	}
	if _, ok := r.entries[p]; !ok {
		return false
	}
	delete(r.entries, p)
	return true
}

// FindDeepestMatch returns the capture of the longest registered path that
// is an ancestor of (or equal to) destination.
func (r *Registry) FindDeepestMatch(destination string) (CaptureFunc, bool) {
	e, ok := r.Match(destination)
	if !ok {
		return nil, false
	}
	return e.Capture, true
}

// Match is FindDeepestMatch returning the whole entry. Among equal-length
// candidates the most recently registered wins.
func (r *Registry) Match(destination string) (Entry, bool) {
	var best *entry
	for _, e := range r.entries {
		if !routepath.IsDescendant(e.path, destination) {
			continue
		}
		if best == nil || len(e.path) > len(best.path) ||
			(len(e.path) == len(best.path) && e.seq > best.seq) {
			best = e
		}
	}
	if best == nil {
		return Entry{}, false
	}
	return Entry{Path: best.path, Capture: best.capture, Seq: best.seq}, true
}

// Entries returns every entry sorted by path.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Entry{Path: e.path, Capture: e.capture, Seq: e.seq})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Len returns the number of entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Reset drops every entry. Outstanding registrations become inert.
func (r *Registry) Reset() {
	r.entries = make(map[string]*entry)
}
