package transition

import "time"

// ReleaseReason explains why a Snapshot left the pending list.
type ReleaseReason int

const (
	// ReleaseCompleted means the exit animation reported completion.
	ReleaseCompleted ReleaseReason = iota

	// ReleaseTimeout means the completion notification never arrived and
	// the exit timeout expired.
	ReleaseTimeout

	// ReleaseTeardown means the owning outlet was unmounted.
	ReleaseTeardown
)

// String returns the reason as a metric label.
func (r ReleaseReason) String() string {
	switch r {
	case ReleaseCompleted:
		return "completed"
	case ReleaseTimeout:
		return "timeout"
	case ReleaseTeardown:
		return "teardown"
	default:
		return "unknown"
	}
}

// Observer receives transition lifecycle notifications. Implementations
// are called on the session loop and must not block.
type Observer interface {
	// PreCommit is called when the listener handles a navigation. The
	// returned func is called once the lookup (and capture, if any) is done.
	PreCommit(from, to string) func(match string, found bool)

	// SnapshotQueued is called after a capture appends a Snapshot.
	SnapshotQueued(path string, id int, mode Mode)

	// SnapshotReleased is called when a Snapshot leaves the pending list.
	SnapshotReleased(path string, id int, reason ReleaseReason, age time.Duration)
}

// NopObserver ignores every notification.
type NopObserver struct{}

func (NopObserver) PreCommit(string, string) func(string, bool)                { return func(string, bool) {} }
func (NopObserver) SnapshotQueued(string, int, Mode)                           {}
func (NopObserver) SnapshotReleased(string, int, ReleaseReason, time.Duration) {}

// Observers fans notifications out to every non-nil observer in order.
func Observers(observers ...Observer) Observer {
	var list multiObserver
	for _, o := range observers {
		if o != nil {
			list = append(list, o)
		}
	}
	switch len(list) {
	case 0:
		return NopObserver{}
	case 1:
		return list[0]
	}
	return list
}

type multiObserver []Observer

func (m multiObserver) PreCommit(from, to string) func(string, bool) {
	done := make([]func(string, bool), len(m))
	for i, o := range m {
		done[i] = o.PreCommit(from, to)
	}
	return func(match string, found bool) {
		for _, fn := range done {
			fn(match, found)
		}
	}
}

func (m multiObserver) SnapshotQueued(path string, id int, mode Mode) {
	for _, o := range m {
		o.SnapshotQueued(path, id, mode)
	}
}

func (m multiObserver) SnapshotReleased(path string, id int, reason ReleaseReason, age time.Duration) {
	for _, o := range m {
		o.SnapshotReleased(path, id, reason, age)
	}
}
