package transition

import (
	"errors"
	"sort"
	"time"
)

// fakeRouter is a minimal Router that lets tests fire pre-commit events.
type fakeRouter struct {
	current  string
	handlers map[EventType][]func(NavigationEvent)
	owned    map[string]string
	subs     int
}

func newFakeRouter(current string) *fakeRouter {
	return &fakeRouter{
		current:  current,
		handlers: make(map[EventType][]func(NavigationEvent)),
		owned:    make(map[string]string),
	}
}

func (r *fakeRouter) CurrentPath() string { return r.current }

func (r *fakeRouter) Subscribe(event EventType, handler func(NavigationEvent)) func() {
	r.subs++
	r.handlers[event] = append(r.handlers[event], handler)
	idx := len(r.handlers[event]) - 1
	return func() {
		r.handlers[event][idx] = nil
	}
}

func (r *fakeRouter) ResolveOwnPath(routeID string) (string, error) {
	if p, ok := r.owned[routeID]; ok {
		return p, nil
	}
	return "", errors.New("unknown route")
}

// navigate fires pre-commit handlers, then switches the current path.
func (r *fakeRouter) navigate(to string) {
	ev := NavigationEvent{From: r.current, To: to, PathChanged: r.current != to}
	for _, h := range r.handlers[EventPreCommit] {
		if h != nil {
			h(ev)
		}
	}
	r.current = to
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

// fakeScheduler records timers and fires them when the clock is advanced.
type fakeScheduler struct {
	clock  *fakeClock
	timers []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	fn      func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{at: s.clock.now.Add(d), fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) advance(d time.Duration) {
	s.clock.now = s.clock.now.Add(d)
	due := make([]*fakeTimer, 0)
	for _, t := range s.timers {
		if !t.stopped && !t.fired && !t.at.After(s.clock.now) {
			due = append(due, t)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, t := range due {
		t.fired = true
		t.fn()
	}
}

func (s *fakeScheduler) active() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// recordingObserver keeps every notification for assertions.
type recordingObserver struct {
	precommits []string
	queued     []int
	released   map[int]ReleaseReason
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{released: make(map[int]ReleaseReason)}
}

func (o *recordingObserver) PreCommit(from, to string) func(string, bool) {
	return func(match string, found bool) {
		if !found {
			match = "-"
		}
		o.precommits = append(o.precommits, from+">"+to+"="+match)
	}
}

func (o *recordingObserver) SnapshotQueued(_ string, id int, _ Mode) {
	o.queued = append(o.queued, id)
}

func (o *recordingObserver) SnapshotReleased(_ string, id int, reason ReleaseReason, _ time.Duration) {
	o.released[id] = reason
}
