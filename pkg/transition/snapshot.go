package transition

import (
	"time"

	"github.com/vango-dev/outlet/pkg/vdom"
)

// Snapshot is a frozen copy (or the detached original) of an outlet's
// content, kept alive while its exit animation plays. The outlet owns it
// exclusively; nothing in Node points back into the live tree.
type Snapshot struct {
	// ID is unique per outlet, starts at 0 and is never reused.
	ID int

	// Node is the captured subtree.
	Node *vdom.VNode

	// Mode is how Node was obtained.
	Mode Mode

	// CapturedAt is when the capture ran.
	CapturedAt time.Time

	timer Timer
}

// Age returns how long the snapshot has been pending at now.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.CapturedAt)
}

func (s *Snapshot) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
