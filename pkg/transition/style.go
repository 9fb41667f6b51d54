package transition

import (
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/outlet/pkg/vdom"
)

// animationNames derives CSS keyframe names from a route ID.
// "/app/projects/:id" becomes "outlet-app-projects-id".
func animationNames(routeID string) (enter, exit string) {
	var b strings.Builder
	b.WriteString("outlet")
	dash := true
	for _, r := range routeID {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	base := b.String()
	if base == "outlet" {
		base = "outlet-root"
	}
	return base + "-enter", base + "-exit"
}

func keyframes(name string, m Motion) string {
	return "@keyframes " + name + " { from { " + vdom.Declarations(m.Initial) +
		" } to { " + vdom.Declarations(m.Animate) + " } }"
}

// stylesheet returns the keyframes an outlet's overlays and live slot use.
func stylesheet(enter, exit string, c Config) string {
	return keyframes(enter, c.Enter) + "\n" + keyframes(exit, c.Exit)
}

// animation formats a CSS animation shorthand. elapsed becomes a negative
// delay so a re-rendered element resumes where the previous one was.
func animation(name string, t Timing, elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > t.Duration {
		elapsed = t.Duration
	}
	return name + " " + millis(t.Duration) + " " + t.Easing.CSS() + " " + millis(-elapsed) + " both"
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
}
