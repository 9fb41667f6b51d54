package transition

import (
	"fmt"
	"strings"
	"time"

	outleterrors "github.com/vango-dev/outlet/internal/errors"
)

// Defaults applied by Config.Normalize.
const (
	DefaultDuration = 250 * time.Millisecond

	// DefaultExitGrace is added to the transition duration to form the
	// default exit timeout.
	DefaultExitGrace = time.Second
)

// VisualProps maps CSS properties to values, e.g. {"opacity": "0"}.
type VisualProps map[string]string

// Motion declares the start and end visual state of one animation.
type Motion struct {
	Initial VisualProps
	Animate VisualProps
}

// Timing controls how a Motion progresses.
type Timing struct {
	Duration time.Duration
	Easing   Easing
}

// Mode selects how an outlet captures its content.
type Mode int

const (
	// ModeClone duplicates the live subtree; the original stays mounted
	// until the next render replaces it.
	ModeClone Mode = iota

	// ModeMove detaches the live subtree, leaving the container empty.
	ModeMove
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeClone:
		return "clone"
	case ModeMove:
		return "move"
	default:
		return "unknown"
	}
}

// ParseMode reads "clone" or "move".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clone":
		return ModeClone, nil
	case "move":
		return ModeMove, nil
	default:
		return ModeClone, fmt.Errorf("unknown capture mode %q", s)
	}
}

// Config is the static transition configuration of one outlet.
type Config struct {
	Enter      Motion
	Exit       Motion
	Transition Timing
	Mode       Mode

	// ExitTimeout bounds how long a Snapshot may wait for its exit
	// animation to report completion. Zero means Transition.Duration plus
	// DefaultExitGrace; negative disables the timeout.
	ExitTimeout time.Duration
}

// DefaultConfig returns the crossfade used when nothing is configured.
func DefaultConfig() Config {
	return Fade()
}

// Fade crossfades old and new content.
func Fade() Config {
	return Config{
		Enter: Motion{
			Initial: VisualProps{"opacity": "0"},
			Animate: VisualProps{"opacity": "1"},
		},
		Exit: Motion{
			Initial: VisualProps{"opacity": "1"},
			Animate: VisualProps{"opacity": "0"},
		},
		Transition: Timing{Duration: DefaultDuration, Easing: EaseInOut},
	}
}

// SlideLeft pushes old content out to the left while new content slides
// in from the right.
func SlideLeft() Config {
	return Config{
		Enter: Motion{
			Initial: VisualProps{"opacity": "0", "transform": "translateX(24px)"},
			Animate: VisualProps{"opacity": "1", "transform": "translateX(0)"},
		},
		Exit: Motion{
			Initial: VisualProps{"opacity": "1", "transform": "translateX(0)"},
			Animate: VisualProps{"opacity": "0", "transform": "translateX(-24px)"},
		},
		Transition: Timing{Duration: 300 * time.Millisecond, Easing: EaseOut},
	}
}

// Preset returns a named configuration: "fade" or "slide-left".
func Preset(name string) (Config, bool) {
	switch strings.ToLower(name) {
	case "", "fade":
		return Fade(), true
	case "slide-left", "slide":
		return SlideLeft(), true
	default:
		return Config{}, false
	}
}

// Normalize fills in the default duration and easing.
func (c Config) Normalize() Config {
	if c.Transition.Duration == 0 {
		c.Transition.Duration = DefaultDuration
	}
	if c.Transition.Easing.IsZero() {
		c.Transition.Easing = Ease
	}
	return c
}

// Validate checks the configuration. Errors carry code E205.
func (c Config) Validate() error {
	if c.Transition.Duration < 0 {
		return invalidConfig("transition duration %s is negative", c.Transition.Duration)
	}
	if !c.Transition.Easing.IsZero() && !c.Transition.Easing.Valid() {
		return invalidConfig("easing %s has x values outside [0, 1]", c.Transition.Easing.CSS())
	}
	if c.Mode != ModeClone && c.Mode != ModeMove {
		return invalidConfig("capture mode %d is not clone or move", int(c.Mode))
	}
	for name, m := range map[string]Motion{"enter": c.Enter, "exit": c.Exit} {
		for _, props := range []VisualProps{m.Initial, m.Animate} {
			for prop, value := range props {
				if strings.TrimSpace(prop) == "" || strings.ContainsAny(prop, ":;{}<>") {
					return invalidConfig("%s motion has invalid property %q", name, prop)
				}
				// Values are written into a <style> element unescaped.
				if strings.ContainsAny(value, ";{}<>") {
					return invalidConfig("%s motion property %s has invalid value %q", name, prop, value)
				}
			}
		}
	}
	return nil
}

// EffectiveExitTimeout returns the exit timeout after defaults, or zero
// when the timeout is disabled.
func (c Config) EffectiveExitTimeout() time.Duration {
	switch {
	case c.ExitTimeout < 0:
		return 0
	case c.ExitTimeout == 0:
		return c.Normalize().Transition.Duration + DefaultExitGrace
	default:
		return c.ExitTimeout
	}
}

func invalidConfig(format string, args ...any) error {
	return outleterrors.New("E205").WithDetailf(format, args...)
}
