package config

import (
	"sort"
	"time"

	"github.com/vango-dev/outlet/internal/errors"
	"github.com/vango-dev/outlet/pkg/routepath"
	"github.com/vango-dev/outlet/pkg/transition"
)

// TransitionsConfig configures outlet animations.
type TransitionsConfig struct {
	// Duplicates is the registry policy for colliding outlet paths:
	// "fail" (default) or "replace".
	Duplicates string `json:"duplicates,omitempty" yaml:"duplicates,omitempty"`

	// Default applies to every outlet without a route entry.
	Default TransitionSpec `json:"default,omitempty" yaml:"default,omitempty"`

	// Routes overrides Default per layout route ID.
	Routes map[string]TransitionSpec `json:"routes,omitempty" yaml:"routes,omitempty"`
}

// TransitionSpec is the file form of transition.Config. Empty fields
// inherit from the default spec, then from the preset.
type TransitionSpec struct {
	// Preset is "fade" or "slide-left".
	Preset string `json:"preset,omitempty" yaml:"preset,omitempty"`

	// Duration is a Go duration string such as "250ms".
	Duration string `json:"duration,omitempty" yaml:"duration,omitempty"`

	// Easing is a CSS keyword or cubic-bezier() expression.
	Easing string `json:"easing,omitempty" yaml:"easing,omitempty"`

	// Mode is "clone" or "move".
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// ExitTimeout is a Go duration string; "off" disables it.
	ExitTimeout string `json:"exitTimeout,omitempty" yaml:"exitTimeout,omitempty"`

	Enter *MotionSpec `json:"enter,omitempty" yaml:"enter,omitempty"`
	Exit  *MotionSpec `json:"exit,omitempty" yaml:"exit,omitempty"`
}

// MotionSpec is the file form of transition.Motion.
type MotionSpec struct {
	Initial map[string]string `json:"initial,omitempty" yaml:"initial,omitempty"`
	Animate map[string]string `json:"animate,omitempty" yaml:"animate,omitempty"`
}

// DuplicatePolicy returns the configured registry policy.
func (c *Config) DuplicatePolicy() transition.DuplicatePolicy {
	if c.Transitions.Duplicates == "replace" {
		return transition.DuplicateReplace
	}
	return transition.DuplicateFail
}

// TransitionFor returns the transition configuration for a layout.
func (c *Config) TransitionFor(routeID string) (transition.Config, error) {
	spec := c.Transitions.Default
	if override, ok := c.Transitions.Routes[normalizeRouteID(routeID)]; ok {
		spec = spec.merge(override)
	}
	return spec.Build()
}

// RouteIDs returns the route IDs with explicit transition entries, sorted.
func (c *Config) RouteIDs() []string {
	ids := make([]string, 0, len(c.Transitions.Routes))
	for id := range c.Transitions.Routes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Build converts the spec into a validated transition.Config.
func (s TransitionSpec) Build() (transition.Config, error) {
	cfg, ok := transition.Preset(s.Preset)
	if !ok {
		return transition.Config{}, errors.New("E205").
			WithDetailf("unknown preset %q", s.Preset).
			WithSuggestion("Use fade or slide-left")
	}

	if s.Duration != "" {
		d, err := time.ParseDuration(s.Duration)
		if err != nil {
			return transition.Config{}, errors.New("E205").WithDetailf("duration %q", s.Duration).Wrap(err)
		}
		cfg.Transition.Duration = d
	}
	if s.Easing != "" {
		e, err := transition.ParseEasing(s.Easing)
		if err != nil {
			return transition.Config{}, errors.New("E205").WithDetail(err.Error()).Wrap(err)
		}
		cfg.Transition.Easing = e
	}
	if s.Mode != "" {
		m, err := transition.ParseMode(s.Mode)
		if err != nil {
			return transition.Config{}, errors.New("E205").WithDetail(err.Error()).Wrap(err)
		}
		cfg.Mode = m
	}
	switch s.ExitTimeout {
	case "":
	case "off", "none":
		cfg.ExitTimeout = -1
	default:
		d, err := time.ParseDuration(s.ExitTimeout)
		if err != nil {
			return transition.Config{}, errors.New("E205").WithDetailf("exitTimeout %q", s.ExitTimeout).Wrap(err)
		}
		cfg.ExitTimeout = d
	}
	if s.Enter != nil {
		cfg.Enter = s.Enter.motion()
	}
	if s.Exit != nil {
		cfg.Exit = s.Exit.motion()
	}

	if err := cfg.Validate(); err != nil {
		return transition.Config{}, err
	}
	return cfg, nil
}

func (s TransitionSpec) merge(o TransitionSpec) TransitionSpec {
	if o.Preset != "" {
		s.Preset = o.Preset
	}
	if o.Duration != "" {
		s.Duration = o.Duration
	}
	if o.Easing != "" {
		s.Easing = o.Easing
	}
	if o.Mode != "" {
		s.Mode = o.Mode
	}
	if o.ExitTimeout != "" {
		s.ExitTimeout = o.ExitTimeout
	}
	if o.Enter != nil {
		s.Enter = o.Enter
	}
	if o.Exit != nil {
		s.Exit = o.Exit
	}
	return s
}

func (m MotionSpec) motion() transition.Motion {
	return transition.Motion{
		Initial: transition.VisualProps(m.Initial),
		Animate: transition.VisualProps(m.Animate),
	}
}

func (t TransitionsConfig) validate() error {
	switch t.Duplicates {
	case "fail", "replace":
	default:
		return errors.New("E122").
			WithDetailf("transitions.duplicates %q must be fail or replace", t.Duplicates)
	}
	if _, err := t.Default.Build(); err != nil {
		return err
	}
	for id, spec := range t.Routes {
		if _, err := t.Default.merge(spec).Build(); err != nil {
			oe := errors.FromError(err, "E205")
			return oe.WithDetailf("route %s: %s", id, oe.Detail)
		}
	}
	return nil
}

func normalizeRouteID(id string) string {
	res, err := routepath.CanonicalizePath(id)
	if err != nil {
		return id
	}
	return res.Path
}
