package transition

import (
	"fmt"
	"strconv"
	"strings"
)

// Easing is a cubic-bezier timing curve from (0,0) to (1,1) with control
// points (X1,Y1) and (X2,Y2), matching CSS cubic-bezier().
type Easing struct {
	X1, Y1, X2, Y2 float64

	// keyword is the CSS keyword for the standard curves.
	keyword string
}

// Standard curves, equivalent to the CSS keywords of the same name.
var (
	Linear    = Easing{0, 0, 1, 1, "linear"}
	Ease      = Easing{0.25, 0.1, 0.25, 1, "ease"}
	EaseIn    = Easing{0.42, 0, 1, 1, "ease-in"}
	EaseOut   = Easing{0, 0, 0.58, 1, "ease-out"}
	EaseInOut = Easing{0.42, 0, 0.58, 1, "ease-in-out"}
)

// CubicBezier returns a custom curve.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	return Easing{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// IsZero reports whether e is the zero value (no curve chosen).
func (e Easing) IsZero() bool {
	return e == Easing{}
}

// Valid reports whether the x coordinates lie in [0, 1], which CSS requires.
func (e Easing) Valid() bool {
	return e.X1 >= 0 && e.X1 <= 1 && e.X2 >= 0 && e.X2 <= 1
}

// CSS renders the curve as a CSS timing function.
func (e Easing) CSS() string {
	if e.keyword != "" {
		return e.keyword
	}
	return "cubic-bezier(" + formatFloat(e.X1) + ", " + formatFloat(e.Y1) + ", " +
		formatFloat(e.X2) + ", " + formatFloat(e.Y2) + ")"
}

// String returns the CSS form.
func (e Easing) String() string {
	return e.CSS()
}

// ParseEasing reads a CSS keyword ("ease-out") or a
// "cubic-bezier(x1, y1, x2, y2)" expression.
func ParseEasing(s string) (Easing, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch s {
	case "linear":
		return Linear, nil
	case "", "ease":
		return Ease, nil
	case "ease-in":
		return EaseIn, nil
	case "ease-out":
		return EaseOut, nil
	case "ease-in-out":
		return EaseInOut, nil
	}

	inner, ok := strings.CutPrefix(s, "cubic-bezier(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return Easing{}, fmt.Errorf("unknown easing %q", s)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(parts) != 4 {
		return Easing{}, fmt.Errorf("cubic-bezier needs 4 values, got %d", len(parts))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Easing{}, fmt.Errorf("cubic-bezier value %q: %w", p, err)
		}
		v[i] = f
	}
	e := CubicBezier(v[0], v[1], v[2], v[3])
	if !e.Valid() {
		return Easing{}, fmt.Errorf("cubic-bezier x values must be within [0, 1]: %s", s)
	}
	return e, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
