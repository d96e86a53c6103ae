package engine

import (
	"math"
)

// Gesture tracks one press-move-release sequence and decides whether
// it was a drag or a tap. A drag is only confirmed once cumulative
// displacement from the press origin exceeds the threshold; a
// confirmed drag suppresses click dispatch for the rest of the
// gesture.
type Gesture struct {
	active    bool
	confirmed bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	threshold float64
}

// NewGesture creates a recognizer with the given displacement
// threshold in cells
func NewGesture(threshold float64) *Gesture {
	return &Gesture{threshold: threshold}
}

// Active reports whether a gesture is in progress
func (g *Gesture) Active() bool {
	return g.active
}

// Dragging reports whether the gesture has been confirmed as a drag
func (g *Gesture) Dragging() bool {
	return g.active && g.confirmed
}

// Begin starts a gesture at the press position
func (g *Gesture) Begin(x, y float64) {
	g.active = true
	g.confirmed = false
	g.startX, g.startY = x, y
	g.lastX, g.lastY = x, y
}

// Move records pointer motion and returns the per-event delta.
// dragging is true only after the displacement threshold has been
// crossed; until then deltas are zero so a light tap never nudges the
// rotation.
func (g *Gesture) Move(x, y float64) (dx, dy float64, dragging bool) {
	if !g.active {
		return 0, 0, false
	}

	dx = x - g.lastX
	dy = y - g.lastY
	g.lastX, g.lastY = x, y

	if !g.confirmed {
		totalX := x - g.startX
		totalY := y - g.startY
		if math.Hypot(totalX, totalY) > g.threshold {
			g.confirmed = true
		}
	}

	if !g.confirmed {
		return 0, 0, false
	}
	return dx, dy, true
}

// End finishes the gesture. clicked is true when the gesture never
// became a drag, meaning the release should dispatch as a tap.
func (g *Gesture) End() (clicked bool) {
	clicked = g.active && !g.confirmed
	g.active = false
	g.confirmed = false
	return clicked
}
