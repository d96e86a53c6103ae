package ui

import (
	"github.com/gdamore/tcell/v2"
)

// Feedback is the terminal stand-in for haptic feedback: a bell on
// taps, selections and zooms. Best-effort; terminals that ignore the
// bell simply stay silent, and the channel can be disabled outright.
type Feedback struct {
	screen  tcell.Screen
	enabled bool
}

// NewFeedback creates a feedback channel over the screen
func NewFeedback(screen tcell.Screen, enabled bool) *Feedback {
	return &Feedback{screen: screen, enabled: enabled}
}

// Impact emits one feedback pulse
func (f *Feedback) Impact() {
	if f.enabled && f.screen != nil {
		_ = f.screen.Beep()
	}
}
