package engine

import (
	"math"
	"time"
)

// TiltSource supplies device-tilt readings. The x axis maps to
// longitude rotation, y to latitude. ok is false when no reading is
// available, which silently degrades the globe to drag-only input.
type TiltSource interface {
	Sample() (x, y float64, ok bool)
}

// NoTilt is the source used when no orientation hardware exists
type NoTilt struct{}

// Sample always reports unavailable
func (NoTilt) Sample() (x, y float64, ok bool) {
	return 0, 0, false
}

// DemoTilt produces a slow oscillating tilt for exercising the tilt
// channel without hardware
type DemoTilt struct {
	Amplitude float64
	Period    time.Duration
	start     time.Time
}

// NewDemoTilt creates a demo source. Amplitude must exceed the
// controller's deadzone to have any effect.
func NewDemoTilt(amplitude float64, period time.Duration) *DemoTilt {
	return &DemoTilt{
		Amplitude: amplitude,
		Period:    period,
		start:     time.Now(),
	}
}

// Sample returns the oscillator's current reading
func (d *DemoTilt) Sample() (x, y float64, ok bool) {
	if d.Period <= 0 {
		return 0, 0, false
	}
	t := time.Since(d.start).Seconds() / d.Period.Seconds()
	return d.Amplitude * math.Sin(2*math.Pi*t), 0, true
}
