package engine

import (
	"math"

	"firstglobe/internal/geo"
)

// Mode is the update rule governing the rotation on a given tick.
// Exactly one mode applies per tick, chosen by priority:
// drag > target-seek > tilt/momentum.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeSeeking
	ModeTilt
)

// String returns a readable mode name for logging
func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeSeeking:
		return "seeking"
	case ModeTilt:
		return "tilt"
	default:
		return "idle"
	}
}

// RotationState is the mutable rotation/scale/velocity owned by the
// Controller. Every other component reads it as a copy.
type RotationState struct {
	RotLon float64
	RotLat float64
	Scale  float64
	VelLon float64
	VelLat float64

	HasTarget bool
	TargetLon float64 // target rotation, not geographic longitude
	TargetLat float64
}

// Tuning holds the physical constants of the interaction model
type Tuning struct {
	DragSensitivity float64 // rotation degrees per cell of pointer travel
	Friction        float64 // per-tick velocity multiplier while coasting
	VelocityEpsilon float64 // velocity below this snaps to zero
	EaseFactor      float64 // fraction of remaining distance per seek tick
	TiltDeadzone    float64 // tilt readings below this are sensor noise
	TiltSensitivity float64
	MinScale        float64
	MaxScale        float64
	ZoomStep        float64
}

// DefaultTuning mirrors the interaction feel of the reference globe
func DefaultTuning() Tuning {
	return Tuning{
		DragSensitivity: 0.25,
		Friction:        0.95,
		VelocityEpsilon: 0.001,
		EaseFactor:      0.05,
		TiltDeadzone:    2.0,
		TiltSensitivity: 0.05,
		MinScale:        5,
		MaxScale:        200,
		ZoomStep:        4,
	}
}

// Controller owns the RotationState and advances it once per frame.
// It is the single writer; everything else observes copies.
type Controller struct {
	st       RotationState
	tuning   Tuning
	dragging bool
	mode     Mode

	tilt        TiltSource
	tiltEnabled bool
}

// NewController creates a controller at zero rotation with the given
// initial scale
func NewController(tuning Tuning, scale float64) *Controller {
	return &Controller{
		st: RotationState{
			Scale: clamp(scale, tuning.MinScale, tuning.MaxScale),
		},
		tuning: tuning,
	}
}

// State returns a copy of the current rotation state
func (c *Controller) State() RotationState {
	return c.st
}

// Mode returns the update rule that applied on the last tick
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetRotation overwrites the current rotation, for initial placement
func (c *Controller) SetRotation(rotLon, rotLat float64) {
	c.st.RotLon = normalizeLon(rotLon)
	c.st.RotLat = rotLat
}

// SetTilt attaches a tilt input source. A nil source disables the
// tilt channel entirely.
func (c *Controller) SetTilt(src TiltSource, enabled bool) {
	c.tilt = src
	c.tiltEnabled = enabled
}

// EnableTilt toggles the tilt channel at runtime
func (c *Controller) EnableTilt(enabled bool) {
	c.tiltEnabled = enabled
}

// TiltEnabled reports whether tilt input is currently active
func (c *Controller) TiltEnabled() bool {
	return c.tiltEnabled && c.tilt != nil
}

// BeginDrag enters the dragging state, killing any momentum and
// cancelling a pending target-seek
func (c *Controller) BeginDrag() {
	c.dragging = true
	c.st.VelLon = 0
	c.st.VelLat = 0
	c.st.HasTarget = false
	c.mode = ModeDragging
}

// DragBy applies a pointer delta while dragging. Latitude moves
// against screen-down so the globe follows the pointer. The last
// delta is retained as the instantaneous velocity for momentum.
func (c *Controller) DragBy(dx, dy float64) {
	if !c.dragging {
		return
	}

	s := c.tuning.DragSensitivity
	c.st.RotLon = normalizeLon(c.st.RotLon + dx*s)
	c.st.RotLat -= dy * s

	c.st.VelLon = dx * s
	c.st.VelLat = -dy * s
}

// EndDrag leaves the dragging state, carrying the last drag delta
// forward as initial coasting velocity
func (c *Controller) EndDrag() {
	c.dragging = false
}

// SeekTo starts an animated rotation that centers the given
// geographic coordinate, replacing any previous target
func (c *Controller) SeekTo(lon, lat float64) {
	c.st.HasTarget = true
	c.st.TargetLon = normalizeLon(-lon)
	c.st.TargetLat = -lat
}

// ClearTarget cancels a pending target-seek
func (c *Controller) ClearTarget() {
	c.st.HasTarget = false
}

// Zoom adjusts the scale by the given number of steps and returns the
// clamped result. Zoom is not animated.
func (c *Controller) Zoom(steps float64) float64 {
	c.st.Scale = clamp(c.st.Scale+steps*c.tuning.ZoomStep, c.tuning.MinScale, c.tuning.MaxScale)
	return c.st.Scale
}

// Scale returns the current zoom scale
func (c *Controller) Scale() float64 {
	return c.st.Scale
}

// Tick advances the rotation by one frame
func (c *Controller) Tick() {
	switch {
	case c.dragging:
		// Rotation already applied by DragBy; nothing decays.
		c.mode = ModeDragging

	case c.st.HasTarget:
		k := c.tuning.EaseFactor
		dLon := geo.AngularDiff(c.st.RotLon, c.st.TargetLon)
		dLat := c.st.TargetLat - c.st.RotLat

		c.st.RotLon = normalizeLon(c.st.RotLon + dLon*k)
		c.st.RotLat += dLat * k

		c.st.VelLon = 0
		c.st.VelLat = 0
		c.mode = ModeSeeking

	default:
		c.mode = ModeIdle

		if c.TiltEnabled() {
			if tx, ty, ok := c.tilt.Sample(); ok {
				if math.Abs(tx) > c.tuning.TiltDeadzone || math.Abs(ty) > c.tuning.TiltDeadzone {
					c.st.RotLon = normalizeLon(c.st.RotLon + tx*c.tuning.TiltSensitivity)
					c.st.RotLat += ty * c.tuning.TiltSensitivity
					c.mode = ModeTilt
				}
			}
		}

		c.st.VelLon *= c.tuning.Friction
		c.st.VelLat *= c.tuning.Friction

		if math.Abs(c.st.VelLon) < c.tuning.VelocityEpsilon {
			c.st.VelLon = 0
		}
		if math.Abs(c.st.VelLat) < c.tuning.VelocityEpsilon {
			c.st.VelLat = 0
		}

		c.st.RotLon = normalizeLon(c.st.RotLon + c.st.VelLon)
		c.st.RotLat += c.st.VelLat
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func normalizeLon(lon float64) float64 {
	return geo.AngularDiff(0, lon)
}
