package engine

import (
	"math/rand"

	"firstglobe/internal/story"
)

// Particle is one short-lived firefly spawned around the focused
// story's marker. Purely decorative, never an interaction target.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Life     float64 // 1.0 at spawn, removed at 0
	Category story.Category
}

// ParticleTuning controls spawn and decay behavior
type ParticleTuning struct {
	SpawnChance float64 // probability of one spawn per frame while focused
	Fade        float64 // life lost per frame
	Speed       float64 // max initial velocity per axis
}

// DefaultParticleTuning matches the reference globe's firefly feel
func DefaultParticleTuning() ParticleTuning {
	return ParticleTuning{
		SpawnChance: 0.2,
		Fade:        0.02,
		Speed:       1.5,
	}
}

// ParticleField owns all live particles. It is updated once per tick
// by the compositor and read by the renderer.
type ParticleField struct {
	particles []Particle
	tuning    ParticleTuning
	rng       *rand.Rand
}

// NewParticleField creates an empty field. The seed makes spawn
// behavior reproducible in tests.
func NewParticleField(tuning ParticleTuning, seed int64) *ParticleField {
	return &ParticleField{
		tuning: tuning,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Update ages every particle, drops the dead ones and, when a focus
// position is supplied, stochastically spawns a new particle there
func (f *ParticleField) Update(focusX, focusY float64, focusCat story.Category, focused bool) {
	if focused && f.rng.Float64() < f.tuning.SpawnChance {
		f.particles = append(f.particles, Particle{
			X:        focusX,
			Y:        focusY,
			VX:       (f.rng.Float64() - 0.5) * f.tuning.Speed,
			VY:       (f.rng.Float64() - 0.5) * f.tuning.Speed,
			Life:     1.0,
			Category: focusCat,
		})
	}

	alive := f.particles[:0]
	for i := range f.particles {
		p := f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Life -= f.tuning.Fade
		if p.Life > 0 {
			alive = append(alive, p)
		}
	}
	f.particles = alive
}

// Particles returns the live particles for rendering
func (f *ParticleField) Particles() []Particle {
	return f.particles
}

// Count returns the number of live particles
func (f *ParticleField) Count() int {
	return len(f.particles)
}
