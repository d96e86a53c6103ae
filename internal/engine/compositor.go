package engine

import (
	"sort"
	"time"

	"firstglobe/internal/geo"
	"firstglobe/internal/story"
)

// Toggles are the caller-supplied feature switches read every tick
type Toggles struct {
	Night          bool
	Constellations bool
	Heatmap        bool
}

// Marker is the retained draw command for one visible story
type Marker struct {
	ID       string
	Cell     geo.Cell
	Category story.Category
	Focused  bool
	Glow     bool // focused or freshly created
}

// Label is the floating country name anchored to its projected centroid
type Label struct {
	Text string
	Cell geo.Cell
}

// Scene is the retained set of typed draw commands for one frame.
// Markers are keyed by story id and updated in place; the renderer
// walks layers strictly back to front: ocean, night band, land,
// constellation, particles, heatmap, markers, label.
type Scene struct {
	Ready  bool // land + hit-testing available
	Camera geo.Camera

	NightEnabled bool
	NightLon     float64 // antisolar point
	NightLat     float64

	Countries []*geo.Country

	Link         [][2]float64
	LinkCategory story.Category

	Particles []Particle

	Heat           *HeatGrid
	HeatThresholds int

	Markers     map[string]*Marker
	MarkerOrder []string // stable iteration for drawing and tests

	Label *Label
}

// Inputs is everything the compositor reads for one frame.
// The story slice is a caller-owned snapshot; the compositor never
// mutates it.
type Inputs struct {
	Camera  geo.Camera
	Stories []*story.Point
	Focused *story.Point

	ActiveCategory    story.Category
	HasActiveCategory bool

	Hovered *geo.Country
	Toggles Toggles
	Now     time.Time
}

// Compositor derives all secondary visuals from the current rotation
// state and story snapshot, reusing one Scene across frames
type Compositor struct {
	world         *geo.World
	particles     *ParticleField
	constellation Constellation
	heatmap       *Heatmap
	scene         Scene
}

// NewCompositor creates a compositor over the loaded world geometry.
// world may be a failed load; the scene then renders ocean-only.
func NewCompositor(world *geo.World, particles *ParticleField, heatmap *Heatmap) *Compositor {
	c := &Compositor{
		world:     world,
		particles: particles,
		heatmap:   heatmap,
	}
	c.scene.Markers = make(map[string]*Marker)
	return c
}

// Compose rebuilds the scene for one frame. The returned pointer is
// owned by the compositor and valid until the next call.
func (c *Compositor) Compose(in Inputs) *Scene {
	s := &c.scene
	s.Camera = in.Camera
	s.Ready = c.world.Ready()

	if s.Ready {
		s.Countries = c.world.Countries
	} else {
		s.Countries = nil
	}

	s.NightEnabled = in.Toggles.Night
	if in.Toggles.Night {
		s.NightLon, s.NightLat = geo.Antisolar(in.Now)
	}

	c.composeMarkers(in)
	c.composeLink(in)
	c.composeParticles(in)
	c.composeHeat(in)
	c.composeLabel(in)

	return s
}

// composeMarkers updates the retained marker set in place: visible
// stories are added or refreshed, stories that rotated past the limb
// are removed for the frame (not destroyed, they return with the
// rotation)
func (c *Compositor) composeMarkers(in Inputs) {
	s := &c.scene
	seen := make(map[string]bool, len(in.Stories))

	for _, p := range in.Stories {
		cell, ok := in.Camera.Project(p.Lon, p.Lat)
		if !ok || !in.Camera.Visible(p.Lon, p.Lat) {
			continue
		}

		seen[p.ID] = true
		focused := in.Focused != nil && in.Focused.ID == p.ID

		m, exists := s.Markers[p.ID]
		if !exists {
			m = &Marker{ID: p.ID}
			s.Markers[p.ID] = m
		}
		m.Cell = cell
		m.Category = p.Category
		m.Focused = focused
		m.Glow = focused || p.Fresh(in.Now)
	}

	for id := range s.Markers {
		if !seen[id] {
			delete(s.Markers, id)
		}
	}

	s.MarkerOrder = s.MarkerOrder[:0]
	for id := range s.Markers {
		s.MarkerOrder = append(s.MarkerOrder, id)
	}
	sort.Strings(s.MarkerOrder)
}

func (c *Compositor) composeLink(in Inputs) {
	s := &c.scene

	active := in.HasActiveCategory && in.Toggles.Constellations
	c.constellation.SetActive(in.ActiveCategory, active, in.Now)

	s.Link = nil
	if !active {
		return
	}

	members := make([]*story.Point, 0, len(in.Stories))
	for _, p := range in.Stories {
		if p.Category != in.ActiveCategory {
			continue
		}
		if _, ok := s.Markers[p.ID]; ok {
			members = append(members, p)
		}
	}
	if len(members) < 2 {
		return
	}

	path := BuildPath(in.Camera, members)
	s.Link = RevealPath(path, c.constellation.Progress(in.Now))
	s.LinkCategory = in.ActiveCategory
}

func (c *Compositor) composeParticles(in Inputs) {
	s := &c.scene

	var fx, fy float64
	var fcat story.Category
	focused := false
	if in.Focused != nil {
		if m, ok := s.Markers[in.Focused.ID]; ok {
			fx, fy = float64(m.Cell.X), float64(m.Cell.Y)
			fcat = m.Category
			focused = true
		}
	}

	c.particles.Update(fx, fy, fcat, focused)
	s.Particles = c.particles.Particles()
}

func (c *Compositor) composeHeat(in Inputs) {
	s := &c.scene

	if !in.Toggles.Heatmap {
		s.Heat = nil
		return
	}

	pts := make([][2]float64, 0, len(s.Markers))
	for _, id := range s.MarkerOrder {
		m := s.Markers[id]
		pts = append(pts, [2]float64{float64(m.Cell.X), float64(m.Cell.Y)})
	}

	s.Heat = c.heatmap.Update(pts, in.Camera.Width, in.Camera.Height)
	s.HeatThresholds = c.heatmap.Thresholds()
}

// composeLabel anchors the hover label to the country centroid,
// hiding it once the centroid rotates past the horizon
func (c *Compositor) composeLabel(in Inputs) {
	s := &c.scene
	s.Label = nil

	if in.Hovered == nil || in.Hovered.Name == "" {
		return
	}

	ctr := in.Hovered.Centroid
	if !in.Camera.Visible(ctr.Lon, ctr.Lat) {
		return
	}
	cell, ok := in.Camera.Project(ctr.Lon, ctr.Lat)
	if !ok {
		return
	}

	s.Label = &Label{Text: in.Hovered.Name, Cell: cell}
}
