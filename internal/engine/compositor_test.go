package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstglobe/internal/geo"
	"firstglobe/internal/story"
)

func testCompositor(world *geo.World) *Compositor {
	particles := NewParticleField(DefaultParticleTuning(), 1)
	heatmap := NewHeatmap(DefaultHeatmapTuning())
	return NewCompositor(world, particles, heatmap)
}

func frontCamera() geo.Camera {
	return geo.Camera{Scale: 30, Width: 120, Height: 40, Aspect: 2}
}

func testStories(created time.Time) []*story.Point {
	return []*story.Point{
		{ID: "s1", Category: story.CategoryTravel, Lon: 0, Lat: 0, CreatedAt: created},
		{ID: "s2", Category: story.CategoryTravel, Lon: 90, Lat: 0, CreatedAt: created},
	}
}

func TestComposeMarkersVisibility(t *testing.T) {
	comp := testCompositor(nil)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(now.Add(-48 * time.Hour))

	scene := comp.Compose(Inputs{
		Camera:  frontCamera(),
		Stories: stories,
		Now:     now,
	})

	// Both stories sit on the near hemisphere, s2 exactly on the limb
	require.Len(t, scene.Markers, 2)
	assert.Equal(t, []string{"s1", "s2"}, scene.MarkerOrder)
	assert.Equal(t, geo.Cell{X: 60, Y: 20}, scene.Markers["s1"].Cell)
	assert.False(t, scene.Markers["s1"].Glow)
	assert.False(t, scene.Ready)
}

func TestComposeMarkersCulledByRotation(t *testing.T) {
	comp := testCompositor(nil)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(now.Add(-48 * time.Hour))

	cam := frontCamera()
	comp.Compose(Inputs{Camera: cam, Stories: stories, Now: now})

	// Rotating the far side into view removes both retained markers
	cam.RotLon = 135
	scene := comp.Compose(Inputs{Camera: cam, Stories: stories, Now: now})

	assert.Empty(t, scene.Markers)
	assert.Empty(t, scene.MarkerOrder)
	assert.Nil(t, scene.Link)
}

func TestComposeMarkerGlow(t *testing.T) {
	comp := testCompositor(nil)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	stories := []*story.Point{
		{ID: "fresh", Category: story.CategoryHome, Lon: 10, Lat: 10, CreatedAt: now.Add(-time.Hour)},
		{ID: "old", Category: story.CategoryHome, Lon: -10, Lat: -10, CreatedAt: now.Add(-48 * time.Hour)},
	}

	scene := comp.Compose(Inputs{
		Camera:  frontCamera(),
		Stories: stories,
		Focused: stories[1],
		Now:     now,
	})

	require.Len(t, scene.Markers, 2)
	assert.True(t, scene.Markers["fresh"].Glow)
	assert.False(t, scene.Markers["fresh"].Focused)
	assert.True(t, scene.Markers["old"].Glow)
	assert.True(t, scene.Markers["old"].Focused)
}

func TestComposeLinkRevealsOverTime(t *testing.T) {
	comp := testCompositor(nil)
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(t0.Add(-48 * time.Hour))

	in := Inputs{
		Camera:            frontCamera(),
		Stories:           stories,
		ActiveCategory:    story.CategoryTravel,
		HasActiveCategory: true,
		Toggles:           Toggles{Constellations: true},
		Now:               t0,
	}

	// The reveal clock starts on activation, so the first frame has no
	// visible stroke yet
	scene := comp.Compose(in)
	assert.Nil(t, scene.Link)

	in.Now = t0.Add(RevealDuration)
	scene = comp.Compose(in)
	require.NotEmpty(t, scene.Link)
	assert.Equal(t, story.CategoryTravel, scene.LinkCategory)
	assert.GreaterOrEqual(t, len(scene.Link), 2)
}

func TestComposeLinkNeedsTwoVisibleMembers(t *testing.T) {
	comp := testCompositor(nil)
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	stories := []*story.Point{
		{ID: "near", Category: story.CategoryTravel, Lon: 0, Lat: 0},
		{ID: "far", Category: story.CategoryTravel, Lon: 180, Lat: 0},
	}

	in := Inputs{
		Camera:            frontCamera(),
		Stories:           stories,
		ActiveCategory:    story.CategoryTravel,
		HasActiveCategory: true,
		Toggles:           Toggles{Constellations: true},
		Now:               t0,
	}
	comp.Compose(in)

	in.Now = t0.Add(RevealDuration)
	scene := comp.Compose(in)
	assert.Nil(t, scene.Link)
}

func TestComposeLinkFiltersByCategory(t *testing.T) {
	comp := testCompositor(nil)
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	stories := []*story.Point{
		{ID: "t1", Category: story.CategoryTravel, Lon: -20, Lat: 0},
		{ID: "t2", Category: story.CategoryTravel, Lon: 20, Lat: 0},
		{ID: "j1", Category: story.CategoryJob, Lon: 0, Lat: 20},
	}

	in := Inputs{
		Camera:            frontCamera(),
		Stories:           stories,
		ActiveCategory:    story.CategoryJob,
		HasActiveCategory: true,
		Toggles:           Toggles{Constellations: true},
		Now:               t0,
	}
	comp.Compose(in)

	// Only one Job story is visible; no stroke even fully revealed
	in.Now = t0.Add(2 * RevealDuration)
	scene := comp.Compose(in)
	assert.Nil(t, scene.Link)
}

func TestComposeLinkRespectsToggle(t *testing.T) {
	comp := testCompositor(nil)
	t0 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(t0.Add(-48 * time.Hour))

	in := Inputs{
		Camera:            frontCamera(),
		Stories:           stories,
		ActiveCategory:    story.CategoryTravel,
		HasActiveCategory: true,
		Toggles:           Toggles{Constellations: false},
		Now:               t0,
	}
	comp.Compose(in)

	in.Now = t0.Add(RevealDuration)
	scene := comp.Compose(in)
	assert.Nil(t, scene.Link)
}

func TestComposeParticlesFollowFocus(t *testing.T) {
	particles := NewParticleField(ParticleTuning{SpawnChance: 1, Fade: 0.02, Speed: 0}, 1)
	comp := NewCompositor(nil, particles, NewHeatmap(DefaultHeatmapTuning()))
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(now.Add(-48 * time.Hour))

	in := Inputs{Camera: frontCamera(), Stories: stories, Now: now}

	scene := comp.Compose(in)
	assert.Empty(t, scene.Particles)

	in.Focused = stories[0]
	scene = comp.Compose(in)
	require.Len(t, scene.Particles, 1)
	assert.InDelta(t, 60, scene.Particles[0].X, 1e-9)
	assert.InDelta(t, 20, scene.Particles[0].Y, 1e-9)
	assert.Equal(t, story.CategoryTravel, scene.Particles[0].Category)
}

func TestComposeHeatToggle(t *testing.T) {
	comp := testCompositor(nil)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stories := testStories(now.Add(-48 * time.Hour))

	in := Inputs{Camera: frontCamera(), Stories: stories, Now: now}

	scene := comp.Compose(in)
	assert.Nil(t, scene.Heat)

	in.Toggles.Heatmap = true
	scene = comp.Compose(in)
	require.NotNil(t, scene.Heat)
	assert.Greater(t, scene.Heat.At(60, 20), 0.0)
	assert.Equal(t, DefaultHeatmapTuning().Thresholds, scene.HeatThresholds)
}

func TestComposeNight(t *testing.T) {
	comp := testCompositor(nil)
	now := time.Date(2026, 3, 21, 12, 0, 0, 0, time.UTC)

	scene := comp.Compose(Inputs{Camera: frontCamera(), Now: now})
	assert.False(t, scene.NightEnabled)

	scene = comp.Compose(Inputs{
		Camera:  frontCamera(),
		Toggles: Toggles{Night: true},
		Now:     now,
	})
	assert.True(t, scene.NightEnabled)

	wantLon, wantLat := geo.Antisolar(now)
	assert.Equal(t, wantLon, scene.NightLon)
	assert.Equal(t, wantLat, scene.NightLat)
}

func TestComposeLabelFollowsCentroid(t *testing.T) {
	country, err := geo.NewCountry("Squareland", [][]geo.LonLat{{
		{Lon: 0, Lat: 0}, {Lon: 10, Lat: 0}, {Lon: 10, Lat: 10}, {Lon: 0, Lat: 10},
	}})
	require.NoError(t, err)

	world := &geo.World{Countries: []*geo.Country{country}}
	comp := testCompositor(world)
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	scene := comp.Compose(Inputs{Camera: frontCamera(), Hovered: country, Now: now})
	require.NotNil(t, scene.Label)
	assert.Equal(t, "Squareland", scene.Label.Text)
	assert.True(t, scene.Ready)

	// The label disappears once the centroid rotates past the horizon
	cam := frontCamera()
	cam.RotLon = 135
	scene = comp.Compose(Inputs{Camera: cam, Hovered: country, Now: now})
	assert.Nil(t, scene.Label)

	scene = comp.Compose(Inputs{Camera: frontCamera(), Now: now})
	assert.Nil(t, scene.Label)
}
