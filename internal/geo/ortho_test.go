package geo

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCamera() Camera {
	return Camera{
		RotLon: 0,
		RotLat: 0,
		Scale:  40,
		Width:  120,
		Height: 40,
		Aspect: 2.0,
	}
}

func TestCenterProjectsToViewportCenter(t *testing.T) {
	cam := testCamera()

	x, y, ok := cam.ProjectF(0, 0)
	require.True(t, ok)
	assert.InDelta(t, 60, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)
}

func TestCenterFollowsRotation(t *testing.T) {
	cam := testCamera()
	cam.RotLon = -48.8
	cam.RotLat = -2.35

	lon, lat := cam.Center()
	assert.InDelta(t, 48.8, lon, 1e-9)
	assert.InDelta(t, 2.35, lat, 1e-9)

	cell, ok := cam.Project(48.8, 2.35)
	require.True(t, ok)
	assert.Equal(t, Cell{X: 60, Y: 20}, cell)
}

func TestAspectCompressesVertical(t *testing.T) {
	cam := testCamera()

	// 30 degrees north of center: sin(30) = 0.5 of the radius, halved
	// again by the cell aspect
	_, y, ok := cam.ProjectF(0, 30)
	require.True(t, ok)
	assert.InDelta(t, 20-0.5*40/2.0, y, 1e-9)
}

func TestFarHemisphereCulled(t *testing.T) {
	cam := testCamera()

	_, _, ok := cam.ProjectF(180, 0)
	assert.False(t, ok)

	_, _, ok = cam.ProjectF(-120, 40)
	assert.False(t, ok)

	// Exactly on the limb still projects
	_, _, ok = cam.ProjectF(90, 0)
	assert.True(t, ok)
}

func TestVisibleIncludesLimb(t *testing.T) {
	cam := testCamera()

	assert.True(t, cam.Visible(0, 0))
	assert.True(t, cam.Visible(90, 0))
	assert.True(t, cam.Visible(0, 90))
	assert.False(t, cam.Visible(91, 0))
	assert.False(t, cam.Visible(180, 0))
}

func TestProjectInvertRoundTrip(t *testing.T) {
	rotations := []struct{ lon, lat float64 }{
		{0, 0},
		{45, 20},
		{170, -30},
		{-90, 55},
	}
	offsets := []struct{ dLon, dLat float64 }{
		{0, 0},
		{10, 5},
		{-25, 15},
		{40, -20},
	}

	for _, rot := range rotations {
		cam := testCamera()
		cam.RotLon = rot.lon
		cam.RotLat = rot.lat
		lon0, lat0 := cam.Center()

		for _, off := range offsets {
			lon := normalizeLon(lon0 + off.dLon)
			lat := lat0 + off.dLat
			if lat > 85 || lat < -85 {
				continue
			}

			name := fmt.Sprintf("rot(%.0f,%.0f)+(%.0f,%.0f)", rot.lon, rot.lat, off.dLon, off.dLat)
			t.Run(name, func(t *testing.T) {
				x, y, ok := cam.ProjectF(lon, lat)
				require.True(t, ok)

				gotLon, gotLat, ok := cam.Invert(x, y)
				require.True(t, ok)
				assert.InDelta(t, 0, AngularDiff(lon, gotLon), 1e-6)
				assert.InDelta(t, lat, gotLat, 1e-6)
			})
		}
	}
}

func TestInvertOffDisc(t *testing.T) {
	cam := testCamera()

	_, _, ok := cam.Invert(0, 0)
	assert.False(t, ok)

	_, _, ok = cam.Invert(float64(cam.Width), float64(cam.Height)/2)
	assert.False(t, ok)

	assert.False(t, cam.OnDisc(0, 0))
	assert.True(t, cam.OnDisc(60, 20))
}

func TestInvertCenterExact(t *testing.T) {
	cam := testCamera()
	cam.RotLon = -100
	cam.RotLat = 30

	lon0, lat0 := cam.Center()
	lon, lat, ok := cam.Invert(60, 20)
	require.True(t, ok)
	assert.InDelta(t, lon0, lon, 1e-9)
	assert.InDelta(t, lat0, lat, 1e-9)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, Distance(12, 34, 12, 34), 1e-12)
	assert.InDelta(t, math.Pi/2, Distance(0, 0, 90, 0), 1e-12)
	assert.InDelta(t, math.Pi/2, Distance(0, 0, 0, 90), 1e-12)
	assert.InDelta(t, math.Pi, Distance(0, 0, 180, 0), 1e-9)
}

func TestInterpolate(t *testing.T) {
	lon, lat := Interpolate(0, 0, 90, 0, 0.5)
	assert.InDelta(t, 45, lon, 1e-9)
	assert.InDelta(t, 0, lat, 1e-9)

	lon, lat = Interpolate(10, 20, 80, -40, 0)
	assert.InDelta(t, 10, lon, 1e-9)
	assert.InDelta(t, 20, lat, 1e-9)

	lon, lat = Interpolate(10, 20, 80, -40, 1)
	assert.InDelta(t, 80, lon, 1e-9)
	assert.InDelta(t, -40, lat, 1e-9)

	// Degenerate leg stays put
	lon, lat = Interpolate(5, 5, 5, 5, 0.7)
	assert.InDelta(t, 5, lon, 1e-9)
	assert.InDelta(t, 5, lat, 1e-9)
}

func TestAngularDiffShortWay(t *testing.T) {
	assert.InDelta(t, 20, AngularDiff(170, -170), 1e-12)
	assert.InDelta(t, -20, AngularDiff(-170, 170), 1e-12)
	assert.InDelta(t, 10, AngularDiff(0, 10), 1e-12)
	assert.InDelta(t, -180, AngularDiff(0, 180), 1e-12)
}
