package engine

import (
	"time"

	"firstglobe/internal/geo"
	"firstglobe/internal/story"
)

// constellation links every visible story of the active category with
// a single connected geodesic path, revealed as an animated stroke

// RevealDuration is how long the stroke takes to draw fully
const RevealDuration = 1500 * time.Millisecond

// geodesicSegments is how many straight spans approximate each
// great-circle leg between consecutive stories
const geodesicSegments = 16

// Constellation tracks which category is active and when it became
// active, driving the stroke-reveal animation
type Constellation struct {
	active    story.Category
	hasActive bool
	started   time.Time
}

// SetActive updates the active category. Any change, including
// activation and deactivation, restarts the reveal clock.
func (c *Constellation) SetActive(cat story.Category, ok bool, now time.Time) {
	if ok == c.hasActive && (!ok || cat == c.active) {
		return
	}
	c.active = cat
	c.hasActive = ok
	c.started = now
}

// Active returns the current category, if any
func (c *Constellation) Active() (story.Category, bool) {
	return c.active, c.hasActive
}

// Progress returns the stroke reveal fraction in [0, 1]
func (c *Constellation) Progress(now time.Time) float64 {
	if !c.hasActive {
		return 0
	}
	elapsed := now.Sub(c.started)
	if elapsed >= RevealDuration {
		return 1
	}
	return float64(elapsed) / float64(RevealDuration)
}

// BuildPath threads a geodesic polyline through the given stories in
// order, projected to viewport coordinates. Legs are sampled along
// great circles so the line curves with the globe; samples that fall
// on the far hemisphere are dropped, splitting the path at the limb.
func BuildPath(cam geo.Camera, points []*story.Point) [][2]float64 {
	if len(points) < 2 {
		return nil
	}

	path := make([][2]float64, 0, (len(points)-1)*geodesicSegments+1)

	for i := 0; i < len(points)-1; i++ {
		a, b := points[i], points[i+1]
		for s := 0; s <= geodesicSegments; s++ {
			if i > 0 && s == 0 {
				continue // shared vertex with the previous leg
			}
			t := float64(s) / float64(geodesicSegments)
			lon, lat := geo.Interpolate(a.Lon, a.Lat, b.Lon, b.Lat, t)
			if x, y, ok := cam.ProjectF(lon, lat); ok {
				path = append(path, [2]float64{x, y})
			}
		}
	}

	if len(path) < 2 {
		return nil
	}
	return path
}

// RevealPath truncates a polyline to the first fraction of its
// screen-space length, implementing the stroke-reveal animation
func RevealPath(path [][2]float64, progress float64) [][2]float64 {
	if progress >= 1 || len(path) < 2 {
		return path
	}
	if progress <= 0 {
		return nil
	}

	total := 0.0
	for i := 1; i < len(path); i++ {
		total += segLen(path[i-1], path[i])
	}

	budget := total * progress
	out := [][2]float64{path[0]}
	for i := 1; i < len(path); i++ {
		l := segLen(path[i-1], path[i])
		if l <= budget {
			out = append(out, path[i])
			budget -= l
			if budget <= 0 {
				break
			}
			continue
		}
		if l > 0 {
			t := budget / l
			out = append(out, [2]float64{
				path[i-1][0] + (path[i][0]-path[i-1][0])*t,
				path[i-1][1] + (path[i][1]-path[i-1][1])*t,
			})
		}
		break
	}

	if len(out) < 2 {
		return nil
	}
	return out
}

func segLen(a, b [2]float64) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx + 0.41*dy // cheap octagonal length, close enough for a reveal
	}
	return dy + 0.41*dx
}
