package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"firstglobe/internal/engine"
	"firstglobe/internal/geo"
)

const (
	oceanChar    = '·'
	landChar     = '-'
	linkChar     = '·'
	particleChar = '∙'
	markerChar   = '●'
	focusChar    = '◉'
	haloChar     = '◦'
)

// heatChars shade density bands from light to heavy
var heatChars = []rune{'░', '▒', '▓', '█'}

// GlobeRenderer rasterizes a composed scene onto the canvas, walking
// the layers strictly back to front so overlays never invert:
// ocean, night band, land, constellation, particles, heatmap,
// markers, hover label.
type GlobeRenderer struct {
	canvas *Canvas
}

// NewGlobeRenderer creates a renderer targeting the given canvas
func NewGlobeRenderer(canvas *Canvas) *GlobeRenderer {
	return &GlobeRenderer{canvas: canvas}
}

// UpdateCanvas swaps the target canvas after a resize
func (g *GlobeRenderer) UpdateCanvas(canvas *Canvas) {
	g.canvas = canvas
}

// Render draws the scene
func (g *GlobeRenderer) Render(scene *engine.Scene) {
	g.drawOceanAndNight(scene)
	g.drawLand(scene)
	g.drawLink(scene)
	g.drawParticles(scene)
	g.drawHeat(scene)
	g.drawMarkers(scene)
	g.drawLabel(scene)
}

// drawOceanAndNight fills the projected disc, shading the night
// hemisphere when the terminator overlay is enabled. Each disc cell
// is inverted back to a geographic point for the day/night test.
func (g *GlobeRenderer) drawOceanAndNight(scene *engine.Scene) {
	cam := scene.Camera

	for y := 0; y < cam.Height; y++ {
		for x := 0; x < cam.Width; x++ {
			fx, fy := float64(x), float64(y)
			if !cam.OnDisc(fx, fy) {
				continue
			}

			style := StyleOcean
			if scene.NightEnabled {
				if lon, lat, ok := cam.Invert(fx, fy); ok {
					if geo.Distance(lon, lat, scene.NightLon, scene.NightLat) < math.Pi/2 {
						style = StyleOceanNight
					}
				}
			}
			g.canvas.Set(x, y, oceanChar, style)
		}
	}
}

// drawLand outlines every country ring, clipping segments at the
// horizon: a segment is drawn only when both endpoints project onto
// the near hemisphere
func (g *GlobeRenderer) drawLand(scene *engine.Scene) {
	if !scene.Ready {
		return
	}
	cam := scene.Camera

	for _, country := range scene.Countries {
		for _, ring := range country.Rings {
			var prev geo.Cell
			var prevOK bool
			var prevNight bool

			for i, pt := range ring {
				cell, ok := cam.Project(pt.Lon, pt.Lat)
				night := false
				if ok && scene.NightEnabled {
					night = geo.Distance(pt.Lon, pt.Lat, scene.NightLon, scene.NightLat) < math.Pi/2
				}

				if i > 0 && ok && prevOK {
					style := StyleLand
					if night && prevNight {
						style = StyleLandNight
					}
					g.drawLine(prev.X, prev.Y, cell.X, cell.Y, landChar, style)
				}
				prev, prevOK, prevNight = cell, ok, night
			}
		}
	}
}

func (g *GlobeRenderer) drawLink(scene *engine.Scene) {
	if len(scene.Link) < 2 {
		return
	}
	style := CategoryStyle(scene.LinkCategory)

	for i := 1; i < len(scene.Link); i++ {
		a, b := scene.Link[i-1], scene.Link[i]
		g.drawLine(int(math.Round(a[0])), int(math.Round(a[1])),
			int(math.Round(b[0])), int(math.Round(b[1])), linkChar, style)
	}
}

func (g *GlobeRenderer) drawParticles(scene *engine.Scene) {
	for _, p := range scene.Particles {
		g.canvas.Set(int(math.Round(p.X)), int(math.Round(p.Y)),
			particleChar, FadedCategoryStyle(p.Category, p.Life))
	}
}

func (g *GlobeRenderer) drawHeat(scene *engine.Scene) {
	grid := scene.Heat
	if grid == nil || grid.Max <= 0 {
		return
	}

	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			band := grid.Band(x, y, scene.HeatThresholds)
			if band <= 0 {
				continue
			}

			t := float64(band) / float64(scene.HeatThresholds)
			char := heatChars[min(band*len(heatChars)/(scene.HeatThresholds+1), len(heatChars)-1)]
			g.canvas.Set(x, y, char, HeatStyle(t))
		}
	}
}

func (g *GlobeRenderer) drawMarkers(scene *engine.Scene) {
	// With the heatmap up, markers reduce to faint points so the
	// density bands stay readable
	faint := scene.Heat != nil

	for _, id := range scene.MarkerOrder {
		m := scene.Markers[id]

		if faint {
			g.canvas.Set(m.Cell.X, m.Cell.Y, oceanChar, StyleLabel.Dim(true))
			continue
		}

		style := CategoryStyle(m.Category)
		char := markerChar
		if m.Focused {
			char = focusChar
			style = style.Bold(true)
		}

		if m.Glow {
			style = style.Bold(true)
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				g.canvas.SetIfEmpty(m.Cell.X+d[0], m.Cell.Y+d[1], haloChar, style.Dim(true))
			}
		}

		g.canvas.Set(m.Cell.X, m.Cell.Y, char, style)
	}
}

// drawLabel renders the country name as a pill centered on the
// polygon's projected centroid
func (g *GlobeRenderer) drawLabel(scene *engine.Scene) {
	if scene.Label == nil {
		return
	}

	text := " " + scene.Label.Text + " "
	x := scene.Label.Cell.X - len(text)/2
	y := scene.Label.Cell.Y

	g.canvas.DrawText(x, y, text, StyleLabelPill)
}

// drawLine implements Bresenham's line algorithm on the canvas
func (g *GlobeRenderer) drawLine(x0, y0, x1, y1 int, char rune, style tcell.Style) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}

	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy

	for {
		g.canvas.Set(x0, y0, char, style)

		if x0 == x1 && y0 == y1 {
			break
		}

		e2 := 2 * err

		if e2 > -dy {
			err -= dy
			x0 += sx
		}

		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
