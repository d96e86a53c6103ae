package engine

import (
	"math"
)

// HeatmapTuning controls the kernel density estimate and its
// recompute cadence
type HeatmapTuning struct {
	Bandwidth  float64 // Gaussian kernel radius in cells
	Thresholds int     // number of density bands
	EveryNth   int     // recompute every Nth tick; 1 = every tick
}

// DefaultHeatmapTuning mirrors the reference globe's contour density
// settings scaled to terminal resolution
func DefaultHeatmapTuning() HeatmapTuning {
	return HeatmapTuning{
		Bandwidth:  6,
		Thresholds: 8,
		EveryNth:   1,
	}
}

// HeatGrid is one computed density field over the viewport
type HeatGrid struct {
	Width  int
	Height int
	Values []float64 // row-major, Width*Height
	Max    float64
}

// At returns the density at a cell, zero outside the grid
func (g *HeatGrid) At(x, y int) float64 {
	if g == nil || x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return 0
	}
	return g.Values[y*g.Width+x]
}

// Band maps a cell to a density band in [0, thresholds]; band 0 means
// below the lowest contour and draws nothing
func (g *HeatGrid) Band(x, y int, thresholds int) int {
	if g == nil || g.Max <= 0 {
		return 0
	}
	return int(g.At(x, y) / g.Max * float64(thresholds))
}

// Heatmap computes a kernel density estimate over the projected
// visible points each frame. The recompute cadence is an explicit
// policy: with EveryNth > 1 intermediate ticks reuse the previous
// grid, trading smoothness under rotation for per-frame cost.
type Heatmap struct {
	tuning HeatmapTuning
	grid   *HeatGrid
	tick   int
}

// NewHeatmap creates a heatmap estimator
func NewHeatmap(tuning HeatmapTuning) *Heatmap {
	if tuning.EveryNth < 1 {
		tuning.EveryNth = 1
	}
	return &Heatmap{tuning: tuning}
}

// Update recomputes the density grid from projected points when the
// cadence allows, otherwise returns the cached grid. A frame with no
// visible points yields a nil grid and the overlay is skipped.
func (h *Heatmap) Update(points [][2]float64, width, height int) *HeatGrid {
	h.tick++
	if (h.tick-1)%h.tuning.EveryNth != 0 {
		return h.grid
	}

	if len(points) == 0 || width <= 0 || height <= 0 {
		h.grid = nil
		return nil
	}

	grid := &HeatGrid{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}

	sigma := h.tuning.Bandwidth
	inv2s2 := 1 / (2 * sigma * sigma)
	// Beyond three bandwidths the kernel contributes nothing visible
	reach := int(math.Ceil(sigma * 3))

	for _, pt := range points {
		cx := int(math.Round(pt[0]))
		cy := int(math.Round(pt[1]))

		for y := cy - reach; y <= cy+reach; y++ {
			if y < 0 || y >= height {
				continue
			}
			for x := cx - reach; x <= cx+reach; x++ {
				if x < 0 || x >= width {
					continue
				}
				dx := float64(x) - pt[0]
				dy := float64(y) - pt[1]
				v := math.Exp(-(dx*dx + dy*dy) * inv2s2)
				grid.Values[y*width+x] += v
			}
		}
	}

	for _, v := range grid.Values {
		if v > grid.Max {
			grid.Max = v
		}
	}

	h.grid = grid
	return grid
}

// Thresholds returns the configured number of density bands
func (h *Heatmap) Thresholds() int {
	return h.tuning.Thresholds
}
