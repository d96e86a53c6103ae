package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"firstglobe/internal/story"
)

// Styles for the fixed parts of the globe and the chrome panels
var (
	StyleOcean        = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x1e, 0x29, 0x3b))
	StyleOceanNight   = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x0c, 0x10, 0x18))
	StyleLand         = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x47, 0x55, 0x69))
	StyleLandNight    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x22, 0x29, 0x33))
	StyleLabel        = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleLabelPill    = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.NewRGBColor(0x0f, 0x17, 0x2a)).Bold(true)
	StyleListItem     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	StyleListSelected = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	StyleStatus       = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// categoryColors is the fixed neon palette, parsed once at startup
var categoryColors = func() map[story.Category]tcell.Color {
	m := make(map[story.Category]tcell.Color, 8)
	for _, c := range story.Categories() {
		col, err := colorful.Hex(c.Hex())
		if err != nil {
			m[c] = tcell.ColorWhite
			continue
		}
		m[c] = toTcell(col)
	}
	return m
}()

// CategoryColor returns the marker color for a category
func CategoryColor(c story.Category) tcell.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return tcell.ColorWhite
}

// CategoryStyle returns the base marker style for a category
func CategoryStyle(c story.Category) tcell.Style {
	return tcell.StyleDefault.Foreground(CategoryColor(c))
}

// FadedCategoryStyle dims a category color toward black as life
// drains, used for dying particles
func FadedCategoryStyle(c story.Category, life float64) tcell.Style {
	col, err := colorful.Hex(c.Hex())
	if err != nil {
		return tcell.StyleDefault
	}
	faded := col.BlendLuv(colorful.Color{}, 1-clamp01(life))
	return tcell.StyleDefault.Foreground(toTcell(faded))
}

// heatStops is an inferno-like sequential ramp for density bands
var heatStops = func() []colorful.Color {
	hexes := []string{"#000004", "#781c6d", "#ed6925", "#fcffa4"}
	out := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			c = colorful.Color{R: 1, G: 1, B: 1}
		}
		out = append(out, c)
	}
	return out
}()

// HeatStyle maps a density fraction in [0, 1] to a ramp color
func HeatStyle(t float64) tcell.Style {
	t = clamp01(t)
	pos := t * float64(len(heatStops)-1)
	i := int(pos)
	if i >= len(heatStops)-1 {
		return tcell.StyleDefault.Foreground(toTcell(heatStops[len(heatStops)-1]))
	}
	c := heatStops[i].BlendLuv(heatStops[i+1], pos-float64(i))
	return tcell.StyleDefault.Foreground(toTcell(c))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
