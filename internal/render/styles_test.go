package render

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"firstglobe/internal/story"
)

func brightness(s tcell.Style) int32 {
	fg, _, _ := s.Decompose()
	r, g, b := fg.RGB()
	return r + g + b
}

func TestCategoryColorsDistinct(t *testing.T) {
	seen := make(map[tcell.Color]bool)
	for _, c := range story.Categories() {
		col := CategoryColor(c)
		assert.NotEqual(t, tcell.ColorWhite, col)
		assert.False(t, seen[col], "category %v reuses a color", c)
		seen[col] = true
	}
}

func TestFadedCategoryStyleDims(t *testing.T) {
	full := brightness(FadedCategoryStyle(story.CategoryTravel, 1))
	mid := brightness(FadedCategoryStyle(story.CategoryTravel, 0.5))
	dead := brightness(FadedCategoryStyle(story.CategoryTravel, 0))

	assert.Greater(t, full, mid)
	assert.Greater(t, mid, dead)
	assert.Less(t, dead, int32(30))

	// Out of range life values clamp instead of exploding
	assert.Equal(t, brightness(FadedCategoryStyle(story.CategoryTravel, 9)), full)
	assert.Equal(t, brightness(FadedCategoryStyle(story.CategoryTravel, -2)), dead)
}

func TestHeatStyleEndpoints(t *testing.T) {
	low := brightness(HeatStyle(0))
	high := brightness(HeatStyle(1))
	assert.Less(t, low, high)

	assert.Equal(t, HeatStyle(0), HeatStyle(-1))
	assert.Equal(t, HeatStyle(1), HeatStyle(2))
}
