package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"firstglobe/internal/story"
)

func makeStories(n int) []*story.Point {
	out := make([]*story.Point, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &story.Point{
			ID:       fmt.Sprintf("s%02d", i),
			Category: story.CategoryTravel,
			Year:     2000 + i,
		})
	}
	return out
}

func TestStoryListSelection(t *testing.T) {
	l := NewStoryList(0, 0, 24, 10)
	l.Update(makeStories(3))

	require.NotNil(t, l.GetSelected())
	assert.Equal(t, "s00", l.GetSelected().ID)

	l.SelectNext()
	assert.Equal(t, "s01", l.GetSelected().ID)

	l.SelectNext()
	l.SelectNext() // already at the end
	assert.Equal(t, "s02", l.GetSelected().ID)

	l.SelectPrev()
	assert.Equal(t, "s01", l.GetSelected().ID)
}

func TestStoryListEmpty(t *testing.T) {
	l := NewStoryList(0, 0, 24, 10)

	assert.Nil(t, l.GetSelected())
	l.SelectNext()
	l.SelectPrev()
	assert.Nil(t, l.GetSelected())
}

func TestStoryListSelectionSurvivesShrink(t *testing.T) {
	l := NewStoryList(0, 0, 24, 10)
	l.Update(makeStories(5))

	for i := 0; i < 4; i++ {
		l.SelectNext()
	}
	require.Equal(t, "s04", l.GetSelected().ID)

	// The snapshot shrank under the selection
	l.Update(makeStories(2))
	assert.Equal(t, "s01", l.GetSelected().ID)

	l.Update(nil)
	assert.Nil(t, l.GetSelected())
}

func TestStoryListScrollFollowsSelection(t *testing.T) {
	// Height 6 leaves 4 visible rows inside the border
	l := NewStoryList(0, 0, 24, 6)
	l.Update(makeStories(10))

	for i := 0; i < 6; i++ {
		l.SelectNext()
	}
	assert.Equal(t, "s06", l.GetSelected().ID)
	assert.Equal(t, 3, l.scrollOffset)

	for i := 0; i < 6; i++ {
		l.SelectPrev()
	}
	assert.Equal(t, "s00", l.GetSelected().ID)
	assert.Equal(t, 0, l.scrollOffset)
}

func TestStoryListResizeClampsScroll(t *testing.T) {
	l := NewStoryList(0, 0, 24, 6)
	l.Update(makeStories(10))
	for i := 0; i < 9; i++ {
		l.SelectNext()
	}

	l.UpdateDimensions(0, 0, 24, 14)
	assert.Equal(t, "s09", l.GetSelected().ID)
	assert.LessOrEqual(t, l.scrollOffset, l.selectedIndex)
}
