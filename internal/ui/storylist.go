package ui

import (
	"firstglobe/internal/render"
	"firstglobe/internal/story"

	"github.com/gdamore/tcell/v2"
)

// StoryList displays a scrollable list of memories
type StoryList struct {
	stories       []*story.Point
	selectedIndex int
	scrollOffset  int
	maxVisible    int
	x, y          int
	width, height int
}

// NewStoryList creates a new story list panel
func NewStoryList(x, y, width, height int) *StoryList {
	maxVisible := height - 2 // Account for border
	if maxVisible < 1 {
		maxVisible = 1
	}

	return &StoryList{
		stories:       make([]*story.Point, 0),
		selectedIndex: 0,
		scrollOffset:  0,
		maxVisible:    maxVisible,
		x:             x,
		y:             y,
		width:         width,
		height:        height,
	}
}

// Update refreshes the story list from the latest snapshot
func (l *StoryList) Update(stories []*story.Point) {
	l.stories = stories

	if l.selectedIndex >= len(l.stories) {
		l.selectedIndex = len(l.stories) - 1
	}
	if l.selectedIndex < 0 {
		l.selectedIndex = 0
	}

	l.adjustScroll()
}

// SelectNext moves selection down
func (l *StoryList) SelectNext() {
	if l.selectedIndex < len(l.stories)-1 {
		l.selectedIndex++
		l.adjustScroll()
	}
}

// SelectPrev moves selection up
func (l *StoryList) SelectPrev() {
	if l.selectedIndex > 0 {
		l.selectedIndex--
		l.adjustScroll()
	}
}

// adjustScroll keeps the selected item visible
func (l *StoryList) adjustScroll() {
	if l.selectedIndex >= l.scrollOffset+l.maxVisible {
		l.scrollOffset = l.selectedIndex - l.maxVisible + 1
	}

	if l.selectedIndex < l.scrollOffset {
		l.scrollOffset = l.selectedIndex
	}

	if l.scrollOffset < 0 {
		l.scrollOffset = 0
	}
}

// GetSelected returns the currently selected story
func (l *StoryList) GetSelected() *story.Point {
	if l.selectedIndex >= 0 && l.selectedIndex < len(l.stories) {
		return l.stories[l.selectedIndex]
	}
	return nil
}

// Draw renders the story list to the screen
func (l *StoryList) Draw(screen tcell.Screen) {
	// Clear the entire panel area first (make it opaque)
	defaultStyle := tcell.StyleDefault
	for row := l.y + 1; row < l.y+l.height-1; row++ {
		for col := l.x + 1; col < l.x+l.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, defaultStyle)
		}
	}

	drawBorder(screen, l.x, l.y, l.width, l.height)

	title := "Memories"
	titleX := l.x + (l.width-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, l.y, ch, nil, render.StyleLabel)
	}

	visibleCount := min(l.maxVisible, len(l.stories)-l.scrollOffset)
	for i := 0; i < visibleCount; i++ {
		idx := l.scrollOffset + i
		if idx >= len(l.stories) {
			break
		}

		p := l.stories[idx]
		text := p.ListDisplay()

		style := render.StyleListItem
		if idx == l.selectedIndex {
			style = render.StyleListSelected
		}

		x := l.x + 1
		y := l.y + i + 1

		// The category glyph keeps its color even inside the selection
		glyphStyle := render.CategoryStyle(p.Category)
		if idx == l.selectedIndex {
			glyphStyle = style
		}

		col := 0
		for _, ch := range text {
			if col >= l.width-2 {
				break
			}
			s := style
			if col == 0 {
				s = glyphStyle
			}
			screen.SetContent(x+col, y, ch, nil, s)
			col++
		}

		for ; col < l.width-2; col++ {
			screen.SetContent(x+col, y, ' ', nil, style)
		}
	}

	if len(l.stories) > l.maxVisible {
		screen.SetContent(l.x+l.width-2, l.y, '↕', nil, render.StyleLabel)
	}
}

// UpdateDimensions updates the view dimensions
func (l *StoryList) UpdateDimensions(x, y, width, height int) {
	l.x = x
	l.y = y
	l.width = width
	l.height = height
	l.maxVisible = height - 2
	if l.maxVisible < 1 {
		l.maxVisible = 1
	}
	l.adjustScroll()
}

// drawBorder draws a panel border shared by the list and detail views
func drawBorder(screen tcell.Screen, x, y, width, height int) {
	style := render.StyleLabel

	screen.SetContent(x, y, '┌', nil, style)
	screen.SetContent(x+width-1, y, '┐', nil, style)
	screen.SetContent(x, y+height-1, '└', nil, style)
	screen.SetContent(x+width-1, y+height-1, '┘', nil, style)

	for i := 1; i < width-1; i++ {
		screen.SetContent(x+i, y, '─', nil, style)
		screen.SetContent(x+i, y+height-1, '─', nil, style)
	}

	for i := 1; i < height-1; i++ {
		screen.SetContent(x, y+i, '│', nil, style)
		screen.SetContent(x+width-1, y+i, '│', nil, style)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
