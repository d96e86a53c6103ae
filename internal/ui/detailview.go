package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"firstglobe/internal/render"
	"firstglobe/internal/story"
)

// DetailView displays the full text of a selected memory
type DetailView struct {
	story         *story.Point
	x, y          int
	width, height int
}

// NewDetailView creates a new detail view
func NewDetailView(x, y, width, height int) *DetailView {
	return &DetailView{
		x:      x,
		y:      y,
		width:  width,
		height: height,
	}
}

// SetStory sets the story to display
func (d *DetailView) SetStory(p *story.Point) {
	d.story = p
}

// Draw renders the detail view to the screen
func (d *DetailView) Draw(screen tcell.Screen) {
	if d.story == nil {
		d.drawEmpty(screen)
		return
	}

	// Clear the entire panel area first (make it opaque)
	defaultStyle := tcell.StyleDefault
	for row := d.y + 1; row < d.y+d.height-1; row++ {
		for col := d.x + 1; col < d.x+d.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, defaultStyle)
		}
	}

	drawBorder(screen, d.x, d.y, d.width, d.height)

	p := d.story
	title := fmt.Sprintf(" %c %s ", p.Category.Glyph(), p.Category.String())
	titleX := d.x + (d.width-len(title))/2
	for i, ch := range title {
		screen.SetContent(titleX+i, d.y, ch, nil, render.CategoryStyle(p.Category).Bold(true))
	}

	lines := []string{
		fmt.Sprintf("%s, %d", p.Place(), p.Year),
	}
	lines = append(lines, wrapText(p.Text, d.width-4)...)
	lines = append(lines, "",
		fmt.Sprintf("♥ %d   me too %d   hug %d", p.Reactions.Heart, p.Reactions.MeToo, p.Reactions.Hug))

	y := d.y + 1
	for i, line := range lines {
		if y+i >= d.y+d.height-1 {
			break
		}
		d.drawLine(screen, d.x+2, y+i, line)
	}

	instructions := "ESC to return"
	instX := d.x + (d.width-len(instructions))/2
	instY := d.y + d.height - 1
	for i, ch := range instructions {
		screen.SetContent(instX+i, instY, ch, nil, render.StyleLabel.Dim(true))
	}
}

// drawEmpty draws an empty detail view
func (d *DetailView) drawEmpty(screen tcell.Screen) {
	defaultStyle := tcell.StyleDefault
	for row := d.y + 1; row < d.y+d.height-1; row++ {
		for col := d.x + 1; col < d.x+d.width-1; col++ {
			screen.SetContent(col, row, ' ', nil, defaultStyle)
		}
	}

	drawBorder(screen, d.x, d.y, d.width, d.height)
	text := "No memory selected"
	x := d.x + (d.width-len(text))/2
	y := d.y + d.height/2
	for i, ch := range text {
		screen.SetContent(x+i, y, ch, nil, render.StyleLabel)
	}
}

// drawLine draws a single line of text clipped to the panel
func (d *DetailView) drawLine(screen tcell.Screen, x, y int, text string) {
	col := 0
	for _, ch := range text {
		if col >= d.width-4 {
			break
		}
		screen.SetContent(x+col, y, ch, nil, render.StyleLabel)
		col++
	}
}

// UpdateDimensions updates the view dimensions
func (d *DetailView) UpdateDimensions(x, y, width, height int) {
	d.x = x
	d.y = y
	d.width = width
	d.height = height
}

// wrapText breaks text into lines no wider than the given width
func wrapText(text string, width int) []string {
	if width < 1 {
		return nil
	}

	words := strings.Fields(text)
	lines := make([]string, 0, 4)
	current := ""

	for _, word := range words {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= width:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}
