package render

import (
	"github.com/gdamore/tcell/v2"
)

// Canvas represents a 2D grid of cells the globe is rasterized into
// before being blitted to the screen
type Canvas struct {
	width  int
	height int
	cells  [][]Cell
}

// Cell represents a single character cell with style
type Cell struct {
	Char  rune
	Style tcell.Style
}

// NewCanvas creates a new blank canvas
func NewCanvas(width, height int) *Canvas {
	cells := make([][]Cell, height)
	for i := range cells {
		cells[i] = make([]Cell, width)
		for j := range cells[i] {
			cells[i][j] = Cell{
				Char:  ' ',
				Style: tcell.StyleDefault,
			}
		}
	}

	return &Canvas{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Set sets the character and style at the given position
// Coordinates are 0-indexed with (0,0) at top-left
func (c *Canvas) Set(x, y int, char rune, style tcell.Style) {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cells[y][x] = Cell{Char: char, Style: style}
	}
}

// SetIfEmpty sets a cell only when it still holds a space or the
// ocean backdrop, so halos and shading never overwrite markers
func (c *Canvas) SetIfEmpty(x, y int, char rune, style tcell.Style) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	cur := c.cells[y][x].Char
	if cur == ' ' || cur == oceanChar {
		c.cells[y][x] = Cell{Char: char, Style: style}
	}
}

// Get retrieves the cell at the given position
func (c *Canvas) Get(x, y int) Cell {
	if x >= 0 && x < c.width && y >= 0 && y < c.height {
		return c.cells[y][x]
	}
	return Cell{Char: ' ', Style: tcell.StyleDefault}
}

// Clear resets the entire canvas to spaces with default style
func (c *Canvas) Clear() {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = Cell{Char: ' ', Style: tcell.StyleDefault}
		}
	}
}

// DrawText draws a string at the given position
func (c *Canvas) DrawText(x, y int, text string, style tcell.Style) {
	for i, char := range text {
		c.Set(x+i, y, char, style)
	}
}

// Width returns the canvas width
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height
func (c *Canvas) Height() int {
	return c.height
}

// Blit renders the canvas to a tcell screen
func (c *Canvas) Blit(screen tcell.Screen, offsetX, offsetY int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := c.cells[y][x]
			screen.SetContent(offsetX+x, offsetY+y, cell.Char, nil, cell.Style)
		}
	}
}
