package render

import (
	"github.com/gdamore/tcell/v2"
)

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Surface is the output terminal, satisfied by tcell.Screen
type Surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Show()
}

// Buffer is a compositor backed by a Cell array, flushed once per frame
type Buffer struct {
	cells      []Cell
	width      int
	height     int
	background RGB
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int, background RGB) *Buffer {
	b := &Buffer{background: background}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Size returns width and height in cells
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

// SetBackground changes the clear color used from the next Clear
func (b *Buffer) SetBackground(bg RGB) {
	b.background = bg
}

// Background returns the clear color
func (b *Buffer) Background() RGB {
	return b.background
}

// Clear resets all cells to empty using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: b.background, Bg: b.background}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// inBounds returns true if in screen bounds
func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y, zero Cell when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a cell with specified blend mode
// A zero rune keeps the existing glyph
func (b *Buffer) Set(x, y int, r rune, fg, bg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]

	if r != 0 {
		dst.Rune = r
	}
	flags := uint8(mode) & 0xF0
	if flags&flagBg != 0 {
		dst.Bg = mode.apply(dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		dst.Fg = mode.apply(dst.Fg, fg, alpha)
	}
}

// SetWithBg writes an opaque cell
func (b *Buffer) SetWithBg(x, y int, r rune, fg, bg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = Cell{Rune: r, Fg: fg, Bg: bg}
}

// SetFgOnly writes rune and foreground while preserving the background
func (b *Buffer) SetFgOnly(x, y int, r rune, fg RGB) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	dst.Rune = r
	dst.Fg = fg
}

// Text writes s left to right starting at x, y, clipped to the buffer
func (b *Buffer) Text(x, y int, s string, fg RGB) int {
	n := 0
	for _, r := range s {
		b.SetFgOnly(x+n, y, r, fg)
		n++
	}
	return n
}

// Flush writes every cell to the screen and shows it
func (b *Buffer) Flush(s Surface) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.SetContent(x, y, r, nil, Style(c.Fg, c.Bg))
		}
	}
	s.Show()
}

// Style converts a cell color pair to a tcell style
func Style(fg, bg RGB) tcell.Style {
	return tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(int32(fg.R), int32(fg.G), int32(fg.B))).
		Background(tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)))
}
