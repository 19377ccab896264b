package render

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/spritz/mist"
)

// MistRamp maps increasing density to glyphs
var MistRamp = []rune{'·', '∙', ':', '░', '▒', '▓'}

// Mist density below this leaves the cell untouched
const mistThreshold = 0.03

// MistRenderer splats particles into a density field and shades it as glyphs
type MistRenderer struct {
	// PointScale converts projected point size (pixels) to cell radius
	PointScale float32

	density []float32
	width   int
	height  int
	drawn   int
	visible int
}

// NewMistRenderer creates a renderer with the given pixel-to-cell scale
func NewMistRenderer(pointScale float32) *MistRenderer {
	return &MistRenderer{PointScale: pointScale}
}

// Drawn returns the number of particles splatted in the last Render
func (m *MistRenderer) Drawn() int {
	return m.drawn
}

// Visible returns the number of live particles seen in the last Render, on screen or not
func (m *MistRenderer) Visible() int {
	return m.visible
}

// Density returns the accumulated density at x, y from the last Render
func (m *MistRenderer) Density(x, y int) float32 {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return 0
	}
	return m.density[y*m.width+x]
}

func (m *MistRenderer) reset(w, h int) {
	size := w * h
	if cap(m.density) < size {
		m.density = make([]float32, size)
	} else {
		m.density = m.density[:size]
		clear(m.density)
	}
	m.width = w
	m.height = h
	m.drawn = 0
	m.visible = 0
}

// Render composites every visible particle of stage into buf
func (m *MistRenderer) Render(buf *Buffer, cam *Camera, stage *mist.Stage, tint RGB) {
	w, h := buf.Size()
	m.reset(w, h)
	if w == 0 || h == 0 {
		return
	}

	stage.Each(func(p mist.Particle) {
		m.visible++
		x, y, depth, ok := cam.Project(p.Pos)
		if !ok {
			return
		}
		radius := stage.ProjectedSize(p, depth) * m.PointScale
		if m.splat(x, y, radius, p.Alpha) {
			m.drawn++
		}
	})

	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			d := m.density[cy*w+cx]
			if d < mistThreshold {
				continue
			}
			t := float64(math32.Min(d, 1))
			idx := int(t * float64(len(MistRamp)-1))
			color := MistColor(tint, t)
			buf.SetFgOnly(cx, cy, MistRamp[idx], color)
			buf.Set(cx, cy, 0, color, color, BlendScreenBg, t*0.35)
		}
	}
}

// splat adds a soft disc of weight alpha centered at fractional cell x, y
// Returns false when the disc misses the viewport
func (m *MistRenderer) splat(x, y, radius, alpha float32) bool {
	if radius < 0.5 {
		radius = 0.5
	}
	rx := radius * CellAspect
	ry := radius

	x0 := int(math32.Floor(x - rx))
	x1 := int(math32.Floor(x + rx))
	y0 := int(math32.Floor(y - ry))
	y1 := int(math32.Floor(y + ry))
	if x1 < 0 || y1 < 0 || x0 >= m.width || y0 >= m.height {
		return false
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, m.width-1), min(y1, m.height-1)

	hit := false
	for cy := y0; cy <= y1; cy++ {
		dy := (float32(cy) + 0.5 - y) / ry
		for cx := x0; cx <= x1; cx++ {
			dx := (float32(cx) + 0.5 - x) / rx
			d2 := dx*dx + dy*dy
			if d2 >= 1 {
				continue
			}
			m.density[cy*m.width+cx] += alpha * (1 - d2)
			hit = true
		}
	}
	if !hit {
		// Sub-cell disc: deposit into the containing cell
		cx, cy := int(math32.Floor(x)), int(math32.Floor(y))
		if cx >= 0 && cx < m.width && cy >= 0 && cy < m.height {
			m.density[cy*m.width+cx] += alpha
			hit = true
		}
	}
	return hit
}
