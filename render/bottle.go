package render

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/spritz/vmath"
)

var (
	rgbCap      = RGB{168, 170, 178}
	rgbCapShade = RGB{96, 98, 106}
	rgbNozzle   = RGB{220, 220, 228}
	rgbHover    = RGB{255, 244, 200}
)

// BottleView is the drawable state of the perfume bottle in world units
type BottleView struct {
	Center    vmath.Vec3F // body center
	HalfW     float32     // body half width
	HalfH     float32     // body half height
	NeckHalfW float32
	CapHeight float32
	Nozzle    vmath.Vec3F
	Glass     RGB
	Fill      float32 // liquid level 0..1
	Hover     bool
	Pressed   bool
}

// worldRect projects an axis-aligned world rectangle at z to an inclusive cell range
func worldRect(cam *Camera, minX, minY, maxX, maxY, z float32) (x0, y0, x1, y1 int, ok bool) {
	ax, ay, _, okA := cam.Project(vmath.Vec3F{X: minX, Y: maxY, Z: z})
	bx, by, _, okB := cam.Project(vmath.Vec3F{X: maxX, Y: minY, Z: z})
	if !okA || !okB {
		return 0, 0, 0, 0, false
	}
	x0 = int(math32.Round(ax))
	y0 = int(math32.Round(ay))
	x1 = int(math32.Round(bx)) - 1
	y1 = int(math32.Round(by)) - 1
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return x0, y0, x1, y1, true
}

// RenderBottle draws body, liquid, neck and cap, then the nozzle
func RenderBottle(buf *Buffer, cam *Camera, v BottleView) {
	c := v.Center
	bx0, by0, bx1, by1, ok := worldRect(cam, c.X-v.HalfW, c.Y-v.HalfH, c.X+v.HalfW, c.Y+v.HalfH, c.Z)
	if !ok {
		return
	}

	liquid := Shade(v.Glass, 0.25)
	empty := Shade(v.Glass, -0.55)
	rows := by1 - by0 + 1
	fillRows := int(math32.Round(float32(rows) * vmath.Clamp01(v.Fill)))
	cols := bx1 - bx0 + 1

	for y := by0; y <= by1; y++ {
		base := empty
		if by1-y < fillRows {
			base = liquid
		}
		for x := bx0; x <= bx1; x++ {
			// Left highlight, right shadow
			shade := 0.0
			if cols > 1 {
				shade = float64(x-bx0)/float64(cols-1)*0.5 - 0.2
			}
			bg := Shade(base, shade)
			r := ' '
			switch {
			case x == bx0 || x == bx1:
				r = '│'
			case y == by1:
				r = '▁'
			}
			buf.SetWithBg(x, y, r, Shade(v.Glass, -0.7), bg)
		}
	}

	// Neck
	top := c.Y + v.HalfH
	nx0, ny0, nx1, ny1, ok := worldRect(cam, c.X-v.NeckHalfW, top, c.X+v.NeckHalfW, top+v.CapHeight*0.35, c.Z)
	if ok {
		for y := ny0; y <= ny1; y++ {
			for x := nx0; x <= nx1; x++ {
				buf.SetWithBg(x, y, ' ', empty, Shade(empty, 0.2))
			}
		}
	}

	// Cap
	capBottom := top + v.CapHeight*0.35
	cx0, cy0, cx1, cy1, ok := worldRect(cam, c.X-v.NeckHalfW*1.6, capBottom, c.X+v.NeckHalfW*1.6, top+v.CapHeight, c.Z)
	if ok {
		capColor := rgbCap
		if v.Pressed {
			capColor = rgbCapShade
		}
		for y := cy0; y <= cy1; y++ {
			for x := cx0; x <= cx1; x++ {
				bg := capColor
				if x == cx1 {
					bg = rgbCapShade
				}
				buf.SetWithBg(x, y, ' ', rgbCapShade, bg)
			}
		}
	}

	// Nozzle
	if x, y, ok := cam.ProjectCell(v.Nozzle); ok {
		fg := rgbNozzle
		r := '◦'
		if v.Hover {
			fg = rgbHover
			r = '◉'
		}
		buf.SetFgOnly(x, y, r, fg)
	}
}
