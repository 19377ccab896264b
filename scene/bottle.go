package scene

import (
	"github.com/lixenwraith/spritz/render"
	"github.com/lixenwraith/spritz/vmath"
)

// Drag is limited to this distance from the world origin on each axis
const dragLimit = 50

// Bottle is the draggable product model, the spray origin follows its nozzle
type Bottle struct {
	Position     vmath.Vec3F // body center
	HalfW        float32
	HalfH        float32
	NeckHalfW    float32
	CapHeight    float32
	NozzleOffset vmath.Vec3F // from body center
	Fill         float32     // liquid level 0..1
}

// DefaultBottle sits left of center so the +X spray crosses the view
func DefaultBottle() Bottle {
	return Bottle{
		Position:     vmath.Vec3F{X: -12, Y: -4, Z: 0},
		HalfW:        4,
		HalfH:        6,
		NeckHalfW:    1,
		CapHeight:    3,
		NozzleOffset: vmath.Vec3F{X: 1.5, Y: 6 + 3*0.7, Z: 0},
		Fill:         0.7,
	}
}

// Nozzle returns the world position of the spray nozzle
func (b *Bottle) Nozzle() vmath.Vec3F {
	return vmath.V3FAdd(b.Position, b.NozzleOffset)
}

// MoveTo places the body center, clamped to the drag area
func (b *Bottle) MoveTo(p vmath.Vec3F) {
	b.Position = vmath.Vec3F{
		X: vmath.Clamp(p.X, -dragLimit, dragLimit),
		Y: vmath.Clamp(p.Y, -dragLimit, dragLimit),
		Z: b.Position.Z,
	}
}

// Use lowers the liquid level, never fully emptying the bottle
func (b *Bottle) Use(amount float32) {
	b.Fill = vmath.Clamp(b.Fill-amount, 0.05, 1)
}

// top is the world Y of the cap top
func (b *Bottle) top() float32 {
	return b.Position.Y + b.HalfH + b.CapHeight
}

func (b *Bottle) view(glass render.RGB, hover, pressed bool) render.BottleView {
	return render.BottleView{
		Center:    b.Position,
		HalfW:     b.HalfW,
		HalfH:     b.HalfH,
		NeckHalfW: b.NeckHalfW,
		CapHeight: b.CapHeight,
		Nozzle:    b.Nozzle(),
		Glass:     glass,
		Fill:      b.Fill,
		Hover:     hover,
		Pressed:   pressed,
	}
}
