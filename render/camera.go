package render

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/spritz/vmath"
)

// CellAspect is the width-to-height ratio correction for terminal cells (cells are ~2x taller than wide)
const CellAspect = 2.0

// nearPlane is the minimum camera-space depth that still projects
const nearPlane = 0.5

// Camera is a fixed perspective camera on the -Z axis looking at the origin
// World +Y is up, +X is right
type Camera struct {
	Distance    float32 // camera to world origin along Z
	FocalLength float32
	ViewScale   float32 // rows per world unit at unit projection, as a fraction of view height

	width, height int
}

// NewCamera creates a camera for a view of the given cell size
func NewCamera(distance, focal, viewScale float32, width, height int) *Camera {
	return &Camera{
		Distance:    distance,
		FocalLength: focal,
		ViewScale:   viewScale,
		width:       width,
		height:      height,
	}
}

// Resize updates the viewport in cells
func (c *Camera) Resize(width, height int) {
	c.width = width
	c.height = height
}

// Viewport returns the viewport in cells
func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

func (c *Camera) scale() float32 {
	return float32(c.height) * c.ViewScale
}

// Depth returns the camera-space depth of p
func (c *Camera) Depth(p vmath.Vec3F) float32 {
	return p.Z + c.Distance
}

// Project maps a world point to fractional cell coordinates
// ok is false for points behind the near plane
func (c *Camera) Project(p vmath.Vec3F) (x, y, depth float32, ok bool) {
	depth = c.Depth(p)
	if depth < nearPlane {
		return 0, 0, depth, false
	}
	invZ := c.FocalLength / depth
	s := c.scale()
	x = float32(c.width)/2 + p.X*invZ*s*CellAspect
	y = float32(c.height)/2 - p.Y*invZ*s
	return x, y, depth, true
}

// ProjectCell maps a world point to the containing cell
func (c *Camera) ProjectCell(p vmath.Vec3F) (int, int, bool) {
	x, y, _, ok := c.Project(p)
	if !ok {
		return 0, 0, false
	}
	return int(math32.Floor(x)), int(math32.Floor(y)), true
}

// Unproject maps a cell center back to the world plane at depth z
func (c *Camera) Unproject(cx, cy int, z float32) vmath.Vec3F {
	depth := z + c.Distance
	if depth < nearPlane {
		depth = nearPlane
	}
	s := c.scale()
	if s == 0 || c.FocalLength == 0 {
		return vmath.Vec3F{Z: z}
	}
	invZ := c.FocalLength / depth
	fx := float32(cx) + 0.5
	fy := float32(cy) + 0.5
	return vmath.Vec3F{
		X: (fx - float32(c.width)/2) / (invZ * s * CellAspect),
		Y: (float32(c.height)/2 - fy) / (invZ * s),
		Z: z,
	}
}

// CellsPerUnit returns the vertical cell count of one world unit at depth
func (c *Camera) CellsPerUnit(depth float32) float32 {
	if depth < nearPlane {
		depth = nearPlane
	}
	return c.FocalLength / depth * c.scale()
}
