package mist

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/lixenwraith/spritz/vmath"
)

// ErrInvalidParams is returned when stage parameters cannot produce a visible spray
var ErrInvalidParams = errors.New("invalid mist parameters")

// Params are the per-material uniforms of the mist stage
// All values are pass-through shading inputs, the emitter never reads them
type Params struct {
	Lifespan            float32    `toml:"lifespan"`             // seconds a particle stays visible
	ConeAngle           float32    `toml:"cone_angle"`           // half angle in radians
	InitialSpeed        float32    `toml:"initial_speed"`        // world units per second
	Gravity             [3]float32 `toml:"gravity"`              // world units per second squared
	SpeedVariance       float32    `toml:"speed_variance"`       // fraction of InitialSpeed, symmetric
	DragFactor          float32    `toml:"drag_factor"`          // exponential velocity decay per second
	TurbulenceStrength  float32    `toml:"turbulence_strength"`  // world units at end of life
	TurbulenceFrequency float32    `toml:"turbulence_frequency"` // oscillations per second
	BasePointSize       float32    `toml:"base_point_size"`
	PointSizeVariance   float32    `toml:"point_size_variance"` // fraction of BasePointSize, symmetric
	PerspectiveFactor   float32    `toml:"perspective_factor"`  // point size scale at unit depth
	Direction           [3]float32 `toml:"direction"`           // spray axis, normalized on use
}

// DefaultParams returns the tuned perfume mist look
func DefaultParams() Params {
	return Params{
		Lifespan:            0.3,
		ConeAngle:           0.06,
		InitialSpeed:        40.0,
		Gravity:             [3]float32{0, 0, 0},
		SpeedVariance:       0.3,
		DragFactor:          0.3,
		TurbulenceStrength:  1.05,
		TurbulenceFrequency: 1.0,
		BasePointSize:       2.3,
		PointSizeVariance:   0.25,
		PerspectiveFactor:   200.0,
		Direction:           [3]float32{1, 0, 0},
	}
}

// Validate rejects parameters that are non-finite or outside their physical range
func (p Params) Validate() error {
	checks := []struct {
		name string
		v    float32
		ok   bool
	}{
		{"lifespan", p.Lifespan, p.Lifespan > 0},
		{"cone_angle", p.ConeAngle, p.ConeAngle >= 0 && p.ConeAngle <= math32.Pi},
		{"speed_variance", p.SpeedVariance, p.SpeedVariance >= 0 && p.SpeedVariance <= 1},
		{"drag_factor", p.DragFactor, p.DragFactor >= 0},
		{"turbulence_strength", p.TurbulenceStrength, p.TurbulenceStrength >= 0},
		{"turbulence_frequency", p.TurbulenceFrequency, p.TurbulenceFrequency >= 0},
		{"base_point_size", p.BasePointSize, p.BasePointSize > 0},
		{"point_size_variance", p.PointSizeVariance, p.PointSizeVariance >= 0 && p.PointSizeVariance < 1},
		{"perspective_factor", p.PerspectiveFactor, p.PerspectiveFactor > 0},
	}
	for _, c := range checks {
		if !c.ok || math32.IsInf(c.v, 0) || math32.IsNaN(c.v) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidParams, c.name, c.v)
		}
	}
	if math32.IsNaN(p.InitialSpeed) || math32.IsInf(p.InitialSpeed, 0) {
		return fmt.Errorf("%w: initial_speed = %v", ErrInvalidParams, p.InitialSpeed)
	}
	if vmath.V3FMagSq(p.direction()) == 0 {
		return fmt.Errorf("%w: direction must be non-zero", ErrInvalidParams)
	}
	return nil
}

func (p Params) direction() vmath.Vec3F {
	return vmath.Vec3F{X: p.Direction[0], Y: p.Direction[1], Z: p.Direction[2]}
}

func (p Params) gravity() vmath.Vec3F {
	return vmath.Vec3F{X: p.Gravity[0], Y: p.Gravity[1], Z: p.Gravity[2]}
}
