package mist

import (
	"github.com/chewxy/math32"

	"github.com/lixenwraith/spritz/spray"
	"github.com/lixenwraith/spritz/vmath"
)

const twoPi = 2 * math32.Pi

// Hash channels, one per independent per-particle random quantity
const (
	chanCone = iota
	chanPhi
	chanSpeed
	chanSize
)

// Particle is one evaluated slot
type Particle struct {
	Index int
	Pos   vmath.Vec3F
	Size  float32 // world point size before perspective
	Alpha float32 // 0..1
	Age   float32 // seconds since birth
	Life  float32 // Age / Lifespan, 0..1
}

// Stage evaluates particle visuals from (time since birth, seed) only
// It reads the pool one-way: birth times are copied on version change, nothing is written back
type Stage struct {
	params Params

	// Uniforms published by the emitter
	time   float32
	origin vmath.Vec3F

	// Derived from params
	axis, basisU, basisV vmath.Vec3F
	cosCone              float32
	gravity              vmath.Vec3F

	pool     *spray.Pool
	births   []float32
	uploaded uint64
	uploads  uint64
}

// NewStage creates a stage with validated params, Attach must be called before sampling
func NewStage(params Params) (*Stage, error) {
	s := &Stage{}
	if err := s.SetParams(params); err != nil {
		return nil, err
	}
	return s, nil
}

// SetParams swaps the material parameters, keeping the current ones on error
func (s *Stage) SetParams(params Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	s.params = params
	s.axis = vmath.V3FNormalize(params.direction())
	s.basisU, s.basisV = vmath.V3FBasis(s.axis)
	s.cosCone = math32.Cos(params.ConeAngle)
	s.gravity = params.gravity()
	return nil
}

// Params returns the active parameters
func (s *Stage) Params() Params {
	return s.params
}

// Attach binds the stage to a pool and uploads its current birth buffer
func (s *Stage) Attach(pool *spray.Pool) {
	s.pool = pool
	s.births = make([]float32, pool.Len())
	copy(s.births, pool.BirthTimes())
	s.uploaded = pool.Version()
	s.uploads++
}

// SetTime implements spray.Uniforms
func (s *Stage) SetTime(t float32) {
	s.time = t
}

// SetOrigin implements spray.Uniforms
func (s *Stage) SetOrigin(origin vmath.Vec3F) {
	s.origin = origin
}

// Time returns the last published simulation time
func (s *Stage) Time() float32 {
	return s.time
}

// Origin returns the last published origin
func (s *Stage) Origin() vmath.Vec3F {
	return s.origin
}

// Sync uploads the birth buffer if the pool changed since the previous upload
// Returns true if an upload happened
func (s *Stage) Sync() bool {
	if s.pool == nil || s.pool.Version() == s.uploaded {
		return false
	}
	copy(s.births, s.pool.BirthTimes())
	s.uploaded = s.pool.Version()
	s.uploads++
	return true
}

// Uploads returns the number of birth buffer uploads, including the initial one
func (s *Stage) Uploads() uint64 {
	return s.uploads
}

// Len returns the number of attached slots
func (s *Stage) Len() int {
	return len(s.births)
}

// Sample evaluates slot i against the uploaded buffers
// ok is false for slots that are unborn, dead, or fully transparent
func (s *Stage) Sample(i int) (Particle, bool) {
	if i < 0 || i >= len(s.births) {
		return Particle{}, false
	}
	birth := s.births[i]
	age := s.time - birth
	if age < 0 || !spray.Alive(birth, s.time, s.params.Lifespan) {
		return Particle{}, false
	}

	seed := s.pool.Seed(i)
	life := age / s.params.Lifespan

	pos := vmath.V3FAdd(s.origin, s.displacement(seed, age, life))
	size := s.pointSize(seed, life)
	alpha := opacity(life)
	if alpha <= 0 {
		return Particle{}, false
	}

	return Particle{
		Index: i,
		Pos:   pos,
		Size:  size,
		Alpha: alpha,
		Age:   age,
		Life:  life,
	}, true
}

// Each calls fn for every visible particle after syncing the birth buffer
func (s *Stage) Each(fn func(Particle)) {
	s.Sync()
	for i := range s.births {
		if p, ok := s.Sample(i); ok {
			fn(p)
		}
	}
}

// LiveCount returns the number of visible particles
func (s *Stage) LiveCount() int {
	n := 0
	s.Each(func(Particle) { n++ })
	return n
}

// ProjectedSize applies the perspective point size rule: size * factor / depth
func (s *Stage) ProjectedSize(p Particle, depth float32) float32 {
	if depth < 1e-3 {
		depth = 1e-3
	}
	return p.Size * s.params.PerspectiveFactor / depth
}

// direction samples a unit vector uniformly over the spray cone
func (s *Stage) direction(seed float32) vmath.Vec3F {
	cosTheta := vmath.Lerp(s.cosCone, 1, vmath.HashN(seed, chanCone))
	sinTheta := math32.Sqrt(math32.Max(0, 1-cosTheta*cosTheta))
	phi := twoPi * vmath.HashN(seed, chanPhi)

	d := vmath.V3FScale(s.axis, cosTheta)
	d = vmath.V3FAdd(d, vmath.V3FScale(s.basisU, math32.Cos(phi)*sinTheta))
	d = vmath.V3FAdd(d, vmath.V3FScale(s.basisV, math32.Sin(phi)*sinTheta))
	return d
}

// displacement is the offset from origin at the given age
func (s *Stage) displacement(seed, age, life float32) vmath.Vec3F {
	p := s.params

	variance := (vmath.HashN(seed, chanSpeed)*2 - 1) * p.SpeedVariance
	speed := p.InitialSpeed * (1 + variance)

	// Closed form of v' = -k v
	var dist float32
	if p.DragFactor > 0 {
		dist = speed * (1 - math32.Exp(-p.DragFactor*age)) / p.DragFactor
	} else {
		dist = speed * age
	}

	out := vmath.V3FScale(s.direction(seed), dist)
	out = vmath.V3FAdd(out, vmath.V3FScale(s.gravity, 0.5*age*age))
	out = vmath.V3FAdd(out, s.turbulence(seed, age, life))
	return out
}

// turbulence is a seeded smooth wobble that grows over the particle life
func (s *Stage) turbulence(seed, age, life float32) vmath.Vec3F {
	p := s.params
	if p.TurbulenceStrength == 0 {
		return vmath.Vec3F{}
	}
	w := twoPi * p.TurbulenceFrequency * age
	amp := p.TurbulenceStrength * life
	return vmath.Vec3F{
		X: amp * math32.Sin(w+seed*17.0),
		Y: amp * math32.Sin(w*1.3+seed*31.0),
		Z: amp * math32.Cos(w*0.7+seed*23.0),
	}
}

// pointSize varies per seed and swells as the mist disperses
func (s *Stage) pointSize(seed, life float32) float32 {
	p := s.params
	variance := (vmath.HashN(seed, chanSize)*2 - 1) * p.PointSizeVariance
	return p.BasePointSize * (1 + variance) * (1 + 0.5*life)
}

// opacity fades in quickly and out quadratically
func opacity(life float32) float32 {
	in := vmath.Smoothstep(0, 0.05, life)
	out := 1 - life
	return vmath.Clamp01(in * out * out)
}
