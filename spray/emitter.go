package spray

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/lixenwraith/spritz/vmath"
)

// ErrConfiguration is returned by NewEmitter for invalid construction parameters
var ErrConfiguration = errors.New("invalid emitter configuration")

// State is the emitter burst state
type State uint8

const (
	StateIdle State = iota
	StateEmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEmitting:
		return "emitting"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Uniforms is the rendering stage input the emitter publishes every tick
type Uniforms interface {
	SetTime(t float32)
	SetOrigin(origin vmath.Vec3F)
}

// Config holds emitter construction parameters
type Config struct {
	Origin        vmath.Vec3F
	SprayDuration float64 // seconds over which one burst spreads the whole pool
	ParticleCount int     // pool capacity, fixed for the emitter lifetime
}

// Validate checks construction parameters
func (c Config) Validate() error {
	if c.ParticleCount <= 0 {
		return fmt.Errorf("%w: particle count %d must be positive", ErrConfiguration, c.ParticleCount)
	}
	if !(c.SprayDuration > 0) || math.IsInf(c.SprayDuration, 1) {
		return fmt.Errorf("%w: spray duration %v must be a positive finite number", ErrConfiguration, c.SprayDuration)
	}
	return nil
}

// Emitter converts a single spray request into a time-distributed activation of pool slots
// Update must be called from one goroutine (the frame loop); Trigger is safe from any goroutine
type Emitter struct {
	pool     *Pool
	uniforms Uniforms

	origin        vmath.Vec3F
	sprayDuration float64
	rate          float64 // slots per second

	pending  atomic.Bool
	emitting atomic.Bool

	// Owned by the Update goroutine
	burstStart       float64
	nextSlot         int
	burstActivations int
	bursts           uint64
}

// NewEmitter validates cfg and allocates the pool
// uniforms may be nil for a headless emitter
func NewEmitter(cfg Config, uniforms Uniforms, rng *rand.Rand) (*Emitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}

	return &Emitter{
		pool:          NewPool(cfg.ParticleCount, rng),
		uniforms:      uniforms,
		origin:        cfg.Origin,
		sprayDuration: cfg.SprayDuration,
		rate:          float64(cfg.ParticleCount) / cfg.SprayDuration,
	}, nil
}

// Trigger requests a new burst at the next update
// Dropped while a burst is active, bursts never overlap and are not queued
func (e *Emitter) Trigger() {
	if e.emitting.Load() {
		return
	}
	e.pending.Store(true)
}

// Update advances the emitter to currentTime, deltaTime is the time since the previous tick
func (e *Emitter) Update(currentTime, deltaTime float64) {
	if e.uniforms != nil {
		e.uniforms.SetTime(float32(currentTime))
		e.uniforms.SetOrigin(e.origin)
	}

	// A non-advancing tick cannot start, progress or end a burst
	if !(deltaTime > 0) {
		return
	}

	// Swap also discards a request that raced in after the previous burst began
	if e.pending.Swap(false) && !e.emitting.Load() {
		e.emitting.Store(true)
		e.burstStart = currentTime
		e.nextSlot = 0
		e.burstActivations = 0
		e.bursts++
	}

	if !e.emitting.Load() {
		return
	}

	if currentTime-e.burstStart >= e.sprayDuration {
		e.emitting.Store(false)
		return
	}

	n := e.slotsFor(deltaTime)
	if n == 0 {
		return
	}
	e.activate(n, float32(currentTime))
	e.pool.markDirty()
	e.burstActivations += n
}

// slotsFor returns the ceiling of the uniform emission rate over dt, floored at zero
func (e *Emitter) slotsFor(dt float64) int {
	n := math.Ceil(e.rate * dt)
	if !(n > 0) {
		return 0
	}
	if n > math.MaxInt32 {
		n = math.MaxInt32
	}
	return int(n)
}

// activate stamps n slots in round-robin order starting at the cursor
func (e *Emitter) activate(n int, t float32) {
	size := e.pool.Len()

	// More than one lap rewrites every slot with the same time, only the cursor offset matters
	if n >= size {
		for i := 0; i < size; i++ {
			e.pool.stamp(i, t)
		}
		e.nextSlot = (e.nextSlot + n) % size
		return
	}

	for i := 0; i < n; i++ {
		e.pool.stamp(e.nextSlot, t)
		e.nextSlot++
		if e.nextSlot == size {
			e.nextSlot = 0
		}
	}
}

// SetOrigin moves the emission origin, published at the next update
func (e *Emitter) SetOrigin(origin vmath.Vec3F) {
	e.origin = origin
}

// Origin returns the current emission origin
func (e *Emitter) Origin() vmath.Vec3F {
	return e.origin
}

// Pool returns the slot storage for read-only consumers
func (e *Emitter) Pool() *Pool {
	return e.pool
}

// State returns Idle or Emitting
func (e *Emitter) State() State {
	if e.emitting.Load() {
		return StateEmitting
	}
	return StateIdle
}

// IsEmitting reports whether a burst is active
func (e *Emitter) IsEmitting() bool {
	return e.emitting.Load()
}

// Pending reports whether a trigger is waiting for the next update
func (e *Emitter) Pending() bool {
	return e.pending.Load()
}

// SprayDuration returns the configured burst length in seconds
func (e *Emitter) SprayDuration() float64 {
	return e.sprayDuration
}

// BurstStart returns the start time of the current or last burst
func (e *Emitter) BurstStart() float64 {
	return e.burstStart
}

// NextSlot returns the emission cursor
func (e *Emitter) NextSlot() int {
	return e.nextSlot
}

// BurstActivations returns the number of slot activations in the current or last burst
func (e *Emitter) BurstActivations() int {
	return e.burstActivations
}

// Bursts returns the number of bursts started since construction
func (e *Emitter) Bursts() uint64 {
	return e.bursts
}
