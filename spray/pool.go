package spray

import (
	"math/rand"
)

// DeadBirthTime marks a slot that has never been emitted
// Far enough in the past that any finite lifespan has expired
const DeadBirthTime float32 = -10000.0

// Pool is the fixed-capacity particle slot storage, laid out as GPU attribute buffers
// Static attributes (positions, seeds) are written once at creation; birth times are written only by the emitter
type Pool struct {
	positions  []float32 // stride 3, always zero, the stage computes positions
	seeds      []float32
	birthTimes []float32

	// version increments whenever birth times change, readers compare against the last version they uploaded
	version uint64
}

// NewPool allocates count slots with seeds drawn from rng
func NewPool(count int, rng *rand.Rand) *Pool {
	p := &Pool{
		positions:  make([]float32, count*3),
		seeds:      make([]float32, count),
		birthTimes: make([]float32, count),
	}
	for i := 0; i < count; i++ {
		p.seeds[i] = rng.Float32()
		p.birthTimes[i] = DeadBirthTime
	}
	return p
}

// Len returns the slot capacity
func (p *Pool) Len() int {
	return len(p.seeds)
}

// Seed returns the static random seed of slot i
func (p *Pool) Seed(i int) float32 {
	return p.seeds[i]
}

// BirthTime returns the last emission time of slot i
func (p *Pool) BirthTime(i int) float32 {
	return p.birthTimes[i]
}

// Seeds exposes the seed attribute buffer, callers must not modify it
func (p *Pool) Seeds() []float32 {
	return p.seeds
}

// BirthTimes exposes the birth time attribute buffer, callers must not modify it
func (p *Pool) BirthTimes() []float32 {
	return p.birthTimes
}

// Positions exposes the base position attribute buffer (stride 3)
func (p *Pool) Positions() []float32 {
	return p.positions
}

// Version returns the birth buffer revision
func (p *Pool) Version() uint64 {
	return p.version
}

// stamp writes a birth time without publishing it
func (p *Pool) stamp(i int, t float32) {
	p.birthTimes[i] = t
}

// markDirty publishes all stamps since the previous call
func (p *Pool) markDirty() {
	p.version++
}

// Alive reports whether a particle born at birth is still within lifespan at now
func Alive(birth, now, lifespan float32) bool {
	return now-birth < lifespan
}
