package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxDelta caps a single frame step after a hitch (terminal resize, suspended process)
const DefaultMaxDelta = 100 * time.Millisecond

// SceneClock provides pausable scene time in seconds, the clock the render loop feeds to update calls
type SceneClock struct {
	mu sync.Mutex

	provider TimeProvider
	start    time.Time

	// Pause state
	isPaused        atomic.Bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration

	// Frame stepping
	lastElapsed float64
	maxDelta    float64
	ticks       uint64
}

// NewSceneClock creates a clock starting at zero elapsed time
// A nil provider uses the monotonic system clock, maxDelta <= 0 uses DefaultMaxDelta
func NewSceneClock(provider TimeProvider, maxDelta time.Duration) *SceneClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &SceneClock{
		provider: provider,
		start:    provider.Now(),
		maxDelta: maxDelta.Seconds(),
	}
}

// Elapsed returns scene seconds since creation, excluding paused time
func (c *SceneClock) Elapsed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *SceneClock) elapsedLocked() float64 {
	now := c.provider.Now()
	if c.isPaused.Load() {
		now = c.pauseStartTime
	}
	return (now.Sub(c.start) - c.totalPausedTime).Seconds()
}

// Tick advances the frame step and returns scene time and the delta since the previous tick
// Paused ticks return the frozen time and zero delta
func (c *SceneClock) Tick() (t, dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	t = c.elapsedLocked()
	dt = t - c.lastElapsed
	if dt < 0 {
		dt = 0
	}
	if dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.lastElapsed = t
	c.ticks++
	return t, dt
}

// Ticks returns the number of Tick calls
func (c *SceneClock) Ticks() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Pause stops scene time advancement
func (c *SceneClock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isPaused.CompareAndSwap(false, true) {
		c.pauseStartTime = c.provider.Now()
	}
}

// Resume continues scene time advancement
func (c *SceneClock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.isPaused.CompareAndSwap(true, false) {
		c.totalPausedTime += c.provider.Now().Sub(c.pauseStartTime)
		c.pauseStartTime = time.Time{}
	}
}

// TogglePause flips the pause state, returns true if now paused
func (c *SceneClock) TogglePause() bool {
	if c.isPaused.Load() {
		c.Resume()
		return false
	}
	c.Pause()
	return true
}

// IsPaused returns current pause state
func (c *SceneClock) IsPaused() bool {
	return c.isPaused.Load()
}

// TotalPauseDuration returns cumulative pause time including an ongoing pause
func (c *SceneClock) TotalPauseDuration() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.totalPausedTime
	if c.isPaused.Load() {
		total += c.provider.Now().Sub(c.pauseStartTime)
	}
	return total
}
