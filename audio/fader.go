package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// Fader is a stoppable streamer with linear volume ramps
// Stopped faders output silence without advancing the source
// Not goroutine safe, mutate under speaker.Lock while playing
type Fader struct {
	streamer beep.Streamer
	rate     beep.SampleRate

	volume    float64
	target    float64
	step      float64 // volume change per sample
	remaining int     // samples left in the current ramp
	playing   bool

	// Stop once a fade-out reaches zero
	stopAtTarget bool
}

// NewFader wraps s, initially stopped at zero volume
func NewFader(s beep.Streamer, rate beep.SampleRate) *Fader {
	return &Fader{streamer: s, rate: rate}
}

// FadeIn starts playback from silence and ramps to target over d
func (f *Fader) FadeIn(d time.Duration, target float64) {
	f.volume = 0
	f.playing = true
	f.stopAtTarget = false
	f.rampTo(clampUnit(target), d)
}

// FadeOut ramps the current volume to zero over d, then stops
// No-op when not playing
func (f *Fader) FadeOut(d time.Duration) {
	if !f.playing {
		return
	}
	f.stopAtTarget = true
	f.rampTo(0, d)
}

// RampTo moves from the current volume to target over d
// A stopped fader starts from silence
func (f *Fader) RampTo(d time.Duration, target float64) {
	if !f.playing {
		f.FadeIn(d, target)
		return
	}
	f.stopAtTarget = false
	f.rampTo(clampUnit(target), d)
}

// Stop halts immediately
func (f *Fader) Stop() {
	f.playing = false
	f.volume = 0
	f.step = 0
	f.remaining = 0
}

func (f *Fader) rampTo(target float64, d time.Duration) {
	f.target = target
	n := f.rate.N(d)
	if n <= 0 {
		f.volume = target
		f.step = 0
		f.remaining = 0
		f.settle()
		return
	}
	f.step = (target - f.volume) / float64(n)
	f.remaining = n
}

// advance moves one sample along the active ramp, landing exactly on target
func (f *Fader) advance() {
	if f.remaining == 0 {
		return
	}
	f.remaining--
	if f.remaining == 0 {
		f.volume = f.target
		f.step = 0
		f.settle()
		return
	}
	f.volume += f.step
}

// settle applies the stop-at-zero rule once a ramp completes
func (f *Fader) settle() {
	if f.stopAtTarget && f.volume <= 0 {
		f.playing = false
		f.stopAtTarget = false
	}
}

// Playing reports whether the source is audible or ramping
func (f *Fader) Playing() bool {
	return f.playing
}

// Target returns the gain the current ramp ends at
func (f *Fader) Target() float64 {
	return f.target
}

// Volume returns the current linear gain
func (f *Fader) Volume() float64 {
	return f.volume
}

func (f *Fader) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	exhausted := false

	for f.playing && filled < len(samples) {
		sn, sok := f.streamer.Stream(samples[filled:])
		for i := filled; i < filled+sn; i++ {
			f.advance()
			samples[i][0] *= f.volume
			samples[i][1] *= f.volume
			if !f.playing {
				// Fade-out landed mid-buffer, the rest is silence
				filled = i + 1
				sn = 0
				break
			}
		}
		filled += sn
		if !sok {
			exhausted = true
			break
		}
		if sn == 0 {
			break
		}
	}

	for i := filled; i < len(samples); i++ {
		samples[i] = [2]float64{}
	}
	if exhausted {
		f.playing = false
	}
	// Always alive so the mixer keeps the track for the next fade-in
	return len(samples), true
}

func (f *Fader) Err() error { return f.streamer.Err() }
