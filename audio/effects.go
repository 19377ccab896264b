package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Spray hiss shaping
const (
	SprayAttack  = 12 * time.Millisecond
	SprayRelease = 140 * time.Millisecond
	SprayTail    = 150 * time.Millisecond // hiss continues briefly after emission stops
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int // samples, < 0 for endless
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates an oscillator, duration <= 0 streams forever
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := -1
	if duration > 0 {
		samples = rate.N(duration)
	}
	return &oscillator{
		freq:     freq,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.duration >= 0 && o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping over a fixed length
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s with a linear attack and release, ending the stream after duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := e.totalSamples - e.position
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples

	for i := 0; i < n; i++ {
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Min(vol, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// onePole is a one-pole low-pass filter, coefficient from cutoff frequency
type onePole struct {
	streamer beep.Streamer
	alpha    float64
	state    [2]float64
}

// NewLowPass filters s above cutoff Hz
func NewLowPass(s beep.Streamer, cutoff float64, rate beep.SampleRate) beep.Streamer {
	dt := 1.0 / float64(rate)
	rc := 1.0 / (2 * math.Pi * cutoff)
	return &onePole{streamer: s, alpha: dt / (rc + dt)}
}

func (f *onePole) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			f.state[c] += f.alpha * (samples[i][c] - f.state[c])
			samples[i][c] = f.state[c]
		}
	}
	return n, ok
}

func (f *onePole) Err() error { return f.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so 0 volume is expressed as silent
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateSpraySound generates the nozzle hiss for a burst of the given length
// Bright noise, low-passed to take the edge off, with a short attack and a soft tail
func CreateSpraySound(cfg *AudioConfig, burst time.Duration) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	total := burst + SprayTail

	noise := NewOscillator(0, total, WaveNoise, rate)
	filtered := NewLowPass(noise, 6500, rate)
	shaped := NewEnvelope(filtered, total, SprayAttack, SprayRelease, rate)

	return newVolume(shaped, cfg.SprayVolume*0.6)
}

// ambientPad is an endless detuned sine pair with a slow swell
type ambientPad struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewAmbientPad creates a looping pad rooted at freq Hz
func NewAmbientPad(sr beep.SampleRate, freq float64) beep.Streamer {
	return &ambientPad{sr: sr, freq: freq}
}

func (g *ambientPad) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 0.2Hz swell between 0.6 and 1.0
		swell := 0.8 + 0.2*math.Sin(2*math.Pi*0.2*t)

		left := 0.5*math.Sin(2*math.Pi*g.freq*t) + 0.25*math.Sin(2*math.Pi*g.freq*1.5*t)
		right := 0.5*math.Sin(2*math.Pi*(g.freq+0.7)*t) + 0.25*math.Sin(2*math.Pi*g.freq*1.5*t)

		samples[i][0] = 0.3 * swell * left
		samples[i][1] = 0.3 * swell * right
		g.pos++
	}
	return len(samples), true
}

func (g *ambientPad) Err() error { return nil }
