package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// maxVoices caps concurrent streamers in the master mix
const maxVoices = 32

// SoundManager owns the speaker, the master mixer and one fader per ambient track
type SoundManager struct {
	mu sync.Mutex

	config *AudioConfig
	rate   beep.SampleRate
	logger *zap.Logger

	mixer    *beep.Mixer
	master   *effects.Volume
	ambients map[string]*Fader

	initialized bool
	muted       bool

	// Guards streamer state shared with the speaker goroutine
	lock   func()
	unlock func()
}

// NewSoundManager creates a manager with a ready mixer graph; Initialize opens the device
func NewSoundManager(cfg *AudioConfig, logger *zap.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	cfg.Normalize()
	if logger == nil {
		logger = zap.NewNop()
	}

	mixer := &beep.Mixer{}
	// Endless silence keeps the mix alive on the speaker while no sound is queued
	mixer.Add(beep.Silence(-1))

	sm := &SoundManager{
		config:   cfg,
		rate:     beep.SampleRate(cfg.SampleRate),
		logger:   logger,
		mixer:    mixer,
		master:   newVolume(mixer, cfg.MasterVolume),
		ambients: make(map[string]*Fader),
		muted:    !cfg.Enabled,
		lock:     speaker.Lock,
		unlock:   speaker.Unlock,
	}
	sm.master.Silent = sm.muted || cfg.MasterVolume <= 0
	return sm
}

// Initialize opens the audio device and starts playing the master mix
// On failure the manager stays usable in silent mode
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	buffer := sm.rate.N(time.Duration(sm.config.BufferMs) * time.Millisecond)
	if err := speaker.Init(sm.rate, buffer); err != nil {
		sm.logger.Warn("audio disabled", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrSpeakerInit, err)
	}

	speaker.Play(sm.master)
	sm.initialized = true
	sm.logger.Info("audio started",
		zap.Int("sample_rate", int(sm.rate)),
		zap.Int("buffer_samples", buffer))
	return nil
}

// Cleanup stops all sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	sm.lock()
	for _, f := range sm.ambients {
		f.Stop()
	}
	sm.mixer.Clear()
	sm.unlock()

	speaker.Close()
	sm.initialized = false
}

// Stream exposes the master mix, used by the speaker and by offline rendering
func (sm *SoundManager) Stream() beep.Streamer {
	return sm.master
}

// PlaySpray plays one hiss sized to the burst duration
func (sm *SoundManager) PlaySpray(burst time.Duration) {
	if burst <= 0 {
		sm.logger.Debug("spray sound skipped", zap.Error(ErrInvalidDuration))
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := CreateSpraySound(sm.config, burst)
	sm.lock()
	defer sm.unlock()
	// Nothing drains the mix without a device, bound what queues up
	if sm.mixer.Len() >= maxVoices {
		sm.logger.Debug("spray sound dropped", zap.Int("voices", sm.mixer.Len()))
		return
	}
	sm.mixer.Add(s)
	sm.logger.Debug("sound queued", zap.Stringer("type", SoundSpray), zap.Duration("burst", burst))
}

// FadeInAmbient starts the named ambient track at freq Hz, or retargets it, ramping to target over d
// A playing track ramps from its current level; one already heading to target keeps its fade
func (sm *SoundManager) FadeInAmbient(name string, freq float64, d time.Duration, target float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	defer sm.unlock()

	f, ok := sm.ambients[name]
	if !ok {
		f = NewFader(NewAmbientPad(sm.rate, freq), sm.rate)
		sm.ambients[name] = f
		sm.mixer.Add(f)
		sm.logger.Debug("sound created", zap.Stringer("type", SoundAmbient), zap.String("name", name), zap.Float64("freq", freq))
	}
	level := clampUnit(target * sm.config.AmbientVolume)
	if f.Playing() && !f.stopAtTarget && f.Target() == level {
		return
	}
	f.RampTo(d, level)
}

// FadeOutAmbient ramps the named track to silence over d
func (sm *SoundManager) FadeOutAmbient(name string, d time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	defer sm.unlock()

	if f, ok := sm.ambients[name]; ok {
		f.FadeOut(d)
	}
}

// AmbientPlaying reports whether the named track is audible or ramping
func (sm *SoundManager) AmbientPlaying(name string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.lock()
	defer sm.unlock()

	f, ok := sm.ambients[name]
	return ok && f.Playing()
}

// SetMasterVolume applies a new master gain, 0 silences
func (sm *SoundManager) SetMasterVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.config.MasterVolume = clampUnit(v)

	sm.lock()
	defer sm.unlock()
	sm.applyMasterLocked()
}

// ToggleMute flips mute, returns true if audio is now audible
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = !sm.muted

	sm.lock()
	defer sm.unlock()
	sm.applyMasterLocked()
	return !sm.muted
}

// IsMuted returns current mute state
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// IsEnabled returns true if the device is open and unmuted
func (sm *SoundManager) IsEnabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized && !sm.muted
}

func (sm *SoundManager) applyMasterLocked() {
	v := sm.config.MasterVolume
	sm.master.Silent = sm.muted || v <= 0
	if v > 0 {
		sm.master.Volume = math.Log2(v)
	}
}
