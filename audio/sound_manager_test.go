package audio

import (
	"math"
	"testing"
	"time"
)

// newOfflineManager builds a manager that is never attached to a device
func newOfflineManager() *SoundManager {
	cfg := DefaultAudioConfig()
	cfg.SampleRate = 1000
	sm := NewSoundManager(cfg, nil)
	sm.lock = func() {}
	sm.unlock = func() {}
	return sm
}

func render(sm *SoundManager, n int) [][2]float64 {
	buf := make([][2]float64, n)
	sm.Stream().Stream(buf)
	return buf
}

func peak(samples [][2]float64) float64 {
	p := 0.0
	for _, s := range samples {
		if s[0] > p {
			p = s[0]
		}
		if -s[0] > p {
			p = -s[0]
		}
	}
	return p
}

func TestSoundManagerSilentWithoutSounds(t *testing.T) {
	sm := newOfflineManager()
	if p := peak(render(sm, 100)); p != 0 {
		t.Errorf("empty mix peak = %f, want 0", p)
	}
	if sm.IsEnabled() {
		t.Error("manager enabled without device")
	}
}

func TestSoundManagerAmbientLifecycle(t *testing.T) {
	sm := newOfflineManager()

	sm.FadeInAmbient("rose", 220, 50*time.Millisecond, 0.3)
	if !sm.AmbientPlaying("rose") {
		t.Fatal("ambient not playing after fade-in")
	}
	if p := peak(render(sm, 500)); p == 0 {
		t.Error("ambient produced silence")
	}

	sm.FadeOutAmbient("rose", 50*time.Millisecond)
	render(sm, 100)
	if sm.AmbientPlaying("rose") {
		t.Error("ambient still playing after fade-out")
	}

	// Unknown track is a no-op
	sm.FadeOutAmbient("missing", time.Millisecond)
	if sm.AmbientPlaying("missing") {
		t.Error("unknown track reported playing")
	}
}

func TestSoundManagerSpray(t *testing.T) {
	sm := newOfflineManager()
	sm.PlaySpray(100 * time.Millisecond)
	if p := peak(render(sm, 200)); p == 0 {
		t.Error("spray produced silence")
	}

	// Invalid duration is dropped
	sm.PlaySpray(0)
}

func TestSoundManagerMute(t *testing.T) {
	sm := newOfflineManager()
	sm.FadeInAmbient("iris", 330, 0, 1)

	if audible := sm.ToggleMute(); audible {
		t.Fatal("expected muted after first toggle")
	}
	if p := peak(render(sm, 200)); p != 0 {
		t.Errorf("muted peak = %f, want 0", p)
	}

	if audible := sm.ToggleMute(); !audible {
		t.Fatal("expected audible after second toggle")
	}
	if p := peak(render(sm, 200)); p == 0 {
		t.Error("unmuted mix silent")
	}
}

func TestSoundManagerDisabledConfigStartsMuted(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	sm := NewSoundManager(cfg, nil)
	if !sm.IsMuted() {
		t.Error("disabled config should start muted")
	}
}

func TestSoundManagerAmbientRetarget(t *testing.T) {
	sm := newOfflineManager()
	level := func() float64 { return sm.ambients["rose"].Volume() }

	// Hover fade-in, re-entry halfway keeps the running ramp
	sm.FadeInAmbient("rose", 220, 100*time.Millisecond, 0.3)
	render(sm, 50)
	half := level()
	sm.FadeInAmbient("rose", 220, 100*time.Millisecond, 0.3)
	if level() != half {
		t.Errorf("hover re-entry restarted the fade: %f -> %f", half, level())
	}
	render(sm, 60)
	if math.Abs(level()-0.3) > 1e-9 {
		t.Fatalf("hover level = %f, want 0.3", level())
	}

	// Opening while hovered ramps up from the hover level
	sm.FadeInAmbient("rose", 220, 500*time.Millisecond, 0.6)
	if math.Abs(level()-0.3) > 1e-9 {
		t.Errorf("open dropped the level to %f", level())
	}
	render(sm, 500)
	if math.Abs(level()-0.6) > 1e-9 {
		t.Errorf("open level = %f, want 0.6", level())
	}

	// Closing while still hovered returns to the hover level
	sm.FadeInAmbient("rose", 220, 300*time.Millisecond, 0.3)
	render(sm, 300)
	if math.Abs(level()-0.3) > 1e-9 {
		t.Errorf("level after close = %f, want 0.3", level())
	}
	if !sm.AmbientPlaying("rose") {
		t.Error("ambient stopped after returning to hover level")
	}
}
