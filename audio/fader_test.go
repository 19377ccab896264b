package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

const testRate = beep.SampleRate(1000)

func pull(f *Fader, n int) [][2]float64 {
	buf := make([][2]float64, n)
	f.Stream(buf)
	return buf
}

func TestFaderStartsSilent(t *testing.T) {
	f := NewFader(constant(), testRate)
	if f.Playing() {
		t.Fatal("new fader should be stopped")
	}
	for i, s := range pull(f, 32) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("sample %d = %v, want silence", i, s)
		}
	}
}

func TestFaderFadeIn(t *testing.T) {
	f := NewFader(constant(), testRate)
	f.FadeIn(100*time.Millisecond, 0.5)

	got := pull(f, 100)
	if got[0][0] <= 0 || got[0][0] > 0.01 {
		t.Errorf("first sample = %f, want just above zero", got[0][0])
	}
	if math.Abs(got[49][0]-0.25) > 1e-9 {
		t.Errorf("midpoint = %f, want 0.25", got[49][0])
	}
	if math.Abs(f.Volume()-0.5) > 1e-9 {
		t.Errorf("volume after ramp = %f, want 0.5", f.Volume())
	}

	// Holds at target
	for _, s := range pull(f, 10) {
		if math.Abs(s[0]-0.5) > 1e-9 {
			t.Fatalf("held sample = %f, want 0.5", s[0])
		}
	}
}

func TestFaderFadeOutStops(t *testing.T) {
	f := NewFader(constant(), testRate)
	f.FadeIn(0, 0.6)
	if f.Volume() != 0.6 {
		t.Fatalf("instant fade-in volume = %f, want 0.6", f.Volume())
	}

	f.FadeOut(50 * time.Millisecond)
	pull(f, 50)
	if f.Playing() {
		t.Error("fader still playing after fade-out completed")
	}
	if f.Volume() != 0 {
		t.Errorf("volume = %f, want 0", f.Volume())
	}
}

func TestFaderFadeOutWhenStoppedIsNoOp(t *testing.T) {
	f := NewFader(constant(), testRate)
	f.FadeOut(10 * time.Millisecond)
	if f.Playing() {
		t.Error("fade-out started a stopped fader")
	}
}

func TestFaderFadeInDuringFadeOut(t *testing.T) {
	f := NewFader(constant(), testRate)
	f.FadeIn(0, 1)
	f.FadeOut(100 * time.Millisecond)
	pull(f, 20)

	f.FadeIn(10*time.Millisecond, 0.3)
	pull(f, 200)
	if !f.Playing() {
		t.Fatal("revived fader stopped")
	}
	if math.Abs(f.Volume()-0.3) > 1e-9 {
		t.Errorf("volume = %f, want 0.3", f.Volume())
	}
}

func TestFaderSourceExhausted(t *testing.T) {
	src := NewOscillator(0, 10*time.Millisecond, WaveNoise, testRate)
	f := NewFader(src, testRate)
	f.FadeIn(0, 1)

	got := pull(f, 32)
	for i := 10; i < len(got); i++ {
		if got[i][0] != 0 {
			t.Fatalf("sample %d after source end = %f, want 0", i, got[i][0])
		}
	}
	if f.Playing() {
		t.Error("fader still playing after source ended")
	}
}

func TestFaderRampToFromCurrentLevel(t *testing.T) {
	f := NewFader(constant(), testRate)
	f.FadeIn(0, 0.3)
	f.RampTo(100*time.Millisecond, 0.6)
	if f.Target() != 0.6 {
		t.Errorf("target = %f, want 0.6", f.Target())
	}

	got := pull(f, 100)
	if got[0][0] < 0.3 {
		t.Errorf("first sample = %f, ramp restarted below the playing level", got[0][0])
	}
	if math.Abs(f.Volume()-0.6) > 1e-9 {
		t.Errorf("volume after ramp = %f, want 0.6", f.Volume())
	}

	// Stopped faders start from silence
	g := NewFader(constant(), testRate)
	g.RampTo(100*time.Millisecond, 0.5)
	if !g.Playing() {
		t.Fatal("RampTo did not start a stopped fader")
	}
	if s := pull(g, 1)[0][0]; s > 0.01 {
		t.Errorf("first sample = %f, want just above zero", s)
	}
}
