package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spritz.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if cfg.Emitter.ParticleCount != 5000 || cfg.Emitter.SprayDuration != 0.1 {
		t.Errorf("emitter defaults = %+v", cfg.Emitter)
	}
	if len(cfg.Scents) == 0 {
		t.Error("no default scents")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[emitter]
particle_count = 800

[mist]
lifespan = 0.5
direction = [0.0, 1.0, 0.0]

[render]
fps = 30

[[scent]]
name = "night garden"
tint = "#3a2f6b"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Emitter.ParticleCount != 800 {
		t.Errorf("particle_count = %d, want 800", cfg.Emitter.ParticleCount)
	}
	// Untouched keys keep defaults
	if cfg.Emitter.SprayDuration != 0.1 {
		t.Errorf("spray_duration = %v, want default 0.1", cfg.Emitter.SprayDuration)
	}
	if cfg.Mist.Lifespan != 0.5 || cfg.Mist.Direction != [3]float32{0, 1, 0} {
		t.Errorf("mist = %+v", cfg.Mist)
	}
	if cfg.Mist.InitialSpeed != 40 {
		t.Errorf("initial_speed = %v, want default 40", cfg.Mist.InitialSpeed)
	}
	if cfg.Render.FPS != 30 || cfg.Render.FocalLength != 60 {
		t.Errorf("render = %+v", cfg.Render)
	}

	if len(cfg.Scents) != 1 {
		t.Fatalf("scents = %d, want 1 (file replaces defaults)", len(cfg.Scents))
	}
	s := cfg.Scents[0]
	if s.AmbientFreq != 220 || s.AmbientVolume != 0.3 || s.ActiveVolume != 0.6 {
		t.Errorf("scent defaults not filled: %+v", s)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("err = %v, want ErrNotExist", err)
		}
	})

	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"syntax", "[emitter\nparticle_count = 1", false},
		{"zero particles", "[emitter]\nparticle_count = 0", true},
		{"negative duration", "[emitter]\nspray_duration = -1.0", true},
		{"bad lifespan", "[mist]\nlifespan = 0.0", true},
		{"bad tint", "[[scent]]\nname = \"x\"\ntint = \"green\"", true},
		{"duplicate scent", "[[scent]]\nname = \"x\"\ntint = \"#000000\"\n[[scent]]\nname = \"x\"\ntint = \"#ffffff\"", true},
		{"unnamed scent", "[[scent]]\ntint = \"#000000\"", true},
		{"fps", "[render]\nfps = 0", true},
		{"backdrop", "[render]\ncolor = \"navy\"", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.invalid != errors.Is(err, ErrInvalid) {
				t.Errorf("errors.Is(ErrInvalid) = %v for %v", !tt.invalid, err)
			}
		})
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("SPRITZ_AUDIO_ENABLED", "false")
	t.Setenv("SPRITZ_MASTER_VOLUME", "25")

	cfg, err := Load(writeConfig(t, "[audio]\nenabled = true\nmaster_volume = 0.9\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Audio.Enabled {
		t.Error("env did not disable audio")
	}
	if cfg.Audio.MasterVolume != 0.25 {
		t.Errorf("master volume = %v, want 0.25", cfg.Audio.MasterVolume)
	}
}

func TestAudioVolumesClamped(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[audio]\nspray_volume = 3.0\nsample_rate = 0\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Audio.SprayVolume != 1 {
		t.Errorf("spray volume = %v, want 1", cfg.Audio.SprayVolume)
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("sample rate = %d, want default", cfg.Audio.SampleRate)
	}
}
