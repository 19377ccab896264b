package audio

import (
	"testing"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected default sample rate 48000, got %d", cfg.SampleRate)
	}
}

// TestApplyEnv verifies environment overrides
func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantEnable bool
		wantMaster float64
		wantRate   int
	}{
		{"no env", map[string]string{}, true, 0.5, 48000},
		{"disabled", map[string]string{"SPRITZ_AUDIO_ENABLED": "false"}, false, 0.5, 48000},
		{"volume", map[string]string{"SPRITZ_MASTER_VOLUME": "80"}, true, 0.8, 48000},
		{"volume clamped", map[string]string{"SPRITZ_MASTER_VOLUME": "250"}, true, 1.0, 48000},
		{"negative volume clamped", map[string]string{"SPRITZ_MASTER_VOLUME": "-10"}, true, 0, 48000},
		{"rate", map[string]string{"SPRITZ_SAMPLE_RATE": "44100"}, true, 0.5, 44100},
		{"malformed ignored", map[string]string{"SPRITZ_AUDIO_ENABLED": "maybe", "SPRITZ_SAMPLE_RATE": "fast"}, true, 0.5, 48000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPRITZ_AUDIO_ENABLED", "")
			t.Setenv("SPRITZ_MASTER_VOLUME", "")
			t.Setenv("SPRITZ_SAMPLE_RATE", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := DefaultAudioConfig()
			cfg.ApplyEnv()

			if cfg.Enabled != tt.wantEnable {
				t.Errorf("Enabled = %v, want %v", cfg.Enabled, tt.wantEnable)
			}
			if cfg.MasterVolume != tt.wantMaster {
				t.Errorf("MasterVolume = %f, want %f", cfg.MasterVolume, tt.wantMaster)
			}
			if cfg.SampleRate != tt.wantRate {
				t.Errorf("SampleRate = %d, want %d", cfg.SampleRate, tt.wantRate)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	cfg := &AudioConfig{MasterVolume: 3, SprayVolume: -1, AmbientVolume: 0.4}
	cfg.Normalize()

	if cfg.MasterVolume != 1 || cfg.SprayVolume != 0 || cfg.AmbientVolume != 0.4 {
		t.Errorf("volumes not clamped: %+v", cfg)
	}
	if cfg.SampleRate != 48000 || cfg.BufferMs != 100 {
		t.Errorf("defaults not applied: rate=%d buffer=%d", cfg.SampleRate, cfg.BufferMs)
	}
}
