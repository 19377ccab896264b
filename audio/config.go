package audio

import (
	"os"
	"strconv"
)

// AudioConfig holds mixer settings
type AudioConfig struct {
	Enabled       bool    `toml:"enabled"`
	MasterVolume  float64 `toml:"master_volume"`  // 0.0-1.0
	SprayVolume   float64 `toml:"spray_volume"`   // 0.0-1.0, relative to master
	AmbientVolume float64 `toml:"ambient_volume"` // 0.0-1.0, relative to master
	SampleRate    int     `toml:"sample_rate"`
	BufferMs      int     `toml:"buffer_ms"` // speaker buffer length
}

// DefaultAudioConfig returns the built-in mix
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:       true,
		MasterVolume:  0.5,
		SprayVolume:   0.8,
		AmbientVolume: 1.0,
		SampleRate:    48000,
		BufferMs:      100,
	}
}

// ApplyEnv overrides fields from SPRITZ_* environment variables, ignoring malformed values
func (cfg *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv("SPRITZ_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is given as 0-100
	if volume := os.Getenv("SPRITZ_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		}
	}

	if sampleRate := os.Getenv("SPRITZ_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}

// Normalize clamps volumes and replaces unusable rates with defaults
func (cfg *AudioConfig) Normalize() {
	def := DefaultAudioConfig()
	cfg.MasterVolume = clampUnit(cfg.MasterVolume)
	cfg.SprayVolume = clampUnit(cfg.SprayVolume)
	cfg.AmbientVolume = clampUnit(cfg.AmbientVolume)
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = def.SampleRate
	}
	if cfg.BufferMs <= 0 {
		cfg.BufferMs = def.BufferMs
	}
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
