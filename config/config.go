package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/spritz/audio"
	"github.com/lixenwraith/spritz/mist"
	"github.com/lixenwraith/spritz/spray"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Emitter EmitterConfig     `toml:"emitter"`
	Mist    mist.Params       `toml:"mist"`
	Scents  []ScentConfig     `toml:"scent"`
	Render  RenderConfig      `toml:"render"`
	Audio   audio.AudioConfig `toml:"audio"`
	Logging LoggingConfig     `toml:"logging"`
}

// EmitterConfig is fixed for the process lifetime, hot reload ignores it
type EmitterConfig struct {
	ParticleCount int     `toml:"particle_count"`
	SprayDuration float64 `toml:"spray_duration"` // seconds
	Seed          int64   `toml:"seed"`           // 0 picks a random seed
}

type ScentConfig struct {
	Name          string  `toml:"name"`
	Tint          string  `toml:"tint"`           // #rrggbb
	AmbientFreq   float64 `toml:"ambient_freq"`   // Hz, pad fundamental
	AmbientVolume float64 `toml:"ambient_volume"` // hover level, 0.0-1.0
	ActiveVolume  float64 `toml:"active_volume"`  // selected level, 0.0-1.0
}

type RenderConfig struct {
	FPS            int     `toml:"fps"`
	FocalLength    float32 `toml:"focal_length"`
	CameraDistance float32 `toml:"camera_distance"`
	ViewScale      float32 `toml:"view_scale"`  // rows per world unit as a fraction of view height
	PointScale     float32 `toml:"point_scale"` // projected point size to cell radius
	Color          string  `toml:"color"`       // backdrop top, #rrggbb
	Horizon        string  `toml:"horizon"`     // backdrop bottom, #rrggbb
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // empty discards logs
}

// Load reads path over the defaults
// Missing keys keep their default, an absent [[scent]] list keeps the default scents
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML over the defaults, applies environment overrides and validates
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Scents = nil
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, err
	}
	if len(cfg.Scents) == 0 {
		cfg.Scents = defaultScents()
	}
	for i := range cfg.Scents {
		cfg.Scents[i].fillDefaults()
	}
	cfg.Audio.ApplyEnv()
	cfg.Audio.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in configuration with environment overrides applied
func Default() *Config {
	cfg := defaults()
	cfg.Audio.ApplyEnv()
	cfg.Audio.Normalize()
	return cfg
}

func defaults() *Config {
	return &Config{
		Emitter: EmitterConfig{
			ParticleCount: 5000,
			SprayDuration: 0.1,
		},
		Mist:   mist.DefaultParams(),
		Scents: defaultScents(),
		Render: RenderConfig{
			FPS:            60,
			FocalLength:    60,
			CameraDistance: 60,
			ViewScale:      0.03,
			PointScale:     0.125,
			Color:          "#0b1026",
			Horizon:        "#2a1f3d",
		},
		Audio: *audio.DefaultAudioConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func defaultScents() []ScentConfig {
	return []ScentConfig{
		{Name: "on the meadow", Tint: "#7fbf6a", AmbientFreq: 196.00, AmbientVolume: 0.3, ActiveVolume: 0.6},
		{Name: "by the ocean", Tint: "#5ea8d6", AmbientFreq: 146.83, AmbientVolume: 0.3, ActiveVolume: 0.6},
		{Name: "above the clouds", Tint: "#c8a2c8", AmbientFreq: 261.63, AmbientVolume: 0.3, ActiveVolume: 0.6},
	}
}

// fillDefaults sets the pad pitch and levels a scent table left out
func (s *ScentConfig) fillDefaults() {
	if s.AmbientFreq == 0 {
		s.AmbientFreq = 220
	}
	if s.AmbientVolume == 0 && s.ActiveVolume == 0 {
		s.AmbientVolume = 0.3
		s.ActiveVolume = 0.6
	}
}

// Validate checks every section, errors wrap ErrInvalid
func (c *Config) Validate() error {
	ec := spray.Config{ParticleCount: c.Emitter.ParticleCount, SprayDuration: c.Emitter.SprayDuration}
	if err := ec.Validate(); err != nil {
		return fmt.Errorf("%w: emitter: %w", ErrInvalid, err)
	}
	if err := c.Mist.Validate(); err != nil {
		return fmt.Errorf("%w: mist: %w", ErrInvalid, err)
	}
	if err := c.validateScents(); err != nil {
		return err
	}

	r := c.Render
	if r.FPS <= 0 || r.FPS > 240 {
		return fmt.Errorf("%w: render.fps = %d, want 1-240", ErrInvalid, r.FPS)
	}
	if r.FocalLength <= 0 || r.CameraDistance <= 0 || r.ViewScale <= 0 || r.PointScale <= 0 {
		return fmt.Errorf("%w: render camera values must be positive", ErrInvalid)
	}
	for key, hex := range map[string]string{"render.color": r.Color, "render.horizon": r.Horizon} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%w: %s = %q: %w", ErrInvalid, key, hex, err)
		}
	}
	return nil
}

func (c *Config) validateScents() error {
	if len(c.Scents) == 0 {
		return fmt.Errorf("%w: at least one [[scent]] is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Scents))
	for i, s := range c.Scents {
		if s.Name == "" {
			return fmt.Errorf("%w: scent[%d] has no name", ErrInvalid, i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate scent %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if _, err := colorful.Hex(s.Tint); err != nil {
			return fmt.Errorf("%w: scent %q tint %q: %w", ErrInvalid, s.Name, s.Tint, err)
		}
		if s.AmbientFreq < 0 {
			return fmt.Errorf("%w: scent %q ambient_freq = %v", ErrInvalid, s.Name, s.AmbientFreq)
		}
		if s.AmbientVolume < 0 || s.AmbientVolume > 1 || s.ActiveVolume < 0 || s.ActiveVolume > 1 {
			return fmt.Errorf("%w: scent %q volumes must be 0-1", ErrInvalid, s.Name)
		}
	}
	return nil
}
