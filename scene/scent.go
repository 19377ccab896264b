package scene

import (
	"fmt"
	"time"

	"github.com/lixenwraith/spritz/config"
	"github.com/lixenwraith/spritz/render"
)

// Ambient fade timings per interaction
const (
	HoverFadeIn  = 300 * time.Millisecond // to Scent.HoverVolume
	HoverFadeOut = 300 * time.Millisecond
	OpenFadeIn   = 500 * time.Millisecond // to Scent.OpenVolume
	CloseFadeOut = 200 * time.Millisecond
)

// Scent is one fragrance stage: a tint for the mist and glass plus an ambient pad
type Scent struct {
	Name        string
	Tint        render.RGB
	AmbientFreq float64
	HoverVolume float64
	OpenVolume  float64
}

// ScentsFromConfig converts validated scent tables
func ScentsFromConfig(cfgs []config.ScentConfig) ([]Scent, error) {
	if len(cfgs) == 0 {
		return nil, fmt.Errorf("%w: no scents", config.ErrInvalid)
	}
	out := make([]Scent, 0, len(cfgs))
	for _, c := range cfgs {
		tint, err := render.ParseTint(c.Tint)
		if err != nil {
			return nil, fmt.Errorf("scent %q: %w", c.Name, err)
		}
		out = append(out, Scent{
			Name:        c.Name,
			Tint:        tint,
			AmbientFreq: c.AmbientFreq,
			HoverVolume: c.AmbientVolume,
			OpenVolume:  c.ActiveVolume,
		})
	}
	return out, nil
}
