package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseTint parses a #rrggbb scent color
func ParseTint(hex string) (RGB, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return RGB{}, fmt.Errorf("parse tint %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

// MistColor is the mist shade at density t: pale near-white for thin mist, saturating toward tint as it thickens
// Blended in Lab so hues stay perceptually even across the ramp
func MistColor(tint RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pale := toColorful(tint).BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.7)
	return fromColorful(pale.BlendLab(toColorful(tint), t).Clamped())
}

// Shade darkens (amount > 0) or lightens (amount < 0) a color in Lab space
func Shade(c RGB, amount float64) RGB {
	base := toColorful(c)
	if amount >= 0 {
		return fromColorful(base.BlendLab(colorful.Color{}, amount).Clamped())
	}
	return fromColorful(base.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, -amount).Clamped())
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}
}
