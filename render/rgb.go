package render

// RGB is a 24-bit cell color
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{}
	RGBWhite = RGB{255, 255, 255}
)

// Over composites src on top of c with coverage alpha
// Also serves as the gradient step between two colors
func (c RGB) Over(src RGB, alpha float64) RGB {
	switch {
	case alpha <= 0:
		return c
	case alpha >= 1:
		return src
	}
	mix := func(d, s uint8) uint8 {
		return uint8(float64(d) + alpha*(float64(s)-float64(d)))
	}
	return RGB{mix(c.R, src.R), mix(c.G, src.G), mix(c.B, src.B)}
}

// Glow adds src light onto c, saturating each channel
func (c RGB) Glow(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	lit := channels(c, src, func(d, s int) int { return d + s })
	return c.Over(lit, alpha)
}

// Veil lightens c through src the way mist lightens what is behind it
// Black src leaves c unchanged, white src turns it white
func (c RGB) Veil(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return c
	}
	lit := channels(c, src, func(d, s int) int {
		return 255 - ((255-d)*(255-s)+127)/255
	})
	return c.Over(lit, alpha)
}

// channels applies op per channel and saturates the result to 0..255
func channels(a, b RGB, op func(d, s int) int) RGB {
	sat := func(v int) uint8 {
		if v < 0 {
			return 0
		}
		if v > 255 {
			return 255
		}
		return uint8(v)
	}
	return RGB{
		R: sat(op(int(a.R), int(b.R))),
		G: sat(op(int(a.G), int(b.G))),
		B: sat(op(int(a.B), int(b.B))),
	}
}
