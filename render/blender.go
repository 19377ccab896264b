package render

// BlendMode defines compositing operations using a bitmask (Flags | Op)
type BlendMode uint8

// Blend Operations (0-15)
const (
	opReplace uint8 = 0x00
	opAlpha   uint8 = 0x01
	opAdd     uint8 = 0x02
	opScreen  uint8 = 0x03
)

// Blend Flags
const (
	flagBg uint8 = 0x10 // Apply operation to Background
	flagFg uint8 = 0x20 // Apply operation to Foreground
)

// Pre-defined Blend Modes
const (
	BlendReplace = BlendMode(opReplace | flagBg | flagFg)
	BlendAlpha   = BlendMode(opAlpha | flagBg | flagFg)
	BlendAdd     = BlendMode(opAdd | flagBg | flagFg)
	BlendScreen  = BlendMode(opScreen | flagBg | flagFg)

	// Targeted Modes
	BlendFgOnly   = BlendMode(opReplace | flagFg) // Replace Fg, Keep Bg
	BlendScreenFg = BlendMode(opScreen | flagFg)
	BlendAlphaBg  = BlendMode(opAlpha | flagBg) // Tint background, keep rune and fg
	BlendScreenBg = BlendMode(opScreen | flagBg)
)

// apply composites src over dst for a single channel set
func (m BlendMode) apply(dst, src RGB, alpha float64) RGB {
	switch uint8(m) & 0x0F {
	case opAlpha:
		return dst.Over(src, alpha)
	case opAdd:
		return dst.Glow(src, alpha)
	case opScreen:
		return dst.Veil(src, alpha)
	default:
		return src
	}
}
