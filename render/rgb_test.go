package render

import "testing"

func TestOverEndpoints(t *testing.T) {
	dst := RGB{10, 20, 30}
	src := RGB{200, 100, 50}

	if got := dst.Over(src, 0); got != dst {
		t.Errorf("alpha 0 = %v, want %v", got, dst)
	}
	if got := dst.Over(src, 1); got != src {
		t.Errorf("alpha 1 = %v, want %v", got, src)
	}
	mid := RGBBlack.Over(RGBWhite, 0.5)
	if mid.R < 126 || mid.R > 128 {
		t.Errorf("half blend R = %d, want ~127", mid.R)
	}
	if got := RGBBlack.Over(RGB{200, 100, 50}, 0.5); got != (RGB{100, 50, 25}) {
		t.Errorf("gradient midpoint = %v, want {100 50 25}", got)
	}
}

func TestGlowSaturates(t *testing.T) {
	got := RGB{200, 100, 0}.Glow(RGB{100, 100, 10}, 1)
	want := RGB{255, 200, 10}
	if got != want {
		t.Errorf("Glow = %v, want %v", got, want)
	}
	if got := want.Glow(RGBWhite, 0); got != want {
		t.Errorf("Glow alpha 0 = %v, want %v", got, want)
	}
}

func TestVeilIdentities(t *testing.T) {
	tests := []struct {
		name  string
		src   RGB
		alpha float64
		want  RGB
	}{
		{"black keeps color", RGBBlack, 1, RGB{100, 150, 200}},
		{"white whitens", RGBWhite, 1, RGBWhite},
		{"zero alpha", RGBWhite, 0, RGB{100, 150, 200}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (RGB{100, 150, 200}).Veil(tt.src, tt.alpha); got != tt.want {
				t.Errorf("Veil = %v, want %v", got, tt.want)
			}
		})
	}

	// Veiling never darkens
	c := RGB{40, 90, 160}
	if got := c.Veil(RGB{30, 30, 30}, 0.5); got.R < c.R || got.G < c.G || got.B < c.B {
		t.Errorf("Veil darkened %v to %v", c, got)
	}
}
