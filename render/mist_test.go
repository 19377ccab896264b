package render

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/lixenwraith/spritz/mist"
	"github.com/lixenwraith/spritz/spray"
)

func newSprayStage(t *testing.T) (*mist.Stage, *spray.Emitter) {
	t.Helper()
	stage, err := mist.NewStage(mist.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	e, err := spray.NewEmitter(spray.Config{ParticleCount: 500, SprayDuration: 0.1}, stage, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	stage.Attach(e.Pool())
	return stage, e
}

func TestMistRendererIdleDrawsNothing(t *testing.T) {
	stage, e := newSprayStage(t)
	e.Update(1, 0.016)

	buf := NewBuffer(80, 40, RGBBlack)
	m := NewMistRenderer(0.125)
	m.Render(buf, testCamera(), stage, RGB{200, 120, 180})

	if m.Drawn() != 0 {
		t.Errorf("drawn = %d, want 0", m.Drawn())
	}
	for y := 0; y < 40; y++ {
		if row := rowText(buf, y); strings.TrimSpace(row) != "" {
			t.Fatalf("row %d not blank: %q", y, row)
		}
	}
}

func TestMistRendererDrawsBurst(t *testing.T) {
	stage, e := newSprayStage(t)
	e.Trigger()
	e.Update(0, 1.0/60)
	e.Update(0.05, 1.0/60)

	buf := NewBuffer(80, 40, RGBBlack)
	m := NewMistRenderer(0.125)
	m.Render(buf, testCamera(), stage, RGB{200, 120, 180})

	if m.Drawn() == 0 {
		t.Fatal("no particles drawn")
	}

	ramp := string(MistRamp)
	glyphs := 0
	for y := 0; y < 40; y++ {
		for x := 0; x < 80; x++ {
			c := buf.Get(x, y)
			if strings.ContainsRune(ramp, c.Rune) {
				glyphs++
				if m.Density(x, y) < mistThreshold {
					t.Errorf("glyph at (%d,%d) below threshold", x, y)
				}
			}
		}
	}
	if glyphs == 0 {
		t.Error("no mist glyphs in buffer")
	}

	// Spray axis is +X from the origin: nothing left of center
	for y := 0; y < 40; y++ {
		for x := 0; x < 38; x++ {
			if m.Density(x, y) > 0 {
				t.Fatalf("density left of nozzle at (%d,%d)", x, y)
			}
		}
	}
}

func TestSplatSubCell(t *testing.T) {
	m := NewMistRenderer(0.125)
	m.reset(10, 10)
	if !m.splat(3.5, 4.5, 0.1, 0.5) {
		t.Fatal("sub-cell splat missed")
	}
	if d := m.Density(3, 4); d <= 0 {
		t.Errorf("density at center = %f", d)
	}
	if m.splat(-20, -20, 1, 1) {
		t.Error("off-screen splat reported hit")
	}
}
