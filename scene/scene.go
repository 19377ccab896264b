package scene

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/spritz/config"
	"github.com/lixenwraith/spritz/engine"
	"github.com/lixenwraith/spritz/mist"
	"github.com/lixenwraith/spritz/render"
	"github.com/lixenwraith/spritz/spray"
	"github.com/lixenwraith/spritz/vmath"
)

// Liquid used per spray
const sprayUse = 0.004

// Sound is the audio surface the scene drives
type Sound interface {
	PlaySpray(burst time.Duration)
	FadeInAmbient(name string, freq float64, d time.Duration, target float64)
	FadeOutAmbient(name string, d time.Duration)
	ToggleMute() bool
}

// silentSound discards everything
type silentSound struct{ muted bool }

func (*silentSound) PlaySpray(time.Duration)                               {}
func (*silentSound) FadeInAmbient(string, float64, time.Duration, float64) {}
func (*silentSound) FadeOutAmbient(string, time.Duration)                  {}

func (s *silentSound) ToggleMute() bool {
	s.muted = !s.muted
	return !s.muted
}

// Region of the bottle under a cell
type hitRegion int

const (
	hitNone hitRegion = iota
	hitBody
	hitNozzle
)

// Scene hosts the bottle, the spray pipeline and the scent stages
// All methods run on the frame goroutine, except Trigger on the emitter
type Scene struct {
	logger *zap.Logger
	sound  Sound
	clock  *engine.SceneClock
	camera *render.Camera

	emitter *spray.Emitter
	stage   *mist.Stage

	bottle Bottle
	scents []Scent
	active int

	// Interaction state
	hovering   bool
	opened     bool
	dragging   bool
	dragOffset vmath.Vec3F
	pressed    bool
	buttonDown bool
	muted      bool
	quit       bool

	// Backdrop gradient
	sky     render.RGB
	horizon render.RGB

	fps float64
}

// New builds the scene from a validated config
// sound and logger may be nil
func New(cfg *config.Config, camera *render.Camera, clock *engine.SceneClock, sound Sound, logger *zap.Logger) (*Scene, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sound == nil {
		sound = &silentSound{}
	}

	scents, err := ScentsFromConfig(cfg.Scents)
	if err != nil {
		return nil, err
	}
	sky, err := render.ParseTint(cfg.Render.Color)
	if err != nil {
		return nil, err
	}
	horizon, err := render.ParseTint(cfg.Render.Horizon)
	if err != nil {
		return nil, err
	}

	stage, err := mist.NewStage(cfg.Mist)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if cfg.Emitter.Seed != 0 {
		rng = rand.New(rand.NewSource(cfg.Emitter.Seed))
	}
	bottle := DefaultBottle()
	emitter, err := spray.NewEmitter(spray.Config{
		Origin:        bottle.Nozzle(),
		SprayDuration: cfg.Emitter.SprayDuration,
		ParticleCount: cfg.Emitter.ParticleCount,
	}, stage, rng)
	if err != nil {
		return nil, err
	}
	stage.Attach(emitter.Pool())

	logger.Info("Scene ready",
		zap.Int("particles", cfg.Emitter.ParticleCount),
		zap.Float64("spray_duration", cfg.Emitter.SprayDuration),
		zap.Int("scents", len(scents)))

	return &Scene{
		logger:  logger,
		sound:   sound,
		clock:   clock,
		camera:  camera,
		emitter: emitter,
		stage:   stage,
		bottle:  bottle,
		scents:  scents,
		sky:     sky,
		horizon: horizon,
	}, nil
}

// Step advances the scene clock and updates the scene
func (s *Scene) Step() (t, dt float64) {
	t, dt = s.clock.Tick()
	s.Update(t, dt)
	return t, dt
}

// Update moves the spray origin to the nozzle, then advances the emitter
func (s *Scene) Update(t, dt float64) {
	s.emitter.SetOrigin(s.bottle.Nozzle())
	s.emitter.Update(t, dt)

	if s.pressed && !s.emitter.IsEmitting() && !s.emitter.Pending() {
		s.pressed = false
	}
	if dt > 0 {
		inst := 1 / dt
		if s.fps == 0 {
			s.fps = inst
		} else {
			s.fps += (inst - s.fps) * 0.1
		}
	}
}

// Spray requests a burst; dropped while a burst is running
// Returns true if a new burst was requested
func (s *Scene) Spray() bool {
	if s.emitter.IsEmitting() || s.emitter.Pending() {
		return false
	}
	s.emitter.Trigger()
	s.pressed = true
	s.bottle.Use(sprayUse)
	s.sound.PlaySpray(time.Duration(s.emitter.SprayDuration() * float64(time.Second)))
	s.logger.Debug("Spray triggered", zap.String("scent", s.Scent().Name))
	return true
}

// Scent returns the active scent
func (s *Scene) Scent() Scent {
	return s.scents[s.active]
}

// Scents returns the configured scents
func (s *Scene) Scents() []Scent {
	return s.scents
}

// NextScent cycles the active scent by step, carrying the ambient state over
func (s *Scene) NextScent(step int) {
	if len(s.scents) < 2 {
		return
	}
	old := s.Scent()
	switch {
	case s.opened:
		s.sound.FadeOutAmbient(old.Name, CloseFadeOut)
	case s.hovering:
		s.sound.FadeOutAmbient(old.Name, HoverFadeOut)
	}

	n := len(s.scents)
	s.active = ((s.active+step)%n + n) % n
	cur := s.Scent()
	switch {
	case s.opened:
		s.sound.FadeInAmbient(cur.Name, cur.AmbientFreq, OpenFadeIn, cur.OpenVolume)
	case s.hovering:
		s.sound.FadeInAmbient(cur.Name, cur.AmbientFreq, HoverFadeIn, cur.HoverVolume)
	}
	s.logger.Info("Scent selected", zap.String("scent", cur.Name))
}

// ToggleOpen opens or closes the active scent stage
// Open stages play their ambient louder and ignore hover
func (s *Scene) ToggleOpen() {
	sc := s.Scent()
	s.opened = !s.opened
	if s.opened {
		s.sound.FadeInAmbient(sc.Name, sc.AmbientFreq, OpenFadeIn, sc.OpenVolume)
		return
	}
	if s.hovering {
		// Back to the hover level
		s.sound.FadeInAmbient(sc.Name, sc.AmbientFreq, HoverFadeIn, sc.HoverVolume)
		return
	}
	s.sound.FadeOutAmbient(sc.Name, CloseFadeOut)
}

// setHover applies hover enter and leave transitions
func (s *Scene) setHover(over bool) {
	if over == s.hovering {
		return
	}
	s.hovering = over
	if s.opened {
		return
	}
	sc := s.Scent()
	if over {
		s.sound.FadeInAmbient(sc.Name, sc.AmbientFreq, HoverFadeIn, sc.HoverVolume)
	} else {
		s.sound.FadeOutAmbient(sc.Name, HoverFadeOut)
	}
}

// TogglePause freezes or resumes scene time
func (s *Scene) TogglePause() bool {
	paused := s.clock.TogglePause()
	s.logger.Info("Pause toggled", zap.Bool("paused", paused))
	return paused
}

// ToggleMute flips audio output
func (s *Scene) ToggleMute() {
	s.muted = !s.sound.ToggleMute()
}

// ApplyConfig hot-swaps mist params and scents
// Emitter capacity and timing are fixed for the process lifetime
func (s *Scene) ApplyConfig(cfg *config.Config) error {
	if err := s.stage.SetParams(cfg.Mist); err != nil {
		return err
	}
	scents, err := ScentsFromConfig(cfg.Scents)
	if err != nil {
		return err
	}

	old := s.Scent()
	next := 0
	for i, sc := range scents {
		if sc.Name == old.Name {
			next = i
			break
		}
	}
	if scents[next].Name != old.Name && (s.opened || s.hovering) {
		s.sound.FadeOutAmbient(old.Name, CloseFadeOut)
		s.opened = false
		s.hovering = false
	}
	s.scents = scents
	s.active = next

	if cfg.Emitter.ParticleCount != s.emitter.Pool().Len() || cfg.Emitter.SprayDuration != s.emitter.SprayDuration() {
		s.logger.Warn("Emitter changes need a restart",
			zap.Int("particle_count", cfg.Emitter.ParticleCount),
			zap.Float64("spray_duration", cfg.Emitter.SprayDuration))
	}
	if sky, err := render.ParseTint(cfg.Render.Color); err == nil {
		s.sky = sky
	}
	if horizon, err := render.ParseTint(cfg.Render.Horizon); err == nil {
		s.horizon = horizon
	}
	s.logger.Info("Config applied", zap.Int("scents", len(scents)), zap.String("scent", s.Scent().Name))
	return nil
}

// Emitter exposes the spray emitter
func (s *Scene) Emitter() *spray.Emitter {
	return s.emitter
}

// Stage exposes the mist stage
func (s *Scene) Stage() *mist.Stage {
	return s.stage
}

// Bottle returns a copy of the bottle state
func (s *Scene) Bottle() Bottle {
	return s.bottle
}

func (s *Scene) Hovering() bool { return s.hovering }
func (s *Scene) Opened() bool   { return s.opened }
func (s *Scene) Dragging() bool { return s.dragging }
func (s *Scene) Muted() bool    { return s.muted }
func (s *Scene) Quit() bool     { return s.quit }
func (s *Scene) Paused() bool   { return s.clock.IsPaused() }

// hitTest classifies the bottle region under cell cx, cy
func (s *Scene) hitTest(cx, cy int) hitRegion {
	b := &s.bottle
	if nx, ny, ok := s.camera.ProjectCell(b.Nozzle()); ok {
		dx, dy := cx-nx, cy-ny
		if dx >= -2 && dx <= 2 && dy >= -1 && dy <= 1 {
			return hitNozzle
		}
	}

	z := b.Position.Z
	x0, y0, ok0 := s.camera.ProjectCell(vmath.Vec3F{X: b.Position.X - b.HalfW, Y: b.top(), Z: z})
	x1, y1, ok1 := s.camera.ProjectCell(vmath.Vec3F{X: b.Position.X + b.HalfW, Y: b.Position.Y - b.HalfH, Z: z})
	if ok0 && ok1 && cx >= x0 && cx <= x1 && cy >= y0 && cy <= y1 {
		return hitBody
	}
	return hitNone
}

// PointerDown handles a primary button press at cell cx, cy
func (s *Scene) PointerDown(cx, cy int) {
	s.buttonDown = true
	switch s.hitTest(cx, cy) {
	case hitNozzle:
		s.Spray()
	case hitBody:
		grab := s.camera.Unproject(cx, cy, s.bottle.Position.Z)
		s.dragOffset = vmath.V3FSub(s.bottle.Position, grab)
		s.dragging = true
	}
}

// PointerMove tracks hover and drags the bottle
func (s *Scene) PointerMove(cx, cy int) {
	if s.dragging {
		p := s.camera.Unproject(cx, cy, s.bottle.Position.Z)
		s.bottle.MoveTo(vmath.V3FAdd(p, s.dragOffset))
	}
	s.setHover(s.dragging || s.hitTest(cx, cy) != hitNone)
}

// PointerUp ends a drag
func (s *Scene) PointerUp(cx, cy int) {
	s.buttonDown = false
	if s.dragging {
		s.dragging = false
		s.logger.Debug("Bottle moved",
			zap.Float32("x", s.bottle.Position.X),
			zap.Float32("y", s.bottle.Position.Y))
	}
	s.setHover(s.hitTest(cx, cy) != hitNone)
}
