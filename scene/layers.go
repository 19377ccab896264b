package scene

import (
	"github.com/lixenwraith/spritz/render"
)

// backdropLayer paints the sky gradient, warmed by the active scent
type backdropLayer struct{ s *Scene }

func (l backdropLayer) Render(_ render.Context, buf *render.Buffer) {
	horizon := l.s.horizon.Over(l.s.Scent().Tint, 0.15)
	render.RenderBackdrop(buf, l.s.sky, horizon)
}

type bottleLayer struct{ s *Scene }

func (l bottleLayer) Render(ctx render.Context, buf *render.Buffer) {
	s := l.s
	render.RenderBottle(buf, ctx.Camera, s.bottle.view(s.Scent().Tint, s.hovering, s.pressed))
}

// mistLayer draws the spray and keeps the counts for the HUD
type mistLayer struct {
	s        *Scene
	renderer *render.MistRenderer
}

func (l *mistLayer) Render(ctx render.Context, buf *render.Buffer) {
	l.renderer.Render(buf, ctx.Camera, l.s.stage, l.s.Scent().Tint)
}

type hudLayer struct {
	s    *Scene
	mist *mistLayer
}

func (l hudLayer) Render(ctx render.Context, buf *render.Buffer) {
	s := l.s
	sc := s.Scent()
	render.RenderHUD(buf, render.HUDInfo{
		Scent:    sc.Name,
		Tint:     sc.Tint,
		Emitting: s.emitter.IsEmitting(),
		Live:     l.mist.renderer.Visible(),
		Total:    s.emitter.Pool().Len(),
		Bursts:   s.emitter.Bursts(),
		FPS:      s.fps,
		Paused:   ctx.IsPaused,
		Muted:    s.muted,
	})
}

// Register adds the scene layers to the render pipeline
func (s *Scene) Register(o *render.Orchestrator, pointScale float32) {
	mist := &mistLayer{s: s, renderer: render.NewMistRenderer(pointScale)}
	o.Register(backdropLayer{s}, render.PriorityBackground)
	o.Register(bottleLayer{s}, render.PriorityBottle)
	o.Register(mist, render.PriorityMist)
	o.Register(hudLayer{s: s, mist: mist}, render.PriorityUI)
}
