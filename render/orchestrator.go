package render

type layerEntry struct {
	layer    Layer
	priority RenderPriority
	index    int // registration order for stable sort
}

// Orchestrator coordinates the render pipeline
type Orchestrator struct {
	screen   Surface
	buffer   *Buffer
	camera   *Camera
	layers   []layerEntry
	regCount int
}

// NewOrchestrator creates an orchestrator for the given screen, camera and dimensions
func NewOrchestrator(screen Surface, camera *Camera, width, height int, background RGB) *Orchestrator {
	camera.Resize(width, height)
	return &Orchestrator{
		screen: screen,
		buffer: NewBuffer(width, height, background),
		camera: camera,
		layers: make([]layerEntry, 0, 4),
	}
}

// Register adds a layer at the specified priority. Maintains sorted order via insertion sort
func (o *Orchestrator) Register(l Layer, priority RenderPriority) {
	entry := layerEntry{
		layer:    l,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.layers)
	for i, e := range o.layers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.layers = append(o.layers, layerEntry{})
	copy(o.layers[pos+1:], o.layers[pos:])
	o.layers[pos] = entry
}

// Resize updates buffer and camera dimensions
func (o *Orchestrator) Resize(width, height int) {
	o.buffer.Resize(width, height)
	o.camera.Resize(width, height)
}

// Buffer exposes the compositor, mainly for inspection
func (o *Orchestrator) Buffer() *Buffer {
	return o.buffer
}

// Camera returns the shared camera
func (o *Orchestrator) Camera() *Camera {
	return o.camera
}

// RenderFrame executes the render pipeline: clear, render all, flush, show
func (o *Orchestrator) RenderFrame(t, dt float64, paused bool) {
	w, h := o.buffer.Size()
	ctx := Context{
		Time:         t,
		DeltaTime:    dt,
		IsPaused:     paused,
		Camera:       o.camera,
		ScreenWidth:  w,
		ScreenHeight: h,
	}

	o.buffer.Clear()

	for _, entry := range o.layers {
		if vt, ok := entry.layer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.layer.Render(ctx, o.buffer)
	}

	o.buffer.Flush(o.screen)
}
