package render

// Context provides frame state for layers, passed by value
type Context struct {
	// Scene time in seconds and the delta that produced it
	Time      float64
	DeltaTime float64
	IsPaused  bool

	Camera *Camera

	ScreenWidth  int
	ScreenHeight int
}
