package render

import (
	"fmt"
)

var (
	rgbHUD    = RGB{200, 200, 210}
	rgbHUDDim = RGB{110, 110, 124}
)

// HUDInfo is the status line content
type HUDInfo struct {
	Scent    string
	Tint     RGB
	Emitting bool
	Live     int
	Total    int
	Bursts   uint64
	FPS      float64
	Paused   bool
	Muted    bool
}

// RenderHUD draws the title, status line and key help
func RenderHUD(buf *Buffer, info HUDInfo) {
	w, h := buf.Size()
	if w == 0 || h == 0 {
		return
	}

	x := 1 + buf.Text(1, 0, info.Scent, info.Tint)
	buf.Text(x+1, 0, "eau de parfum", rgbHUDDim)

	state := "idle"
	if info.Emitting {
		state = "spraying"
	}
	status := fmt.Sprintf("%-8s  mist %4d/%-5d  bursts %-4d  %5.1f fps", state, info.Live, info.Total, info.Bursts, info.FPS)
	if info.Paused {
		status += "  [paused]"
	}
	if info.Muted {
		status += "  [muted]"
	}
	if h > 1 {
		buf.Text(1, h-2, status, rgbHUD)
	}
	buf.Text(1, h-1, "click nozzle / space: spray   drag: move   tab: scent   p: pause   m: mute   q: quit", rgbHUDDim)
}
