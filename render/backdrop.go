package render

// RenderBackdrop fills the background with a vertical gradient
func RenderBackdrop(buf *Buffer, top, bottom RGB) {
	w, h := buf.Size()
	for y := 0; y < h; y++ {
		t := 0.0
		if h > 1 {
			t = float64(y) / float64(h-1)
		}
		bg := top.Over(bottom, t)
		for x := 0; x < w; x++ {
			buf.Set(x, y, 0, bg, bg, BlendReplace, 1)
		}
	}
}
