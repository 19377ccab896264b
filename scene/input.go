package scene

import (
	"github.com/gdamore/tcell/v2"
)

// HandleEvent routes a terminal event to the scene
// Returns false for events the scene does not consume, resize is left to the caller
func (s *Scene) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
		return true
	}
	return false
}

func (s *Scene) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		s.quit = true
	case tcell.KeyTab:
		s.NextScent(1)
	case tcell.KeyBacktab:
		s.NextScent(-1)
	case tcell.KeyEnter:
		s.ToggleOpen()
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ', 's':
			s.Spray()
		case 'o':
			s.ToggleOpen()
		case 'p':
			s.TogglePause()
		case 'm':
			s.ToggleMute()
		case 'q':
			s.quit = true
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// handleMouse derives press, drag and release from the button mask
func (s *Scene) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !s.buttonDown:
		s.PointerDown(x, y)
	case !down && s.buttonDown:
		s.PointerUp(x, y)
	default:
		s.PointerMove(x, y)
	}
}
