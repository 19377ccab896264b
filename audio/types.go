package audio

import (
	"errors"
)

// SoundType represents the scene's sound effects
type SoundType int

const (
	SoundSpray   SoundType = iota // Nozzle hiss for one burst
	SoundAmbient                  // Per-scent looping pad
)

func (s SoundType) String() string {
	switch s {
	case SoundSpray:
		return "spray"
	case SoundAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrSpeakerInit     = errors.New("speaker initialization failed")
	ErrInvalidDuration = errors.New("sound duration must be positive")
)
