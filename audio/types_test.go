package audio

import "testing"

func TestSoundTypeString(t *testing.T) {
	tests := []struct {
		st   SoundType
		want string
	}{
		{SoundSpray, "spray"},
		{SoundAmbient, "ambient"},
		{SoundType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("SoundType(%d).String() = %q, want %q", int(tt.st), got, tt.want)
		}
	}
}
