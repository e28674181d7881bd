package midi

import (
	"math"
	"testing"
)

func TestIsMidi(t *testing.T) {
	for _, m := range []float64{0, 60, 127, 59.5} {
		if !IsMidi(m) {
			t.Errorf("IsMidi(%v) = false, want true", m)
		}
	}
	for _, m := range []float64{-1, 128, math.NaN(), math.Inf(1)} {
		if IsMidi(m) {
			t.Errorf("IsMidi(%v) = true, want false", m)
		}
	}
}

func TestToMidi(t *testing.T) {
	tests := []struct {
		src  float64
		want int
		ok   bool
	}{
		{60, 60, true},
		{60.4, 60, true},
		{60.5, 61, true}, // half rounds away from zero
		{0.5, 1, true},
		{0, 0, true},
		{127, 127, true},
		{127.4, 127, true},
		{127.5, 0, false},
		{-0.5, 0, false},
		{-1, 0, false},
		{128, 0, false},
	}
	for _, tt := range tests {
		got, ok := ToMidi(tt.src)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ToMidi(%v) = (%d, %v), want (%d, %v)", tt.src, got, ok, tt.want, tt.ok)
		}
	}

	if _, ok := ToMidi(math.NaN()); ok {
		t.Error("ToMidi(NaN) should not be ok")
	}
	if _, ok := ToMidi(math.Inf(1)); ok {
		t.Error("ToMidi(+Inf) should not be ok")
	}
}

func TestMidiToFreq(t *testing.T) {
	tests := []struct {
		midi float64
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.6255653005986},
	}
	for _, tt := range tests {
		if got := MidiToFreq(tt.midi); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("MidiToFreq(%v) = %v, want %v", tt.midi, got, tt.want)
		}
	}

	// alternate tuning reference
	if got := MidiToFreq(69, 432); math.Abs(got-432) > 1e-9 {
		t.Errorf("MidiToFreq(69, 432) = %v, want 432", got)
	}
}

func TestFreqToMidi(t *testing.T) {
	tests := []struct {
		freq float64
		want float64
	}{
		{440, 69},
		{220, 57},
		{880, 81},
		{261.62, 60}, // rounds to two decimals
	}
	for _, tt := range tests {
		got, ok := FreqToMidi(tt.freq)
		if !ok {
			t.Fatalf("FreqToMidi(%v) not ok", tt.freq)
		}
		if got != tt.want {
			t.Errorf("FreqToMidi(%v) = %v, want %v", tt.freq, got, tt.want)
		}
	}

	for _, freq := range []float64{0, -440, math.NaN(), math.Inf(1)} {
		if _, ok := FreqToMidi(freq); ok {
			t.Errorf("FreqToMidi(%v) should not be ok", freq)
		}
	}
}

func TestMidiToNoteName(t *testing.T) {
	tests := []struct {
		midi float64
		opts NameOptions
		want string
	}{
		{60, NameOptions{}, "C4"},
		{61, NameOptions{}, "Db4"},
		{61, NameOptions{Sharps: true}, "C#4"},
		{61, NameOptions{PitchClass: true}, "Db"},
		{61, NameOptions{Sharps: true, PitchClass: true}, "C#"},
		{61.7, NameOptions{}, "D4"},
		{0, NameOptions{}, "C-1"},
		{127, NameOptions{}, "G9"},
		{-1, NameOptions{}, "B-2"},
		{70, NameOptions{}, "Bb4"},
		{70, NameOptions{Sharps: true}, "A#4"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := MidiToNoteName(tt.midi, tt.opts); got != tt.want {
				t.Errorf("MidiToNoteName(%v, %+v) = %q, want %q", tt.midi, tt.opts, got, tt.want)
			}
		})
	}

	if got := MidiToNoteName(math.NaN(), NameOptions{}); got != "" {
		t.Errorf("MidiToNoteName(NaN) = %q, want \"\"", got)
	}
	if got := MidiToNoteName(math.Inf(1), NameOptions{}); got != "" {
		t.Errorf("MidiToNoteName(+Inf) = %q, want \"\"", got)
	}
}
