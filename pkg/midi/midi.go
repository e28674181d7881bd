// Package midi implements the numeric MIDI boundary: validity of the
// [0,127] range, frequency conversion and MIDI-number-to-name spelling.
package midi

import (
	"math"
	"strconv"
)

const (
	minMidi = 0
	maxMidi = 127
)

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// IsMidi reports whether m lies in the valid MIDI range.
func IsMidi(m float64) bool {
	return !math.IsNaN(m) && m >= minMidi && m <= maxMidi
}

// ToMidi rounds m half away from zero and range-checks it. Non-finite and
// out-of-range values report ok == false, never a clamped guess.
func ToMidi(m float64) (int, bool) {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return 0, false
	}
	r := math.Round(m)
	if r < minMidi || r > maxMidi {
		return 0, false
	}
	return int(r), true
}

// MidiToFreq converts a MIDI number to a frequency in Hz. The tuning
// reference defaults to A4 = 440Hz.
func MidiToFreq(m float64, tuning ...float64) float64 {
	ref := 440.0
	if len(tuning) > 0 {
		ref = tuning[0]
	}
	return math.Pow(2, (m-69)/12) * ref
}

// FreqToMidi converts a frequency in Hz to a (possibly fractional) MIDI
// number rounded to two decimals. Non-positive and non-finite frequencies
// report ok == false.
func FreqToMidi(freq float64) (float64, bool) {
	if math.IsNaN(freq) || math.IsInf(freq, 0) || freq <= 0 {
		return 0, false
	}
	v := 12*math.Log2(freq/440) + 69
	return math.Round(v*100) / 100, true
}

// NameOptions selects the spelling of MidiToNoteName. Sharps picks C# over
// Db; PitchClass drops the octave.
type NameOptions struct {
	Sharps     bool
	PitchClass bool
}

// MidiToNoteName spells a MIDI number as a note name, e.g. 61 -> "Db4" or
// "C#4". The input is rounded half away from zero first; non-finite input
// yields "".
func MidiToNoteName(m float64, opts NameOptions) string {
	if math.IsNaN(m) || math.IsInf(m, 0) {
		return ""
	}
	r := int(math.Round(m))
	names := &flatNames
	if opts.Sharps {
		names = &sharpNames
	}
	pc := names[((r%12)+12)%12]
	if opts.PitchClass {
		return pc
	}
	oct := r / 12
	if r%12 < 0 {
		oct--
	}
	return pc + strconv.Itoa(oct-1)
}
