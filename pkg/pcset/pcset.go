// Package pcset implements pitch-class sets: the distinct chromas present in
// a collection of MIDI numbers, with nearest-pitch and scale-step queries.
package pcset

import (
	"sort"
	"strings"

	"github.com/harrybellamy/tonal/pkg/pitch"
)

// Chroma reduces a MIDI number to its pitch class 0..11.
func Chroma(midi int) int {
	return pitch.Mod(midi, 12)
}

// Set is an immutable ascending list of distinct pitch classes.
type Set struct {
	chromas []int
	member  [12]bool
}

// FromMidi builds the set of pitch classes present in a list of MIDI numbers.
func FromMidi(midi []int) Set {
	var s Set
	for _, m := range midi {
		s.member[Chroma(m)] = true
	}
	return s.collect()
}

// FromBits builds a set from a 12-character '1'/'0' membership string, index
// 0 being C. Only the first 12 characters are read; a shorter string is
// treated as the available prefix.
func FromBits(bits string) Set {
	var s Set
	for i, ch := range bits {
		if i >= 12 {
			break
		}
		if ch == '1' {
			s.member[i] = true
		}
	}
	return s.collect()
}

func (s Set) collect() Set {
	for c, in := range s.member {
		if in {
			s.chromas = append(s.chromas, c)
		}
	}
	sort.Ints(s.chromas)
	return s
}

// Chromas returns the ascending pitch classes of the set.
func (s Set) Chromas() []int {
	out := make([]int, len(s.chromas))
	copy(out, s.chromas)
	return out
}

// Len returns the number of distinct pitch classes.
func (s Set) Len() int {
	return len(s.chromas)
}

// IsEmpty reports whether the set has no pitch classes.
func (s Set) IsEmpty() bool {
	return len(s.chromas) == 0
}

// Bits renders the set as its 12-character membership string.
func (s Set) Bits() string {
	var b strings.Builder
	for c := 0; c < 12; c++ {
		if s.member[c] {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// Nearest snaps a MIDI number to the closest MIDI note whose chroma lies in
// the set. Ties break upward: at each search radius the upward candidate is
// checked before the downward one. ok is false only for the empty set.
func (s Set) Nearest(midi int) (int, bool) {
	if s.IsEmpty() {
		return 0, false
	}
	ch := Chroma(midi)
	for i := 0; i < 12; i++ {
		if s.member[pitch.Mod(ch+i, 12)] {
			return midi + i, true
		}
		if s.member[pitch.Mod(ch-i, 12)] {
			return midi - i, true
		}
	}
	return 0, false
}

// Step walks the sorted set starting at a tonic MIDI number. Step 0 is the
// tonic itself; positive steps move up, wrapping into a higher octave every
// Len() steps, negative steps move down symmetrically. ok is false only for
// the empty set.
func (s Set) Step(tonic, step int) (int, bool) {
	n := len(s.chromas)
	if n == 0 {
		return 0, false
	}
	idx := pitch.Mod(step, n)
	octaves := pitch.FloorDiv(step, n)
	return s.chromas[idx] + 12*octaves + tonic, true
}

// Degree is the 1-indexed wrapper over Step: degree 1 is the tonic, degree
// -1 is one step below it, and degree 0 has no meaning.
func (s Set) Degree(tonic, degree int) (int, bool) {
	if degree == 0 {
		return 0, false
	}
	if degree > 0 {
		return s.Step(tonic, degree-1)
	}
	return s.Step(tonic, degree)
}
