// Package pitch implements the line-of-fifths coordinate algebra shared by
// pitch classes, notes and intervals.
//
// Every value is encoded as a position on the line of fifths, optionally with
// an octave and a direction. The Encode/Decode pair is the single conversion
// point between that encoding and the letter-step/alteration view used by
// note and interval names.
package pitch

// Dir is the direction of an interval.
type Dir int

const (
	Ascending  Dir = 1
	Descending Dir = -1
)

// Kind tags a coordinate variant. Each variant strictly extends the previous
// one: a pitch class carries fifths only, a note adds octaves, an interval
// adds a direction.
type Kind uint8

const (
	KindPitchClass Kind = iota
	KindNote
	KindInterval
)

// Coord is a position on (or displacement along) the line of fifths.
// For KindInterval the Fifths and Octaves fields are multiplied by Dir,
// so a descending fifth is {Fifths: -1, ...} with Dir == Descending.
type Coord struct {
	Kind    Kind
	Fifths  int
	Octaves int // meaningful for KindNote and KindInterval
	Dir     Dir // meaningful for KindInterval
}

// Pitch is the letter-step decomposition of a coordinate.
// Step indexes the natural letters C..B (C = 0). Alt counts sharps (positive)
// or flats (negative) in semitones. HasOct distinguishes notes from pitch
// classes; a nonzero Dir marks an interval.
type Pitch struct {
	Step   int
	Alt    int
	Oct    int
	HasOct bool
	Dir    Dir // zero when the value is not an interval
}

// fifths position of each natural letter C D E F G A B
var stepFifths = [7]int{0, 2, 4, -1, 1, 3, 5}

// octave correction per letter, FloorDiv(stepFifths[i]*7, 12)
var stepOctaves = [7]int{0, 1, 2, -1, 0, 1, 2}

// inverse of stepFifths after shifting by +1 mod 7
var fifthsSteps = [7]int{3, 0, 4, 1, 5, 2, 6}

// FloorDiv divides rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod reduces n modulo m to a non-negative remainder.
func Mod(n, m int) int {
	return ((n % m) + m) % m
}

// StepSemitones returns the semitone size of an unaltered diatonic step.
func StepSemitones(step int) int {
	return [7]int{0, 2, 4, 5, 7, 9, 11}[step]
}

// Encode converts a pitch to its line-of-fifths coordinate. The variant is
// chosen from the pitch itself: a nonzero Dir yields KindInterval, an octave
// without direction yields KindNote, otherwise KindPitchClass.
func Encode(p Pitch) Coord {
	dir := 1
	if p.Dir == Descending {
		dir = -1
	}
	f := stepFifths[p.Step] + 7*p.Alt
	if !p.HasOct {
		return Coord{Kind: KindPitchClass, Fifths: dir * f}
	}
	o := p.Oct - stepOctaves[p.Step] - 4*p.Alt
	if p.Dir != 0 {
		return Coord{Kind: KindInterval, Fifths: dir * f, Octaves: dir * o, Dir: p.Dir}
	}
	return Coord{Kind: KindNote, Fifths: f, Octaves: o}
}

// Decode converts a coordinate back to its letter-step decomposition.
// Interval coordinates are normalized by direction first, so Decode(Encode(p))
// returns p for every valid pitch.
func Decode(c Coord) Pitch {
	f, o := c.Fifths, c.Octaves
	var dir Dir
	if c.Kind == KindInterval {
		dir = Ascending
		if c.Dir == Descending {
			dir = Descending
			f, o = -f, -o
		}
	}
	step := fifthsSteps[Mod(f+1, 7)]
	alt := FloorDiv(f+1, 7)
	if c.Kind == KindPitchClass {
		return Pitch{Step: step, Alt: alt}
	}
	oct := o + 4*alt + stepOctaves[step]
	return Pitch{Step: step, Alt: alt, Oct: oct, HasOct: true, Dir: dir}
}
